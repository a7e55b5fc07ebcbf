package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	BAD_ITEM

	// High-level constructs
	FILE
	QUAL_NAME

	// Declarations
	INPUT_DECL
	KIND_EXPR
	SECTION_DECL
	SLOT_DECL
	MESSAGE_BLOCK
	RENDER_BLOCK

	// Attributes and values
	ATTR
	STRING_LIT
	NUMBER_LIT
	BOOL_LIT
	MAP_LIT

	// Emit operations
	EMIT_LIT
	EMIT_SECTION
	EMIT_INPUT
	SWITCH_OP
	SWITCH_CASE

	IDENT
)

type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based
	Column   int // 1-based
}

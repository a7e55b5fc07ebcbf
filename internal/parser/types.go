package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Keywords
	MODULE
	RENDER
	SLOT
	SWITCH
	CASE
	ELSE
	LIT
	SEC
	IN
	TRUE
	FALSE

	// Separators
	COMMA
	DOT
	COLON
	EQUAL
	AT

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
)

func (tt TokenType) String() string {
	return tokenName(tt)
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}

type Token struct {
	Type     TokenType
	Lexeme   string // decoded value for STRING, raw source text otherwise
	Position Position
	Length   int // raw source length, which differs from len(Lexeme) for STRING
}

package errors

import "strings"

// Diagnostic codes for the PIR toolchain. Codes are stable across releases
// so tests and downstream consumers can match on them.
//
// Code ranges:
// PIR001-PIR099: validation errors (symbol table, structural invariants)
// PIR100-PIR199: reserved for codec errors
// PIRW01-PIRW99: lint warnings
const (
	// PIR001: a name declared twice within one module
	CodeDuplicateSymbol = "PIR001"

	// PIR002: an emit-operation or switch references an undeclared name
	CodeUnknownSymbol = "PIR002"

	// PIR003: an enumeration kind with an empty or duplicated value set
	CodeInvalidEnumSet = "PIR003"

	// PIRW01: a declared section never emitted by any message
	CodeUnusedSection = "PIRW01"

	// PIRW02: a declared input never emitted and never switched on
	CodeUnusedInput = "PIRW02"

	// PIRW03: a section or input emitted on a channel other than its own
	CodeChannelViolation = "PIRW03"

	// PIRW04: a switch over an enum input missing values and lacking else
	CodeIncompleteSwitch = "PIRW04"

	// PIRW05: two sections claiming the same output key, or the same key
	// with conflicting kinds
	CodeSchemaCollision = "PIRW05"
)

// GetDescription returns a human-readable description of a code.
func GetDescription(code string) string {
	switch code {
	case CodeDuplicateSymbol:
		return "Name is declared more than once in the module"
	case CodeUnknownSymbol:
		return "Referenced name is not declared in the module"
	case CodeInvalidEnumSet:
		return "Enumeration value set is empty or contains duplicates"
	case CodeUnusedSection:
		return "Section is declared but never emitted"
	case CodeUnusedInput:
		return "Input is declared but never emitted or switched on"
	case CodeChannelViolation:
		return "Entity is emitted on a channel different from its declared channel"
	case CodeIncompleteSwitch:
		return "Switch does not cover every enumeration value and has no else branch"
	case CodeSchemaCollision:
		return "Output key is claimed by more than one section"
	default:
		return "Unknown diagnostic code"
	}
}

// IsWarning reports whether the code is a lint warning rather than an error.
func IsWarning(code string) bool {
	return strings.HasPrefix(code, "PIRW")
}

package parser

var KEYWORDS = map[string]TokenType{
	"module": MODULE,
	"render": RENDER,
	"slot":   SLOT,
	"switch": SWITCH,
	"case":   CASE,
	"else":   ELSE,
	"lit":    LIT,
	"sec":    SEC,
	"in":     IN,
	"true":   TRUE,
	"false":  FALSE,
}

package parser

import (
	"testing"
)

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "module render slot switch case else lit sec in true false customIdent"
	expected := []TokenType{
		MODULE, RENDER, SLOT, SWITCH, CASE, ELSE,
		LIT, SEC, IN, TRUE, FALSE, IDENTIFIER,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := "42 0 3.5 -2 -0.25"
	expected := []string{"42", "0", "3.5", "-2", "-0.25"}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != NUMBER {
			t.Errorf("expected NUMBER, got %s", tokens[i].Type)
		}
		if tokens[i].Lexeme != exp {
			t.Errorf("expected lexeme %q, got %q", exp, tokens[i].Lexeme)
		}
	}
}

func TestStrings(t *testing.T) {
	input := `"hello" "world"`
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Type != STRING || tokens[0].Lexeme != "hello" {
		t.Errorf("expected STRING 'hello', got %s %s", tokens[0].Type, tokens[0].Lexeme)
	}
	if tokens[1].Type != STRING || tokens[1].Lexeme != "world" {
		t.Errorf("expected STRING 'world', got %s %s", tokens[1].Type, tokens[1].Lexeme)
	}
}

func TestStringEscapes(t *testing.T) {
	input := `"line1\nline2" "say \"hi\"" "back\\slash"`
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []string{"line1\nline2", `say "hi"`, `back\slash`}
	for i, exp := range expected {
		if tokens[i].Type != STRING {
			t.Fatalf("expected STRING, got %s", tokens[i].Type)
		}
		if tokens[i].Lexeme != exp {
			t.Errorf("expected decoded %q, got %q", exp, tokens[i].Lexeme)
		}
	}
}

func TestInvalidEscape(t *testing.T) {
	scanner := NewScanner(`"bad\qescape"`)
	scanner.ScanTokens()

	if len(scanner.errors) == 0 {
		t.Fatal("expected a scan error for invalid escape sequence")
	}
}

func TestUnterminatedString(t *testing.T) {
	scanner := NewScanner(`"never closed`)
	scanner.ScanTokens()

	if len(scanner.errors) == 0 {
		t.Fatal("expected a scan error for unterminated string")
	}
}

func TestPunctuation(t *testing.T) {
	input := `( ) { } , . : = @`
	expected := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE,
		COMMA, DOT, COLON, EQUAL, AT,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Type)
		}
	}
}

func TestLineComments(t *testing.T) {
	input := "module // everything after is ignored\nrender"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Type != MODULE {
		t.Errorf("expected MODULE, got %s", tokens[0].Type)
	}
	if tokens[1].Type != RENDER {
		t.Errorf("expected RENDER after comment, got %s", tokens[1].Type)
	}
	if tokens[1].Position.Line != 2 {
		t.Errorf("expected token on line 2, got line %d", tokens[1].Position.Line)
	}
}

func TestTokenTypeString(t *testing.T) {
	cases := map[TokenType]string{
		IDENTIFIER:  "identifier",
		NUMBER:      "number",
		STRING:      "string",
		MODULE:      "'module'",
		RIGHT_BRACE: "'}'",
		EOF:         "end of file",
	}

	for tt, want := range cases {
		if got := tt.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestTokenLengthCoversRawSource(t *testing.T) {
	// STRING lexemes are decoded, so the raw extent must come from
	// Length, not from the lexeme.
	input := `topic "say \"hi\"" 3.5`
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Length != len("topic") {
		t.Errorf("expected identifier length 5, got %d", tokens[0].Length)
	}
	if raw := `"say \"hi\""`; tokens[1].Length != len(raw) {
		t.Errorf("expected string length %d, got %d", len(raw), tokens[1].Length)
	}
	if tokens[1].Lexeme != `say "hi"` {
		t.Errorf("expected decoded lexeme, got %q", tokens[1].Lexeme)
	}
	if tokens[2].Length != len("3.5") {
		t.Errorf("expected number length 3, got %d", tokens[2].Length)
	}
}

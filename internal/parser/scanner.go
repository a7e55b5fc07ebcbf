package parser

import (
	"fmt"
	"strings"
	"unicode"
)

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	startColumn int
	column      int
	errors      []ScanError
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // how many characters it covers
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.current}})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case ',':
		s.addToken(COMMA)
	case '.':
		s.addToken(DOT)
	case ':':
		s.addToken(COLON)
	case '=':
		s.addToken(EQUAL)
	case '@':
		s.addToken(AT)

	// Whitespace (ignored)
	case ' ', '\r', '\t':
	case '\n':
		// Handled in advance()

	case '/':
		if s.matchNext('/') {
			s.scanLineComment()
		} else {
			s.reportError("Unexpected character: '/'")
		}

	case '"':
		s.scanString()

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) || c == '-' {
		s.scanNumber()
	} else if isAlpha(c) {
		s.scanIdentifier()
	} else {
		s.reportError(fmt.Sprintf("Unexpected character: %q", c))
	}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) addToken(tokenType TokenType) {
	text := s.source[s.start:s.current]
	s.tokens = append(s.tokens, Token{
		Type:   tokenType,
		Lexeme: text,
		Position: Position{
			Line:   s.line,
			Column: s.startColumn,
			Offset: s.start,
		},
		Length: s.current - s.start,
	})
}

func (s *Scanner) reportError(message string) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: Position{Line: s.line, Column: s.startColumn, Offset: s.start},
		Length:   s.current - s.start,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return unicode.IsLetter(rune(c)) || c == '_'
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	s.addToken(lookupIdentifier(text))
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && s.current+1 < len(s.source) && isDigit(s.source[s.current+1]) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.current-s.start == 1 && s.source[s.start] == '-' {
		s.reportError("Expected digit after '-'")
		return
	}
	s.addToken(NUMBER)
}

// scanString decodes the escape set for quote, backslash, and newline.
// The token lexeme holds the decoded value, not the raw source slice.
func (s *Scanner) scanString() {
	var value strings.Builder
	startLine := s.line
	for !s.isAtEnd() && s.peek() != '"' {
		c := s.advance()
		if c == '\n' {
			s.reportError("Unterminated string.")
			return
		}
		if c == '\\' {
			if s.isAtEnd() {
				break
			}
			e := s.advance()
			switch e {
			case '"':
				value.WriteByte('"')
			case '\\':
				value.WriteByte('\\')
			case 'n':
				value.WriteByte('\n')
			default:
				s.reportError(fmt.Sprintf("Invalid escape sequence: \\%c", e))
				return
			}
			continue
		}
		value.WriteByte(c)
	}
	if s.isAtEnd() {
		s.reportError("Unterminated string.")
		return
	}
	s.advance() // closing quote
	s.tokens = append(s.tokens, Token{
		Type:     STRING,
		Lexeme:   value.String(),
		Position: Position{Line: startLine, Column: s.startColumn, Offset: s.start},
		Length:   s.current - s.start,
	})
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

func (s *Scanner) scanLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

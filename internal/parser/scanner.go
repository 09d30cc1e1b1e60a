package parser

import (
	"strings"
	"unicode/utf8"

	"utopia/internal/ast"
)

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
	err         *LexError
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Tokenize scans the whole source. On failure it returns a *LexError for the
// first offending character and no tokens.
func Tokenize(source string) ([]Token, error) {
	return NewScanner(source).ScanTokens()
}

func (s *Scanner) ScanTokens() ([]Token, error) {
	for !s.isAtEnd() && s.err == nil {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	if s.err != nil {
		return nil, s.err
	}
	s.tokens = append(s.tokens, Token{
		Type: EOF,
		Span: ast.NewSpan(s.current, s.current, s.line, s.column),
	})
	return s.tokens, nil
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case ',':
		s.addToken(COMMA)
	case '.':
		s.addToken(DOT)
	case ';':
		s.addToken(SEMICOLON)
	case '@':
		s.addToken(AT)
	case '*':
		s.addToken(STAR)
	case '%':
		s.addToken(PERCENT)

	// Operators with potential multi-character variants
	case '-':
		s.scanMinusOperator()
	case '+':
		s.scanPlusOperator()
	case ':':
		s.scanColonOperator()
	case '!':
		s.scanBangOperator()
	case '=':
		s.scanEqualOperator()
	case '&':
		s.scanAmpersandOperator()
	case '|':
		s.scanPipeOperator()
	case '<':
		s.scanLessOperator()
	case '>':
		s.scanGreaterOperator()
	case '/':
		s.scanSlashOperator()

	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		s.addToken(NEWLINE)

	// Literals
	case '"':
		s.scanString()
	case '\'':
		s.scanChar()
	case '`':
		s.scanTemplate()

	default:
		s.scanDefault(c)
	}
}

// Operator scanning methods

func (s *Scanner) scanMinusOperator() {
	if s.matchNext('-') {
		s.addToken(DECREMENT)
	} else if s.matchNext('>') {
		s.addToken(ARROW)
	} else {
		s.addToken(MINUS)
	}
}

func (s *Scanner) scanPlusOperator() {
	if s.matchNext('+') {
		s.addToken(INCREMENT)
	} else {
		s.addToken(PLUS)
	}
}

func (s *Scanner) scanColonOperator() {
	if s.matchNext(':') {
		s.addToken(DOUBLE_COLON)
	} else {
		s.addToken(COLON)
	}
}

func (s *Scanner) scanBangOperator() {
	if s.matchNext('=') {
		s.addToken(BANG_EQUAL)
	} else {
		s.addToken(BANG)
	}
}

func (s *Scanner) scanEqualOperator() {
	if s.matchNext('=') {
		s.addToken(EQUAL_EQUAL)
	} else {
		s.addToken(EQUAL)
	}
}

func (s *Scanner) scanAmpersandOperator() {
	if s.matchNext('&') {
		s.addToken(AND)
	} else {
		s.unexpected('&')
	}
}

func (s *Scanner) scanPipeOperator() {
	if s.matchNext('|') {
		s.addToken(OR)
	} else {
		s.unexpected('|')
	}
}

func (s *Scanner) scanLessOperator() {
	if s.matchNext('=') {
		s.addToken(LESS_EQUAL)
	} else {
		s.addToken(LESS)
	}
}

func (s *Scanner) scanGreaterOperator() {
	if s.matchNext('=') {
		s.addToken(GREATER_EQUAL)
	} else {
		s.addToken(GREATER)
	}
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('/') {
		s.scanSingleLineComment()
	} else {
		s.addToken(SLASH)
	}
}

func (s *Scanner) scanDefault(c rune) {
	if isDigit(c) {
		s.scanNumber()
	} else if isAlpha(c) {
		s.scanIdentifier()
	} else {
		s.unexpected(c)
	}
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return r
}

func (s *Scanner) matchNext(expected rune) bool {
	if s.isAtEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current+size:])
	return r
}

func (s *Scanner) span() ast.Span {
	return ast.NewSpan(s.start, s.current, s.startLine, s.startColumn)
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.addLiteralToken(tokenType, "")
}

func (s *Scanner) addLiteralToken(tokenType TokenType, literal string) {
	s.tokens = append(s.tokens, Token{
		Type:    tokenType,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Span:    s.span(),
	})
}

func (s *Scanner) unexpected(c rune) {
	s.err = lexErrorf(UnexpectedCharacter, s.span(),
		"unexpected character '%c' at line %d, column %d", c, s.startLine, s.startColumn)
	s.err.Char = c
}

func (s *Scanner) unterminated(kind LexErrorKind) {
	s.err = lexErrorf(kind, s.span(), "%s at line %d, column %d", kind, s.startLine, s.startColumn)
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	s.addToken(lookupIdentifier(s.source[s.start:s.current]))
}

// scanNumber reads digits, an optional fraction and an optional exponent.
// A '.' after the digits always belongs to the number, and so does an 'e'
// with or without exponent digits; the parser rejects text that is not a
// valid float.
func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		s.advance()
		if s.peek() == '+' || s.peek() == '-' {
			s.advance()
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.addToken(NUMBER)
}

func (s *Scanner) scanString() {
	value, ok := s.scanQuoted('"', false)
	if !ok {
		s.unterminated(UnterminatedString)
		return
	}
	s.addLiteralToken(STRING, value)
}

func (s *Scanner) scanTemplate() {
	value, ok := s.scanQuoted('`', true)
	if !ok {
		s.unterminated(UnterminatedTemplate)
		return
	}
	s.addLiteralToken(STRING, value)
}

// scanQuoted reads up to and including the closing quote, decoding escapes.
func (s *Scanner) scanQuoted(quote rune, template bool) (string, bool) {
	var sb strings.Builder
	for !s.isAtEnd() && s.peek() != quote {
		c := s.advance()
		if c != '\\' {
			sb.WriteRune(c)
			continue
		}
		if s.isAtEnd() {
			return "", false
		}
		s.writeEscape(&sb, s.advance(), template)
	}
	if s.isAtEnd() {
		return "", false
	}
	s.advance()
	return sb.String(), true
}

func (s *Scanner) scanChar() {
	if s.isAtEnd() {
		s.unterminated(UnterminatedChar)
		return
	}
	var sb strings.Builder
	c := s.advance()
	if c == '\\' {
		if s.isAtEnd() {
			s.unterminated(UnterminatedChar)
			return
		}
		s.writeEscape(&sb, s.advance(), false)
	} else {
		sb.WriteRune(c)
	}
	if !s.matchNext('\'') {
		s.unterminated(UnterminatedChar)
		return
	}
	s.addLiteralToken(STRING, sb.String())
}

// writeEscape decodes the character after a backslash. Unknown escapes keep
// the backslash.
func (s *Scanner) writeEscape(sb *strings.Builder, e rune, template bool) {
	switch e {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '\\', '\'', '"':
		sb.WriteRune(e)
	case '`', '$':
		if template {
			sb.WriteRune(e)
			return
		}
		sb.WriteByte('\\')
		sb.WriteRune(e)
	default:
		sb.WriteByte('\\')
		sb.WriteRune(e)
	}
}

func (s *Scanner) scanSingleLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
	text := s.source[s.start:s.current]
	s.addLiteralToken(COMMENT, strings.TrimPrefix(text, "//"))
}

package lsp

import (
	"strings"

	"utopia/internal/parser"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

func tokenTypeIndex(name string) int {
	for i, t := range SemanticTokenTypes {
		if t == name {
			return i
		}
	}
	return -1
}

// collectSemanticTokens classifies lexer tokens. Identifiers are typed by
// their neighbours: `lang::fn` gives a namespace and a function, names after
// `function`, `let` and `const` are declarations, and annotations are types.
func collectSemanticTokens(source string, tokens []parser.Token) []SemanticToken {
	// significant tokens only, so neighbours skip comments and newlines
	var sig []parser.Token
	for _, tok := range tokens {
		if tok.Type != parser.COMMENT && tok.Type != parser.NEWLINE && tok.Type != parser.EOF {
			sig = append(sig, tok)
		}
	}
	at := func(i int) parser.TokenType {
		if i < 0 || i >= len(sig) {
			return parser.EOF
		}
		return sig[i].Type
	}

	kinds := make(map[int]classified, len(sig))
	paramDepth := 0 // > 0 inside a function's parameter list
	for i, tok := range sig {
		switch tok.Type {
		case parser.LEFT_PAREN:
			if paramDepth > 0 {
				paramDepth++
			} else if at(i-1) == parser.IDENTIFIER && at(i-2) == parser.FUNCTION {
				paramDepth = 1
			}
			continue
		case parser.RIGHT_PAREN:
			if paramDepth > 0 {
				paramDepth--
			}
			continue
		case parser.IDENTIFIER:
		default:
			continue
		}

		var c classified
		prev, next := at(i-1), at(i+1)
		switch {
		case prev == parser.LANG:
			c = classified{"namespace", modDeclaration}
		case prev == parser.FUNCTION:
			c = classified{"function", modDeclaration}
		case next == parser.DOUBLE_COLON:
			c = classified{"namespace", 0}
		case prev == parser.DOUBLE_COLON, next == parser.LEFT_PAREN:
			c = classified{"function", 0}
		case prev == parser.LET:
			c = classified{"variable", modDeclaration}
		case prev == parser.CONST:
			c = classified{"variable", modDeclaration | modReadonly}
		case prev == parser.ARROW:
			c = classified{"type", 0}
		case paramDepth > 0 && prev == parser.COLON:
			c = classified{"type", 0}
		case paramDepth > 0:
			c = classified{"parameter", modDeclaration}
		case prev == parser.COLON && at(i-2) == parser.IDENTIFIER && (at(i-3) == parser.LET || at(i-3) == parser.CONST):
			c = classified{"type", 0}
		case prev == parser.DOT, next == parser.COLON:
			c = classified{"property", 0}
		default:
			c = classified{"variable", 0}
		}
		kinds[i] = c
	}

	var out []SemanticToken
	i := 0
	for _, tok := range tokens {
		var c classified
		switch {
		case tok.Type == parser.COMMENT:
			c = classified{"comment", 0}
		case tok.Type == parser.NEWLINE || tok.Type == parser.EOF:
			continue
		default:
			if i >= len(sig) || sig[i].Span != tok.Span {
				continue
			}
			c = classifyToken(tok.Type, kinds, i)
			i++
		}
		if c.name == "" {
			continue
		}

		text := source[tok.Span.Start:tok.Span.End]
		if strings.Contains(text, "\n") {
			continue
		}
		pos := positionAt(source, tok.Span.Start)
		out = append(out, SemanticToken{
			Line:           pos.Line,
			StartChar:      pos.Character,
			Length:         uint32(utf16Len(text)),
			TokenType:      tokenTypeIndex(c.name),
			TokenModifiers: c.modifiers,
		})
	}
	return out
}

type classified struct {
	name      string
	modifiers int
}

func classifyToken(tt parser.TokenType, kinds map[int]classified, i int) classified {
	switch {
	case tt == parser.IDENTIFIER:
		return kinds[i]
	case tt.IsKeyword():
		return classified{"keyword", 0}
	case tt.IsOperator():
		return classified{"operator", 0}
	case tt == parser.NUMBER:
		return classified{"number", 0}
	case tt == parser.STRING:
		return classified{"string", 0}
	}
	return classified{}
}

// encodeSemanticTokens applies the LSP relative encoding.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

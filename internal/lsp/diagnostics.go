package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"utopia/internal/ast"
	"utopia/internal/errors"
)

// ConvertDiagnostics turns compiler diagnostics into LSP diagnostics.
// Suggestions, notes and help text are appended to the message.
func ConvertDiagnostics(source string, diags []errors.CompilerError) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		diagnostic := protocol.Diagnostic{
			Range:    spanRange(source, d.Span),
			Severity: &severity,
			Source:   ptrString("utopia"),
			Message:  diagnosticMessage(d),
		}
		if d.Code != "" {
			diagnostic.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		out = append(out, diagnostic)
	}
	return out
}

func diagnosticMessage(d errors.CompilerError) string {
	var sb strings.Builder
	sb.WriteString(d.Message)
	for _, s := range d.Suggestions {
		sb.WriteString("\nsuggestion: ")
		sb.WriteString(s.Message)
	}
	for _, n := range d.Notes {
		sb.WriteString("\nnote: ")
		sb.WriteString(n)
	}
	if d.HelpText != "" {
		sb.WriteString("\nhelp: ")
		sb.WriteString(d.HelpText)
	}
	return sb.String()
}

// spanRange converts a span to an LSP range. An empty span is widened to
// one character so editors still show it.
func spanRange(source string, span ast.Span) protocol.Range {
	start := positionAt(source, span.Start)
	end := positionAt(source, span.End)
	if span.IsEmpty() {
		end = start
		end.Character++
	}
	return protocol.Range{Start: start, End: end}
}

// positionAt maps a byte offset to a zero-based line and a column counted
// in UTF-16 code units, as LSP positions are.
func positionAt(source string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(source))
	line := strings.Count(source[:offset], "\n")
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(utf16Len(source[lineStart:offset])),
	}
}

// utf16Len is the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}

// offsetAt maps a zero-based line and UTF-16 column to a byte offset.
// Positions past the end of a line clamp to the line end, and a column
// inside a surrogate pair moves past the whole character.
func offsetAt(source string, pos protocol.Position) int {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := strings.IndexByte(source[offset:], '\n')
		if next < 0 {
			return len(source)
		}
		offset += next + 1
	}
	for col := 0; col < int(pos.Character) && offset < len(source); {
		r, size := utf8.DecodeRuneInString(source[offset:])
		if r == '\n' {
			break
		}
		offset += size
		col += max(utf16.RuneLen(r), 1)
	}
	return offset
}

package ast

import "fmt"

// Span is a half-open byte range [Start, End) into the source. Line and
// Column are 1-based and locate Start.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// NewSpan builds a span, clamping End so that End >= Start always holds.
func NewSpan(start, end, line, column int) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end, Line: line, Column: column}
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) IsEmpty() bool { return s.End == s.Start }

// Contains reports whether offset falls inside the span. An empty span
// contains its own start so zero-width tokens can still be located.
func (s Span) Contains(offset int) bool {
	if s.IsEmpty() {
		return offset == s.Start
	}
	return offset >= s.Start && offset < s.End
}

// Cover returns the smallest span holding both s and other.
func (s Span) Cover(other Span) Span {
	out := s
	if other.Start < s.Start {
		out.Start, out.Line, out.Column = other.Start, other.Line, other.Column
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Text slices source by the span, returning "" when it is out of range.
func (s Span) Text(source string) string {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return ""
	}
	return source[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpanClampsEnd(t *testing.T) {
	s := NewSpan(10, 4, 2, 3)
	assert.Equal(t, 10, s.End)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}

func TestSpanContains(t *testing.T) {
	s := NewSpan(4, 8, 1, 5)
	assert.False(t, s.Contains(3))
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))

	empty := NewSpan(6, 6, 1, 7)
	assert.True(t, empty.Contains(6))
	assert.False(t, empty.Contains(7))
}

func TestSpanCover(t *testing.T) {
	a := NewSpan(10, 12, 2, 1)
	b := NewSpan(3, 5, 1, 4)

	c := a.Cover(b)
	assert.Equal(t, NewSpan(3, 12, 1, 4), c)
	assert.Equal(t, c, b.Cover(a))
}

func TestSpanText(t *testing.T) {
	source := "let x = 1"
	assert.Equal(t, "x", NewSpan(4, 5, 1, 5).Text(source))
	assert.Equal(t, "", NewSpan(4, 50, 1, 5).Text(source))
	assert.Equal(t, "", NewSpan(9, 9, 1, 10).Text(source))
	assert.Equal(t, "3:7", NewSpan(0, 0, 3, 7).String())
}

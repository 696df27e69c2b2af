package pager

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"fits", "short line", 20, []string{"short line"}},
		{"empty", "", 20, []string{""}},
		{"words", "one two three four", 9, []string{"one two", "three", "four"}},
		{"long word", "abcdefghijkl mn", 5, []string{"abcde", "fghij", "kl mn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.line, tt.width))
		})
	}
}

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestPager_Scroll(t *testing.T) {
	p := New(nil, nil)
	p.SetDimensions(80, 16) // ten lines per page
	p.SetContent("Draft", numbered(25))
	require.Len(t, p.Lines(), 25)

	assert.True(t, p.HandleKey("j"))
	assert.Equal(t, 1, p.Offset())
	assert.True(t, p.HandleKey("k"))
	assert.True(t, p.HandleKey("k"))
	assert.Equal(t, 0, p.Offset())

	p.HandleKey("pgdown")
	assert.Equal(t, 10, p.Offset())
	p.HandleKey("pgdown")
	assert.Equal(t, 15, p.Offset(), "clamped to the last page")
	p.HandleKey("g")
	assert.Equal(t, 0, p.Offset())
	p.HandleKey("G")
	assert.Equal(t, 15, p.Offset())

	assert.False(t, p.HandleKey("x"))

	view := p.View()
	assert.Contains(t, view, "Draft")
	assert.Contains(t, view, "line 25")
	assert.NotContains(t, view, "line 15\n")
	assert.Contains(t, view, "[100%] line 16-25 of 25")
}

func TestPager_SetContentResets(t *testing.T) {
	p := New(nil, nil)
	p.SetDimensions(80, 10)
	p.SetContent("a", numbered(30))
	p.HandleKey("G")
	require.Positive(t, p.Offset())

	p.SetContent("b", "")
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, "b", p.Title())
	assert.Contains(t, p.View(), "(empty)")
}

func TestPager_ResizeClampsOffset(t *testing.T) {
	p := New(nil, nil)
	p.SetDimensions(80, 10)
	p.SetContent("a", numbered(12))
	p.HandleKey("G")

	p.SetDimensions(80, 40)
	assert.Equal(t, 0, p.Offset())
}

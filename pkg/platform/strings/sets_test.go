package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "trims and dedupes", input: []string{" basic-card ", "basic-card", "", "  "}, expected: []string{"basic-card"}},
		{name: "keeps order", input: []string{"b", "a", "b"}, expected: []string{"b", "a"}},
		{name: "preserves case", input: []string{"Visa", "visa"}, expected: []string{"Visa", "visa"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		SplitList("https://a.example, https://b.example,,https://a.example"))
}

func TestIntersect(t *testing.T) {
	assert.Equal(t, []string{"visa", "amex"}, Intersect([]string{"visa", "jcb", "amex"}, []string{"amex", "visa"}))
	assert.Nil(t, Intersect(nil, []string{"visa"}))
	assert.True(t, Overlaps([]string{"basic-card"}, []string{"x", "basic-card"}))
	assert.False(t, Overlaps([]string{"basic-card"}, nil))
}

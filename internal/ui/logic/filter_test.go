package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSpans(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want []Span
	}{
		{"empty term", "Apple", "", nil},
		{"empty text", "", "a", nil},
		{"no match", "Banana", "kiwi", nil},
		{"case insensitive", "Apple", "aP", []Span{{0, 2}}},
		{"repeated", "Banana", "an", []Span{{1, 3}, {3, 5}}},
		{"non overlapping", "aaaa", "aa", []Span{{0, 2}, {2, 4}}},
		{"multibyte", "Ärmel aus Ä", "ä", []Span{{0, 2}, {11, 13}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSpans(tt.text, tt.term))
		})
	}
}

func TestMatchSpansSliceOriginalText(t *testing.T) {
	text := "red FRUIT and fruit"
	var got []string
	for _, s := range MatchSpans(text, "fruit") {
		got = append(got, text[s.Start:s.End])
	}
	assert.Equal(t, []string{"FRUIT", "fruit"}, got)
}

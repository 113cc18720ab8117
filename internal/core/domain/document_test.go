package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Text(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		assert.Empty(t, Document{}.Text())
	})

	t.Run("single page", func(t *testing.T) {
		doc := Document{Pages: []Page{{Number: 1, Text: "only page"}}}
		assert.Equal(t, "only page", doc.Text())
	})

	t.Run("pages joined by newline", func(t *testing.T) {
		doc := Document{Pages: []Page{
			{Number: 1, Text: "first"},
			{Number: 2, Text: "second"},
			{Number: 3, Text: ""},
		}}
		assert.Equal(t, "first\nsecond\n", doc.Text())
	})
}

func TestSection_Length(t *testing.T) {
	t.Run("counts runes not bytes", func(t *testing.T) {
		s := Section{Text: "héllo wörld"}
		assert.Equal(t, 11, s.Length())
	})

	t.Run("ignores surrounding whitespace", func(t *testing.T) {
		s := Section{Text: "  \n body \t"}
		assert.Equal(t, 4, s.Length())
	})

	t.Run("empty section", func(t *testing.T) {
		assert.Zero(t, Section{}.Length())
	})
}

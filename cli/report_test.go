package cli

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-management/library"
)

func Test_TruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short ascii", "Book1", 30, "Book1"},
		{"long ascii", "abcdefghij", 8, "abcde..."},
		{"exact cyrillic", "Война и мир", 11, "Война и мир"},
		{"long cyrillic", "Преступление и наказание", 10, "Преступ..."},
		{"tiny limit", "Достоевский", 2, "До"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateString(tt.in, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.maxLen)
		})
	}
}

func Test_PrintCatalog_MultiByteTitle(t *testing.T) {
	var out bytes.Buffer
	PrintCatalog(&out, []library.Book{
		{ID: 1, Title: "AПроизведения Достоевского и Толстого", Author: "Федор Михайлович Достоевский", Quantity: 2},
		{ID: 2, Title: "Book2", Author: "Author2", Quantity: 3},
	})

	s := out.String()
	require.True(t, utf8.ValidString(s))

	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, 6)
	row := lines[4]
	assert.Contains(t, row, "AПроизведения Достоевского ...")
	assert.Contains(t, row, "Федор Михайлович Досто...")

	// Columns line up by character count, not byte count.
	assert.Equal(t, utf8.RuneCountInString(lines[5][:strings.Index(lines[5], "3")]),
		utf8.RuneCountInString(row[:strings.LastIndex(row, "2")]))
}

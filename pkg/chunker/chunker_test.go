package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	c := New()

	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n\t  "))
}

func TestSplitShortInput(t *testing.T) {
	c := New()

	chunks := c.Split("  A short note about mitochondria.  ")

	require.Len(t, chunks, 1)
	assert.Equal(t, "A short note about mitochondria.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].SequenceIndex)
	assert.Nil(t, chunks[0].Page)
}

func TestSplitLongInputOverlapsAndCoversAll(t *testing.T) {
	c := NewWithSize(100, 20)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog. ")
	}
	text := b.String()

	chunks := c.Split(text)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.SequenceIndex)
		assert.LessOrEqual(t, len([]rune(chunk.Text)), 100)
		assert.NotEmpty(t, chunk.Text)
	}

	// The final sentence must survive into the last chunk.
	assert.Contains(t, chunks[len(chunks)-1].Text, "lazy dog.")
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	c := NewWithSize(100, 10)

	first := strings.Repeat("a", 85)
	second := strings.Repeat("b", 80)
	chunks := c.Split(first + "\n\n" + second)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, first, chunks[0].Text)
	assert.False(t, strings.Contains(chunks[0].Text, "b"))
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	c := NewWithSize(100, 10)

	first := strings.Repeat("a", 84) + ". "
	second := strings.Repeat("b", 80)
	chunks := c.Split(first + second)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, strings.TrimSpace(first), chunks[0].Text)
}

func TestSplitDeterministic(t *testing.T) {
	c := New()
	text := strings.Repeat("Cells divide through mitosis. ", 100)

	assert.Equal(t, c.Split(text), c.Split(text))
}

func TestSplitPagesNeverMixesPages(t *testing.T) {
	c := NewWithSize(50, 10)

	pages := []Page{
		{Number: 1, Text: strings.Repeat("alpha ", 30)},
		{Number: 2, Text: strings.Repeat("beta ", 30)},
		{Number: 3, Text: ""},
	}

	chunks := c.SplitPages(pages)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.SequenceIndex)
		require.NotNil(t, chunk.Page)
		switch *chunk.Page {
		case 1:
			assert.NotContains(t, chunk.Text, "beta")
		case 2:
			assert.NotContains(t, chunk.Text, "alpha")
		default:
			t.Fatalf("chunk produced for empty page %d", *chunk.Page)
		}
	}
}

func TestSplitPaginatedNumbersFromOne(t *testing.T) {
	c := New()

	chunks := c.SplitPaginated("page one text" + PageBreak + "page two text")

	require.Len(t, chunks, 2)
	assert.Equal(t, 1, *chunks[0].Page)
	assert.Equal(t, "page one text", chunks[0].Text)
	assert.Equal(t, 2, *chunks[1].Page)
	assert.Equal(t, "page two text", chunks[1].Text)
}

func TestNewWithSizeClampsBadConfig(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{name: "zero size", chunkSize: 0, overlap: 10},
		{name: "negative overlap", chunkSize: 100, overlap: -5},
		{name: "overlap exceeds size", chunkSize: 50, overlap: 200},
	}

	text := strings.Repeat("word ", 500)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewWithSize(tt.chunkSize, tt.overlap)
			chunks := c.Split(text)
			assert.NotEmpty(t, chunks)
		})
	}
}

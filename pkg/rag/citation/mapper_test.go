package citation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"ai-studymate-be/pkg/rag/retriever"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(n int) *int { return &n }

func TestMapFirstSeenNumbering(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()
	idC := uuid.New()

	// Ranked order A, B, A, C: A keeps number 1 on its second appearance.
	chunks := []retriever.RetrievedChunk{
		{DocumentID: idA, DisplayName: "Biology.pdf", Text: "cells divide", Page: page(3)},
		{DocumentID: idB, DisplayName: "Chemistry.pdf", Text: "atoms bond", Page: page(7)},
		{DocumentID: idA, DisplayName: "Biology.pdf", Text: "mitosis phases", Page: page(5)},
		{DocumentID: idC, DisplayName: "Notes", Text: "exam tips"},
	}

	citations, contextBlock := Map(chunks)

	require.Len(t, citations, 3)
	assert.Equal(t, 1, citations[0].Number)
	assert.Equal(t, idA, citations[0].DocumentID)
	assert.Equal(t, 2, citations[1].Number)
	assert.Equal(t, idB, citations[1].DocumentID)
	assert.Equal(t, 3, citations[2].Number)
	assert.Equal(t, idC, citations[2].DocumentID)

	// Both of A's chunks carry the same number in the context block.
	assert.Equal(t, 2, strings.Count(contextBlock, "Source [1]: Biology.pdf"))
	assert.Contains(t, contextBlock, "Source [2]: Chemistry.pdf (Page 7)")
	assert.Contains(t, contextBlock, "Source [3]: Notes\n---\n")
}

func TestMapUnionsPagesAscending(t *testing.T) {
	id := uuid.New()
	chunks := []retriever.RetrievedChunk{
		{DocumentID: id, DisplayName: "Doc", Text: "x", Page: page(9)},
		{DocumentID: id, DisplayName: "Doc", Text: "y", Page: page(2)},
		{DocumentID: id, DisplayName: "Doc", Text: "z", Page: page(9)},
	}

	citations, _ := Map(chunks)

	require.Len(t, citations, 1)
	assert.Equal(t, []int{2, 9}, citations[0].Pages)
}

func TestMapNoPagesForUnpaginatedSource(t *testing.T) {
	chunks := []retriever.RetrievedChunk{
		{DocumentID: uuid.New(), DisplayName: "Transcript", Text: "hello"},
	}

	citations, contextBlock := Map(chunks)

	require.Len(t, citations, 1)
	assert.Nil(t, citations[0].Pages)
	assert.NotContains(t, contextBlock, "(Page")
}

func TestMapSnippetTruncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	chunks := []retriever.RetrievedChunk{
		{DocumentID: uuid.New(), DisplayName: "Doc", Text: long},
	}

	citations, _ := Map(chunks)

	require.Len(t, citations, 1)
	assert.Len(t, citations[0].Snippet, 203)
	assert.True(t, strings.HasSuffix(citations[0].Snippet, "..."))
}

func TestMapSnippetTruncationKeepsRunesIntact(t *testing.T) {
	// A multibyte rune straddling the cut must not be split into a
	// half-encoded byte sequence.
	long := strings.Repeat("a", 199) + "é" + strings.Repeat("b", 100)
	chunks := []retriever.RetrievedChunk{
		{DocumentID: uuid.New(), DisplayName: "Doc", Text: long},
	}

	citations, _ := Map(chunks)

	require.Len(t, citations, 1)
	snippet := citations[0].Snippet
	assert.True(t, utf8.ValidString(snippet))
	assert.Equal(t, strings.Repeat("a", 199)+"é...", snippet)
	assert.Equal(t, 203, utf8.RuneCountInString(snippet))
}

func TestMapContextBlockFormat(t *testing.T) {
	chunks := []retriever.RetrievedChunk{
		{DocumentID: uuid.New(), DisplayName: "Slides.pdf", Text: "entropy rises", Page: page(4)},
	}

	_, contextBlock := Map(chunks)

	assert.Equal(t, "Source [1]: Slides.pdf (Page 4)\n---\nentropy rises\n---\n\n", contextBlock)
}

func TestMapEmpty(t *testing.T) {
	citations, contextBlock := Map(nil)

	assert.Empty(t, citations)
	assert.Empty(t, contextBlock)
}

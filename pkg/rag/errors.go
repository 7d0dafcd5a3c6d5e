// Package rag holds the error taxonomy shared by the retrieval and answer
// pipeline. Callers match with errors.Is and map the kinds to transport
// errors at the HTTP boundary.
package rag

import "errors"

var (
	// ErrEmbeddingFailed covers an unavailable embedding backend or an
	// empty document; ingestion aborts and no partial index is published.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIndexNotFound means the requested document has no persisted index.
	// Retrieval treats the document as unprocessed and skips it.
	ErrIndexNotFound = errors.New("index not found")

	// ErrNoMaterials is returned when none of the requested documents had a
	// loadable index, as opposed to loaded indices simply not matching.
	ErrNoMaterials = errors.New("no materials available")

	// ErrGenerationFailed is a completion backend error. It is surfaced,
	// never replaced with a fabricated answer.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrMalformedOutput means the backend returned empty or unparseable
	// output where structured output was expected.
	ErrMalformedOutput = errors.New("malformed backend output")
)

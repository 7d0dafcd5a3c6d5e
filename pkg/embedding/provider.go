package embedding

import "context"

// Task types hint the backend at the retrieval role of the text. Providers
// that do not distinguish between them (e.g. Ollama) ignore the hint.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider generates a fixed-length vector for a piece of text. All indices
// queried together must be built with the same provider and model, otherwise
// the vector spaces are incompatible.
type Provider interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

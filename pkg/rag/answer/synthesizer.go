package answer

import (
	"context"
	"fmt"
	"strings"

	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/rag"
)

// RefusalPhrase is the exact sentence the model is instructed to emit when
// the provided sources do not contain the answer. Callers compare against
// it verbatim to detect refusals.
const RefusalPhrase = "I'm sorry, I can't find the answer in the provided documents."

const promptTemplate = `You are a helpful study assistant. Answer the question using ONLY the sources below.

Rules:
- Cite every claim with the source number in square brackets, e.g. [1] or [2].
- Only cite source numbers that appear below.
- If the sources do not contain the answer, reply with exactly: %s

Sources:
%s
Question: %s

Answer:`

// Synthesizer turns a retrieved context block and a question into a grounded
// answer through the configured language model.
type Synthesizer struct {
	provider llm.Provider
	opts     []llm.Option
}

func New(provider llm.Provider, opts ...llm.Option) *Synthesizer {
	return &Synthesizer{provider: provider, opts: opts}
}

// BuildPrompt renders the grounding prompt for the given context block and
// question. Exposed so streaming and non-streaming paths share one prompt.
func BuildPrompt(contextBlock, question string) string {
	return fmt.Sprintf(promptTemplate, RefusalPhrase, contextBlock, question)
}

// Generate produces the full answer in one call. An empty completion counts
// as a generation failure, a model that returns nothing has not answered.
func (s *Synthesizer) Generate(ctx context.Context, contextBlock, question string) (string, error) {
	out, err := s.provider.Generate(ctx, BuildPrompt(contextBlock, question), s.opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", rag.ErrGenerationFailed, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty completion", rag.ErrGenerationFailed)
	}
	return out, nil
}

// GenerateStream produces the answer incrementally. The returned channel
// carries text events followed by exactly one terminal event.
func (s *Synthesizer) GenerateStream(ctx context.Context, contextBlock, question string) (<-chan llm.StreamEvent, error) {
	events, err := s.provider.GenerateStream(ctx, BuildPrompt(contextBlock, question), s.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrGenerationFailed, err)
	}
	return events, nil
}

package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubProvider) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.StreamEvent, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	events := make(chan llm.StreamEvent)
	go func() {
		defer close(events)
		for _, word := range strings.SplitAfter(s.response, " ") {
			events <- llm.StreamEvent{Text: word}
		}
		events <- llm.StreamEvent{Done: true}
	}()
	return events, nil
}

func TestGenerateIncludesContextAndQuestion(t *testing.T) {
	provider := &stubProvider{response: "Mitosis has four phases [1]."}
	s := New(provider)

	out, err := s.Generate(context.Background(), "Source [1]: Bio\n---\nmitosis\n---\n\n", "What is mitosis?")

	require.NoError(t, err)
	assert.Equal(t, "Mitosis has four phases [1].", out)
	assert.Contains(t, provider.lastPrompt, "Source [1]: Bio")
	assert.Contains(t, provider.lastPrompt, "What is mitosis?")
	assert.Contains(t, provider.lastPrompt, RefusalPhrase)
}

func TestGenerateWrapsProviderError(t *testing.T) {
	s := New(&stubProvider{err: errors.New("rate limited")})

	_, err := s.Generate(context.Background(), "ctx", "q")

	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateEmptyCompletionIsFailure(t *testing.T) {
	s := New(&stubProvider{response: "   \n"})

	_, err := s.Generate(context.Background(), "ctx", "q")

	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
}

func TestGenerateStreamDeliversAllText(t *testing.T) {
	s := New(&stubProvider{response: "short grounded answer [1]"})

	events, err := s.GenerateStream(context.Background(), "ctx", "q")
	require.NoError(t, err)

	var b strings.Builder
	sawDone := false
	for ev := range events {
		require.NoError(t, ev.Err)
		if ev.Done {
			sawDone = true
			continue
		}
		b.WriteString(ev.Text)
	}

	assert.True(t, sawDone)
	assert.Equal(t, "short grounded answer [1]", b.String())
}

func TestGenerateStreamWrapsSetupError(t *testing.T) {
	s := New(&stubProvider{err: errors.New("connect refused")})

	_, err := s.GenerateStream(context.Background(), "ctx", "q")

	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
}

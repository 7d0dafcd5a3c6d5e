package service

import (
	"testing"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/pkg/rag"
	"ai-studymate-be/pkg/rag/structured"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardSchemaAcceptsModelOutput(t *testing.T) {
	raw := "```json\n[{\"front\": \"What is osmosis?\", \"back\": \"Diffusion of water across a membrane.\"}]\n```"

	var cards []generatedCard
	err := structured.Decode(raw, flashcardSchema, &cards)

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "What is osmosis?", cards[0].Front)
}

func TestFlashcardSchemaRejectsMissingBack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing back field", `[{"front": "term"}]`},
		{"empty array", `[]`},
		{"not an array", `{"front": "a", "back": "b"}`},
		{"prose without json", "I could not generate any cards."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cards []generatedCard
			err := structured.Decode(tt.raw, flashcardSchema, &cards)
			assert.ErrorIs(t, err, rag.ErrMalformedOutput)
		})
	}
}

func TestQuizSchemaAcceptsModelOutput(t *testing.T) {
	raw := `Here is the quiz:
[
  {"question": "2+2?", "options": ["3", "4", "5", "6"], "answer": 1, "why": "Basic addition."}
]`

	var questions []entity.QuizQuestion
	err := structured.Decode(raw, quizSchema, &questions)

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Answer)
	assert.Len(t, questions[0].Options, 4)
}

func TestQuizSchemaRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"single option", `[{"question": "q", "options": ["only"], "answer": 0}]`},
		{"negative answer", `[{"question": "q", "options": ["a", "b"], "answer": -1}]`},
		{"answer as string", `[{"question": "q", "options": ["a", "b"], "answer": "a"}]`},
		{"missing options", `[{"question": "q", "answer": 0}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var questions []entity.QuizQuestion
			err := structured.Decode(tt.raw, quizSchema, &questions)
			assert.ErrorIs(t, err, rag.ErrMalformedOutput)
		})
	}
}

func TestMindMapSchemaAcceptsNestedOutput(t *testing.T) {
	raw := `{"label": "Photosynthesis", "children": [
		{"label": "Light reactions", "children": [{"label": "ATP"}]},
		{"label": "Calvin cycle"}
	]}`

	var root entity.MindMapNode
	err := structured.Decode(raw, mindMapSchema, &root)

	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis", root.Label)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "ATP", root.Children[0].Children[0].Label)
}

func TestMindMapSchemaRejectsMissingLabel(t *testing.T) {
	var root entity.MindMapNode
	err := structured.Decode(`{"children": []}`, mindMapSchema, &root)
	assert.ErrorIs(t, err, rag.ErrMalformedOutput)
}

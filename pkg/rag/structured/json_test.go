package structured

import (
	"testing"

	"ai-studymate-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["question", "options", "answer"],
				"properties": {
					"question": {"type": "string"},
					"options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
					"answer": {"type": "integer"}
				}
			}
		}
	}
}`

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "fenced with language tag",
			raw:  "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "fenced without language tag",
			raw:  "```\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "object buried in prose",
			raw:  `Sure! The result is {"a": [1, 2]} as requested.`,
			want: `{"a": [1, 2]}`,
		},
		{
			name: "array buried in prose",
			raw:  `The cards: ["front", "back"] done.`,
			want: `["front", "back"]`,
		},
		{
			name:    "empty",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "no json at all",
			raw:     "I cannot produce that.",
			wantErr: true,
		},
		{
			name:    "broken json",
			raw:     `{"a": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, rag.ErrMalformedOutput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateAcceptsConforming(t *testing.T) {
	payload := `{"questions": [{"question": "2+2?", "options": ["3", "4"], "answer": 1}]}`

	assert.NoError(t, Validate(payload, quizSchema))
}

func TestValidateRejectsNonConforming(t *testing.T) {
	payload := `{"questions": [{"question": "2+2?"}]}`

	err := Validate(payload, quizSchema)

	assert.ErrorIs(t, err, rag.ErrMalformedOutput)
}

func TestDecode(t *testing.T) {
	raw := "```json\n{\"questions\": [{\"question\": \"2+2?\", \"options\": [\"3\", \"4\"], \"answer\": 1}]}\n```"

	var out struct {
		Questions []struct {
			Question string   `json:"question"`
			Options  []string `json:"options"`
			Answer   int      `json:"answer"`
		} `json:"questions"`
	}
	require.NoError(t, Decode(raw, quizSchema, &out))

	require.Len(t, out.Questions, 1)
	assert.Equal(t, 1, out.Questions[0].Answer)
}

func TestDecodeSchemaViolation(t *testing.T) {
	var out map[string]any
	err := Decode(`{"questions": []}`, quizSchema, &out)

	assert.ErrorIs(t, err, rag.ErrMalformedOutput)
}

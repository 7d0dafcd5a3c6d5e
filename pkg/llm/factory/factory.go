package factory

import (
	"fmt"

	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/llm/gemini"
	"ai-studymate-be/pkg/llm/groq"
	"ai-studymate-be/pkg/llm/ollama"
)

// NewProvider builds the configured completion backend. Selection is pure
// configuration; callers receive the uniform llm.Provider contract and never
// branch on vendor.
func NewProvider(providerName, model, ollamaBaseURL, groqKey, geminiKey string) (llm.Provider, error) {
	switch providerName {
	case "groq":
		if groqKey == "" {
			return nil, fmt.Errorf("groq provider selected but GROQ_API_KEY is empty")
		}
		return groq.NewGroqProvider(groqKey, model), nil
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GOOGLE_GEMINI_API_KEY is empty")
		}
		return gemini.NewGeminiProvider(geminiKey, model), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "", "auto":
		// Prefer Groq, fall back to Gemini, then local Ollama.
		if groqKey != "" {
			return groq.NewGroqProvider(groqKey, model), nil
		}
		if geminiKey != "" {
			return gemini.NewGeminiProvider(geminiKey, model), nil
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", providerName)
	}
}

package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-studymate-be/pkg/llm"
)

// GeminiProvider calls the Google generative language API directly over HTTP.
type GeminiProvider struct {
	ApiKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.BuildOptions(opts)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, model)

	resp, err := p.send(ctx, endpoint, buildRequest(history, options))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed generateResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return flattenCandidates(parsed), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *GeminiProvider) GenerateStream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.StreamEvent, error) {
	options := llm.BuildOptions(opts)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}
	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.BaseURL, model)

	history := []llm.Message{{Role: "user", Content: prompt}}
	resp, err := p.send(ctx, endpoint, buildRequest(history, options))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("gemini error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	events := make(chan llm.StreamEvent)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

			var chunk generateResponse
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				p.emit(ctx, events, llm.StreamEvent{Err: fmt.Errorf("unmarshal stream chunk: %w", err)})
				return
			}
			text := flattenCandidates(chunk)
			if text == "" {
				continue
			}
			if !p.emit(ctx, events, llm.StreamEvent{Text: text}) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			p.emit(ctx, events, llm.StreamEvent{Err: fmt.Errorf("gemini stream read: %w", err)})
			return
		}
		// Gemini SSE has no [DONE] sentinel; clean EOF is the terminator.
		p.emit(ctx, events, llm.StreamEvent{Done: true})
	}()

	return events, nil
}

func (p *GeminiProvider) send(ctx context.Context, endpoint string, payload generateRequest) (*http.Response, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	return resp, nil
}

func (p *GeminiProvider) emit(ctx context.Context, events chan<- llm.StreamEvent, ev llm.StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func buildRequest(history []llm.Message, options *llm.Options) generateRequest {
	contents := make([]content, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		// Gemini only knows "user" and "model".
		if role == "assistant" {
			role = "model"
		}
		if role == "system" {
			role = "user"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}

	cfg := &generationConfig{Temperature: options.Temperature}
	if options.MaxTokens > 0 {
		cfg.MaxOutputTokens = options.MaxTokens
	}

	return generateRequest{Contents: contents, GenerationConfig: cfg}
}

func flattenCandidates(res generateResponse) string {
	if len(res.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

package mentor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/coordinator-insight/backend/internal/model/chat"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-3-flash-preview"

// GeminiBackend calls the Gemini API through the genai SDK. The client is
// created on first use so that a missing key surfaces as a call failure.
type GeminiBackend struct {
	apiKey  string
	baseURL string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiBackend returns a backend authenticated with apiKey. baseURL is
// optional and overrides the API endpoint.
func NewGeminiBackend(apiKey, baseURL string) *GeminiBackend {
	return &GeminiBackend{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimSpace(baseURL),
	}
}

// Generate sends the prior turns plus the new message as one GenerateContent call.
func (b *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	client, err := b.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	temperature := req.Temperature
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, model, geminiContents(req.History, req.Message), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini generate content: %w", ErrMalformedResponse)
	}
	return resp.Text(), nil
}

func (b *GeminiBackend) ensureClient(ctx context.Context) (*genai.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client != nil {
		return b.client, nil
	}
	if b.apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingCredential)
	}

	cfg := &genai.ClientConfig{
		APIKey:  b.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if b.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: b.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	b.client = client
	return client, nil
}

func geminiContents(history []chat.Turn, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Content, geminiRole(turn.Role)))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func geminiRole(role chat.Role) genai.Role {
	if chat.NormalizeRole(role) == chat.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

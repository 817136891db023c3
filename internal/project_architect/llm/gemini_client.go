package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// ErrEmptyResponse is returned when the service answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Part is one piece of a prompt: text, or inline bytes with a MIME type.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart builds a text-only prompt part.
func TextPart(s string) Part { return Part{Text: s} }

// BlobPart builds an inline data prompt part.
func BlobPart(data []byte, mimeType string) Part { return Part{Data: data, MIMEType: mimeType} }

// Model is the structured-completion surface the services depend on.
type Model interface {
	// GenerateJSON sends parts and returns the raw JSON text constrained by schema.
	GenerateJSON(ctx context.Context, parts []Part, schema *genai.Schema) (string, error)
}

// GeminiOptions configures the Gemini client.
type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient is optional. Nil means the SDK default transport and timeouts.
	HTTPClient *http.Client
}

// GeminiClient talks to the Gemini API through the genai SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGemini builds a client for the Gemini developer API.
func NewGemini(ctx context.Context, opt GeminiOptions) (*GeminiClient, error) {
	if strings.TrimSpace(opt.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if opt.Model == "" {
		opt.Model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     opt.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opt.HTTPClient,
	}
	if opt.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opt.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: opt.Model}, nil
}

// ModelName returns the configured model identifier.
func (g *GeminiClient) ModelName() string { return g.model }

func (g *GeminiClient) GenerateJSON(ctx context.Context, parts []Part, schema *genai.Schema) (string, error) {
	contents := []*genai.Content{genai.NewContentFromParts(toGenaiParts(parts), genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func toGenaiParts(parts []Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}

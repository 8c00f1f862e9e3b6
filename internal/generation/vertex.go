package generation

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// VertexConfig selects the Vertex AI project and model.
type VertexConfig struct {
	ProjectID       string
	Location        string
	Model           string
	CredentialsFile string
}

// VertexProvider implements Provider on Vertex AI Gemini models.
type VertexProvider struct {
	client    *genai.Client
	modelName string
}

// NewVertexProvider opens a Vertex AI client. Close it on shutdown.
func NewVertexProvider(ctx context.Context, cfg VertexConfig) (*VertexProvider, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("vertex provider requires project id and location")
	}
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	return &VertexProvider{client: client, modelName: modelName}, nil
}

// Close releases the underlying client.
func (p *VertexProvider) Close() error {
	return p.client.Close()
}

// GenerateJSON implements Provider.
func (p *VertexProvider) GenerateJSON(ctx context.Context, req Request) ([]byte, error) {
	text, err := p.generate(ctx, req, "application/json")
	if err != nil {
		return nil, err
	}
	return []byte(StripCodeFence(text)), nil
}

// GenerateText implements Provider.
func (p *VertexProvider) GenerateText(ctx context.Context, req Request) (string, error) {
	return p.generate(ctx, req, "")
}

func (p *VertexProvider) generate(ctx context.Context, req Request, mimeType string) (string, error) {
	// GenerativeModel carries per-call settings, so each call gets its own.
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to call model: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// StripCodeFence removes a surrounding ```json ... ``` block if the model added one.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var _ Provider = (*VertexProvider)(nil)

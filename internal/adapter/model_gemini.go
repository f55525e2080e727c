package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	"github.com/MKhiriev/cyber-aware/models"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

type geminiModelAdapter struct {
	client  *genai.Client
	model   string
	timeout time.Duration

	logger *logger.Logger
}

// NewGeminiModelAdapter constructs the Gemini implementation of
// [ModelAdapter]. baseURL overrides the API endpoint when non-empty.
func NewGeminiModelAdapter(ctx context.Context, assistantCfg config.ClientAssistant, adapterCfg config.ClientAdapter, baseURL string, logger *logger.Logger) (ModelAdapter, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  assistantCfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &geminiModelAdapter{
		client:  client,
		model:   assistantCfg.Model,
		timeout: adapterCfg.RequestTimeout,
		logger:  logger,
	}, nil
}

// GenerateText implements [ModelAdapter].
func (g *geminiModelAdapter) GenerateText(ctx context.Context, req ChatRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		contents = append(contents, genai.NewContentFromText(msg.Text, toGenaiRole(msg.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
		TopP:        genai.Ptr(req.TopP),
		TopK:        genai.Ptr(req.TopK),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	return g.generate(ctx, contents, cfg)
}

// GenerateJSON implements [ModelAdapter].
func (g *geminiModelAdapter) GenerateJSON(ctx context.Context, req StructuredRequest) ([]byte, error) {
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   req.Schema,
	}

	text, err := g.generate(ctx, contents, cfg)
	if err != nil {
		return nil, err
	}

	return []byte(text), nil
}

func (g *geminiModelAdapter) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	g.logger.Debug().
		Str("model", g.model).
		Dur("took", time.Since(start)).
		Int("chars", len(text)).
		Msg("model response received")

	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func toGenaiRole(role models.ChatRole) genai.Role {
	if role == models.ChatRoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

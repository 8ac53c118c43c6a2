package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-pro"

// GeminiConfig holds configuration for the Gemini OCR backend.
type GeminiConfig struct {
	APIKey       string
	Model        string // default: "gemini-2.5-pro"
	MaxDimension int    // images are downscaled to fit before transmission
}

// Gemini extracts text with the Gemini vision API.
type Gemini struct {
	cfg     GeminiConfig
	client  *genai.Client
	initErr error
}

// NewGemini creates a Gemini OCR adapter with defaults applied. Client
// construction failures are deferred to the first ExtractText call so the
// server can still start and report the error per request.
func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	g := &Gemini{cfg: cfg}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		g.initErr = err
		return g
	}
	g.client = client
	return g
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) ExtractText(ctx context.Context, req Request) (string, error) {
	if g.initErr != nil {
		return "", &Failure{Provider: g.Name(), Err: fmt.Errorf("client init: %w", g.initErr)}
	}

	data, mimeType := Prepare(req.Image, req.MimeType, g.cfg.MaxDimension)

	contents := []*genai.Content{{
		Role: string(genai.RoleUser),
		Parts: []*genai.Part{
			genai.NewPartFromText(extractionPrompt),
			genai.NewPartFromBytes(data, mimeType),
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &Failure{
				Provider: g.Name(),
				Err:      fmt.Errorf("api error (status %d): %s", apiErr.Code, strings.TrimSpace(apiErr.Message)),
			}
		}
		return "", &Failure{Provider: g.Name(), Err: err}
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	if content := resp.Candidates[0].Content; content != nil {
		for _, part := range content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI vision OCR backend.
type OpenAIConfig struct {
	APIKey       string
	Model        string // default: gpt-4o
	MaxDimension int
}

// OpenAI extracts text with an OpenAI vision-capable chat model.
type OpenAI struct {
	cfg    OpenAIConfig
	client *openai.Client
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}
	return &OpenAI{
		cfg:    cfg,
		client: openai.NewClient(cfg.APIKey),
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) ExtractText(ctx context.Context, req Request) (string, error) {
	data, mimeType := Prepare(req.Image, req.MimeType, o.cfg.MaxDimension)

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.cfg.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
			},
		}},
	})
	if err != nil {
		return "", &Failure{Provider: o.Name(), Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

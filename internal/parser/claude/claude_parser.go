package claude

import (
	"context"
	"errors"
	"fmt"

	"medclaim/internal/config"
	"medclaim/internal/parser"
	"medclaim/internal/port"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-sonnet-4-20250514"
	maxTokens    = 2048
)

func init() {
	parser.RegisterProvider("claude", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return NewParser(cfg), nil
	})
}

// Parser reads claim documents with the Anthropic Messages API.
type Parser struct {
	api   *parser.APIClient
	model string
}

// NewParser creates a Claude parser from a provider config.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return NewParserWithEndpoint(cfg, apiURL)
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	return &Parser{
		api: parser.NewAPIClient("claude", endpoint, cfg.TimeoutSecs, map[string]string{
			"x-api-key":         cfg.APIKey,
			"anthropic-version": apiVersion,
		}),
		model: model,
	}
}

type mediaSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type block struct {
	Type   string       `json:"type"`
	Source *mediaSource `json:"source,omitempty"`
	Text   string       `json:"text,omitempty"`
}

type message struct {
	Role    string  `json:"role"`
	Content []block `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if err := parser.CheckContentType(input.ContentType); err != nil {
		return nil, err
	}

	// PDFs go in a document block, images in an image block.
	kind := "image"
	if input.ContentType == "application/pdf" {
		kind = "document"
	}

	req := messagesRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: 0.1,
		Messages: []message{{
			Role: "user",
			Content: []block{
				{Type: kind, Source: &mediaSource{Type: "base64", MediaType: input.ContentType, Data: parser.EncodeFile(input.FileBytes)}},
				{Type: "text", Text: input.Prompt},
			},
		}},
	}

	var resp messagesResponse
	if err := p.api.PostJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("claude output truncated (stop_reason: max_tokens)")
	}
	var text string
	for _, c := range resp.Content {
		if c.Type == "" || c.Type == "text" {
			text = c.Text
			break
		}
	}
	if text == "" {
		return nil, errors.New("empty response from claude API")
	}

	raw, err := parser.DecodeJSONObject(text)
	if err != nil {
		return nil, err
	}
	return &port.ParseOutput{Raw: raw, ModelUsed: p.model, PromptUsed: input.Prompt}, nil
}

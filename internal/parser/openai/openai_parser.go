package openai

import (
	"context"
	"fmt"

	"medclaim/internal/config"
	"medclaim/internal/parser"
	"medclaim/internal/port"
)

const (
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o"
	maxTokens    = 2048
)

func init() {
	parser.RegisterProvider("openai", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return NewParser(cfg), nil
	})
}

// Parser reads claim documents with the OpenAI Chat Completions API.
type Parser struct {
	api   *parser.APIClient
	model string
}

// NewParser creates an OpenAI parser from a provider config.
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
		api:   parser.NewAPIClient("openai", endpoint, cfg.TimeoutSecs, map[string]string{"Authorization": "Bearer " + cfg.APIKey}),
		model: model,
	}
}

type fileRef struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type imageURL struct {
	URL string `json:"url"`
}

type contentPart struct {
	Type     string    `json:"type"`
	File     *fileRef  `json:"file,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
	Text     string    `json:"text,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model               string         `json:"model"`
	MaxCompletionTokens int            `json:"max_completion_tokens"`
	Messages            []chatMessage  `json:"messages"`
	ResponseFormat      responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if err := parser.CheckContentType(input.ContentType); err != nil {
		return nil, err
	}

	dataURI := "data:" + input.ContentType + ";base64," + parser.EncodeFile(input.FileBytes)
	doc := contentPart{Type: "image_url", ImageURL: &imageURL{URL: dataURI}}
	if input.ContentType == "application/pdf" {
		doc = contentPart{Type: "file", File: &fileRef{Filename: "document.pdf", FileData: dataURI}}
	}

	req := chatRequest{
		Model:               p.model,
		MaxCompletionTokens: maxTokens,
		Messages: []chatMessage{{
			Role:    "user",
			Content: []contentPart{doc, {Type: "text", Text: input.Prompt}},
		}},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	var resp chatResponse
	if err := p.api.PostJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai API: no choices")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		return nil, fmt.Errorf("openai output truncated (finish_reason: length)")
	}

	raw, err := parser.DecodeJSONObject(choice.Message.Content)
	if err != nil {
		return nil, err
	}
	return &port.ParseOutput{Raw: raw, ModelUsed: p.model, PromptUsed: input.Prompt}, nil
}

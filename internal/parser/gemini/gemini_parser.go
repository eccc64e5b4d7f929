package gemini

import (
	"context"
	"fmt"

	"medclaim/internal/config"
	"medclaim/internal/parser"
	"medclaim/internal/port"
)

const (
	apiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.5-flash"
)

// Medical documents trip the default safety filters on diagnoses and procedures.
var safetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

func init() {
	parser.RegisterProvider("gemini", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return NewParser(cfg), nil
	})
}

// Parser reads claim documents with Google's Gemini generateContent API.
type Parser struct {
	api   *parser.APIClient
	model string
}

// NewParser creates a Gemini parser for the configured model.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return NewParserWithEndpoint(cfg, "")
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
// An empty endpoint selects the public API for the configured model.
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Parser{
		api:   parser.NewAPIClient("gemini", endpoint, cfg.TimeoutSecs, map[string]string{"x-goog-api-key": cfg.APIKey}),
		model: model,
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	InlineData *inlineData `json:"inline_data,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if err := parser.CheckContentType(input.ContentType); err != nil {
		return nil, err
	}

	safety := make([]safetySetting, len(safetyCategories))
	for i, c := range safetyCategories {
		safety[i] = safetySetting{Category: c, Threshold: "BLOCK_NONE"}
	}

	req := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: input.ContentType, Data: parser.EncodeFile(input.FileBytes)}},
				{Text: input.Prompt},
			},
		}},
		GenerationConfig: generationConfig{Temperature: 0.1, ResponseMimeType: "application/json"},
		SafetySettings:   safety,
	}

	var resp generateResponse
	if err := p.api.PostJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	if reason := resp.PromptFeedback.BlockReason; reason != "" {
		return nil, fmt.Errorf("request blocked by gemini: %s", reason)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini API: no candidates")
	}
	cand := resp.Candidates[0]
	if len(cand.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini API: no parts (finish reason %q)", cand.FinishReason)
	}

	raw, err := parser.DecodeJSONObject(cand.Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	return &port.ParseOutput{Raw: raw, ModelUsed: p.model, PromptUsed: input.Prompt}, nil
}

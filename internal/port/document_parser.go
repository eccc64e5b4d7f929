package port

import (
	"context"
	"encoding/json"
)

// ParseInput carries one document and the instruction for the LLM.
type ParseInput struct {
	FileBytes   []byte
	ContentType string
	Prompt      string
}

// ParseOutput contains the JSON object returned by an LLM parser.
type ParseOutput struct {
	Raw        json.RawMessage
	ModelUsed  string
	PromptUsed string
}

// DocumentParser abstracts LLM-based document analysis.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}

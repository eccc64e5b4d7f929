package agent

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"medclaim/internal/domain"
	"medclaim/internal/parser"
	"medclaim/internal/port"
)

// ClassifierAgent assigns a document category to an uploaded file.
type ClassifierAgent struct {
	parser port.DocumentParser
	prompt string
}

// NewClassifierAgent creates a ClassifierAgent backed by the given parser.
func NewClassifierAgent(p port.DocumentParser) *ClassifierAgent {
	return &ClassifierAgent{parser: p, prompt: parser.BuildClassificationPrompt()}
}

type classification struct {
	DocumentType string `json:"document_type"`
}

// Classify returns the category of doc. Any parser or decoding failure yields DocumentTypeUnknown.
func (a *ClassifierAgent) Classify(ctx context.Context, doc domain.ClaimDocument) domain.DocumentType {
	out, err := a.parser.Parse(ctx, port.ParseInput{
		FileBytes:   doc.Data,
		ContentType: doc.ContentType,
		Prompt:      a.prompt,
	})
	if err != nil {
		zap.L().Warn("agent.ClassifierAgent.Classify: parser failed",
			zap.String("file", doc.Name), zap.Error(err))
		return domain.DocumentTypeUnknown
	}

	var c classification
	if err := json.Unmarshal(out.Raw, &c); err != nil {
		zap.L().Warn("agent.ClassifierAgent.Classify: unexpected output",
			zap.String("file", doc.Name), zap.Error(err))
		return domain.DocumentTypeUnknown
	}

	docType := domain.ParseDocumentType(strings.ToLower(strings.TrimSpace(c.DocumentType)))
	zap.L().Debug("agent.ClassifierAgent.Classify: classified",
		zap.String("file", doc.Name),
		zap.String("document_type", string(docType)),
		zap.String("model", out.ModelUsed))
	return docType
}

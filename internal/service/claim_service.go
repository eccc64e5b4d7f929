package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"medclaim/internal/agent"
	"medclaim/internal/domain"
	"medclaim/internal/port"
	"medclaim/internal/validator"
)

const fallbackContentType = "application/pdf"

// ClaimServiceConfig holds the tunables of claim processing.
type ClaimServiceConfig struct {
	Bucket        string
	ReviewerEmail string
	Concurrency   int
	Timeout       time.Duration
}

// ClaimService processes one claim submission end to end.
type ClaimService interface {
	ProcessClaim(ctx context.Context, docs []domain.ClaimDocument) (*domain.ProcessingResult, error)
}

type claimService struct {
	classifier *agent.ClassifierAgent
	extractor  *agent.ExtractionAgent
	engine     *validator.Engine
	claimRepo  port.ClaimRepository
	storage    port.ObjectStorage
	email      port.EmailSender
	cfg        ClaimServiceConfig
}

// NewClaimService creates a new ClaimService implementation.
func NewClaimService(
	classifier *agent.ClassifierAgent,
	extractor *agent.ExtractionAgent,
	engine *validator.Engine,
	claimRepo port.ClaimRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg ClaimServiceConfig,
) ClaimService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &claimService{
		classifier: classifier,
		extractor:  extractor,
		engine:     engine,
		claimRepo:  claimRepo,
		storage:    storage,
		email:      email,
		cfg:        cfg,
	}
}

func (s *claimService) ProcessClaim(ctx context.Context, docs []domain.ClaimDocument) (*domain.ProcessingResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoFiles
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	docs = append([]domain.ClaimDocument(nil), docs...)
	claimID := uuid.New()
	fileNames := make([]string, len(docs))
	for i := range docs {
		docs[i].ContentType = DetectContentType(docs[i].Data)
		fileNames[i] = docs[i].Name
	}

	extracted := make([]domain.ExtractedData, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range docs {
		g.Go(func() error {
			doc := docs[i]
			s.archive(gctx, claimID, i, doc)

			docType := s.classifier.Classify(gctx, doc)
			zap.L().Info("service.ClaimService.ProcessClaim: classified document",
				zap.String("claim_id", claimID.String()),
				zap.String("file", doc.Name),
				zap.String("document_type", string(docType)))

			extracted[i] = s.extractor.Extract(gctx, doc, docType)
			return nil
		})
	}
	// Workers never return an error; failures degrade the single document.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing claim: %w", err)
	}

	validation, decision := s.engine.Validate(ctx, extracted)
	result := &domain.ProcessingResult{
		Documents:     extracted,
		Validation:    validation,
		ClaimDecision: &decision,
	}

	s.persist(ctx, claimID, fileNames, result)
	s.notify(ctx, claimID, fileNames, result)

	return result, nil
}

// DetectContentType sniffs data and returns a MIME type the LLM providers accept.
// Anything unrecognised is sent as PDF.
func DetectContentType(data []byte) string {
	detected := mimetype.Detect(data)
	for ct := range domain.SupportedContentTypes {
		if detected.Is(ct) {
			return ct
		}
	}
	return fallbackContentType
}

// ArchiveKey returns the object key for the index-th document of a claim.
func ArchiveKey(claimID uuid.UUID, index int, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "document"
	}
	return fmt.Sprintf("claims/%s/%d-%s", claimID, index, base)
}

func (s *claimService) archive(ctx context.Context, claimID uuid.UUID, index int, doc domain.ClaimDocument) {
	key := ArchiveKey(claimID, index, doc.Name)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Data),
		ContentType: doc.ContentType,
		Size:        int64(len(doc.Data)),
		Metadata: map[string]string{
			"claim-id":      claimID.String(),
			"original-name": doc.Name,
		},
	})
	if err != nil {
		zap.L().Warn("service.ClaimService.archive: upload failed",
			zap.String("key", key), zap.Error(fmt.Errorf("%w: %w", domain.ErrStorageFailed, err)))
	}
}

func (s *claimService) persist(ctx context.Context, claimID uuid.UUID, fileNames []string, result *domain.ProcessingResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		zap.L().Error("service.ClaimService.persist: marshaling result", zap.Error(err))
		return
	}
	rec := &domain.ClaimRecord{
		ID:            claimID,
		Status:        result.ClaimDecision.Status,
		Reason:        result.ClaimDecision.Reason,
		DocumentCount: len(result.Documents),
		FileNames:     fileNames,
		Result:        raw,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.claimRepo.Create(ctx, rec); err != nil {
		zap.L().Error("service.ClaimService.persist: saving claim",
			zap.String("claim_id", claimID.String()), zap.Error(err))
	}
}

func (s *claimService) notify(ctx context.Context, claimID uuid.UUID, fileNames []string, result *domain.ProcessingResult) {
	if s.cfg.ReviewerEmail == "" || result.ClaimDecision.Status == domain.ClaimStatusApproved {
		return
	}
	err := s.email.SendClaimNotification(ctx, s.cfg.ReviewerEmail, port.ClaimNotification{
		ClaimID:          claimID.String(),
		Status:           result.ClaimDecision.Status,
		Reason:           result.ClaimDecision.Reason,
		MissingDocuments: result.Validation.MissingDocuments,
		Discrepancies:    result.Validation.Discrepancies,
		FileNames:        fileNames,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		zap.L().Warn("service.ClaimService.notify: sending reviewer email",
			zap.String("claim_id", claimID.String()), zap.Error(err))
	}
}

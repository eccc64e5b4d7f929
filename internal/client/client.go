// Package client submits claim documents to a /process-claim endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"medclaim/internal/domain"
)

// FormField is the multipart field every document is sent under.
const FormField = "files"

// ErrProcessingFailed wraps every failure of a submission: transport, non-2xx answer or
// an undecodable body.
var ErrProcessingFailed = errors.New("claim processing failed")

// Client talks to the claim processing endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a Client posting to endpoint. A nil httpClient uses a client without a timeout;
// cancellation is left to the caller's context.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// ProcessClaim posts files as one multipart request and decodes the processing result.
func (c *Client) ProcessClaim(ctx context.Context, files []domain.ClaimDocument) (*domain.ProcessingResult, error) {
	body, contentType, err := encodeMultipart(files)
	if err != nil {
		return nil, fmt.Errorf("%w: building request body: %w", ErrProcessingFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrProcessingFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrProcessingFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrProcessingFailed, resp.StatusCode, truncate(string(respBody), 300))
	}

	var result wireResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrProcessingFailed, err)
	}
	return result.toDomain(), nil
}

// wireResult mirrors domain.ProcessingResult with every scalar decoded leniently, so a
// mistyped field from the backend is rendered as text instead of failing the submission.
type wireResult struct {
	Documents  []wireDocument `json:"documents"`
	Validation struct {
		MissingDocuments []domain.FlexString `json:"missing_documents"`
		Discrepancies    []domain.FlexString `json:"discrepancies"`
	} `json:"validation"`
	ClaimDecision *struct {
		Status domain.FlexString `json:"status"`
		Reason domain.FlexString `json:"reason"`
	} `json:"claim_decision"`
}

type wireDocument struct {
	DocumentType    domain.FlexString  `json:"document_type"`
	PatientName     *domain.FlexString `json:"patient_name"`
	AdmissionDate   *domain.FlexString `json:"admission_date"`
	DischargeDate   *domain.FlexString `json:"discharge_date"`
	TotalAmount     domain.FlexFloat   `json:"total_amount"`
	HospitalName    *domain.FlexString `json:"hospital_name"`
	PolicyNumber    *domain.FlexString `json:"policy_number"`
	Diagnosis       *domain.FlexString `json:"diagnosis"`
	ConfidenceScore domain.FlexFloat   `json:"confidence_score"`
}

func (w *wireResult) toDomain() *domain.ProcessingResult {
	res := &domain.ProcessingResult{
		Validation: domain.ValidationResult{
			MissingDocuments: flexStrings(w.Validation.MissingDocuments),
			Discrepancies:    flexStrings(w.Validation.Discrepancies),
		},
	}
	if w.Documents != nil {
		res.Documents = make([]domain.ExtractedData, len(w.Documents))
	}
	for i, d := range w.Documents {
		res.Documents[i] = domain.ExtractedData{
			DocumentType:    domain.DocumentType(d.DocumentType),
			PatientName:     d.PatientName.Ptr(),
			AdmissionDate:   d.AdmissionDate.Ptr(),
			DischargeDate:   d.DischargeDate.Ptr(),
			TotalAmount:     d.TotalAmount,
			HospitalName:    d.HospitalName.Ptr(),
			PolicyNumber:    d.PolicyNumber.Ptr(),
			Diagnosis:       d.Diagnosis.Ptr(),
			ConfidenceScore: d.ConfidenceScore,
		}
	}
	if w.ClaimDecision != nil {
		res.ClaimDecision = &domain.ClaimDecision{
			Status: domain.ClaimStatus(w.ClaimDecision.Status),
			Reason: string(w.ClaimDecision.Reason),
		}
	}
	return res
}

func flexStrings(in []domain.FlexString) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(files []domain.ClaimDocument) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			FormField, quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package ui

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"medclaim/internal/domain"
)

// Tone is the colour family of a status banner.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
)

// Icon names the glyph shown on a status banner.
type Icon string

const (
	IconCheck   Icon = "check"
	IconX       Icon = "x"
	IconAlert   Icon = "alert"
	IconUnknown Icon = "unknown"
)

const (
	unknownStatusTitle = "Unknown Status"
	emptyDataMessage   = "No data could be extracted from this document"
)

// Banner is the claim decision headline.
type Banner struct {
	Tone   Tone
	Icon   Icon
	Title  string
	Reason string
}

// SummaryItem is one line of the submitted documents list.
type SummaryItem struct {
	Label       string
	PatientName string
}

// Field is a label/value pair on a document card.
type Field struct {
	Label string
	Value string
	Block bool
}

// Card shows what was extracted from one document.
type Card struct {
	Label      string
	Confidence int
	Fields     []Field
	// EmptyMessage is set when no field could be extracted.
	EmptyMessage string
}

// View is the presentation of a processing result. A nil slice means the section is hidden.
type View struct {
	// Ready is false when the result carries no claim decision; nothing else is rendered then.
	Ready            bool
	Banner           Banner
	Summary          []SummaryItem
	MissingDocuments []string
	Discrepancies    []string
	Cards            []Card
	Log              []string
}

var (
	titleCaser = cases.Title(language.English, cases.NoLower)
	printer    = message.NewPrinter(language.English)
)

// Render maps a processing result to its view. fileNames label the processing log in
// upload order; documents without a name are shown as "Document N".
func Render(result *domain.ProcessingResult, fileNames ...string) View {
	if result == nil || result.ClaimDecision == nil {
		return View{}
	}

	v := View{
		Ready:  true,
		Banner: renderBanner(result.ClaimDecision),
	}
	if len(result.Validation.MissingDocuments) > 0 {
		v.MissingDocuments = append([]string(nil), result.Validation.MissingDocuments...)
	}
	if len(result.Validation.Discrepancies) > 0 {
		v.Discrepancies = append([]string(nil), result.Validation.Discrepancies...)
	}

	for i := range result.Documents {
		doc := &result.Documents[i]
		v.Summary = append(v.Summary, SummaryItem{
			Label:       strings.ToUpper(documentLabel(doc.DocumentType)),
			PatientName: domain.StringValue(doc.PatientName),
		})
		v.Cards = append(v.Cards, renderCard(doc))

		name := fmt.Sprintf("Document %d", i+1)
		if i < len(fileNames) && fileNames[i] != "" {
			name = fileNames[i]
		}
		docType := string(doc.DocumentType)
		if docType == "" {
			docType = string(domain.DocumentTypeUnknown)
		}
		v.Log = append(v.Log, fmt.Sprintf("Classified %s as: %s (%d%% confidence)",
			name, docType, ConfidencePercent(doc.ConfidenceScore)))
	}
	v.Log = append(v.Log, fmt.Sprintf("INFO: Processing completed - %d documents analyzed successfully", len(result.Documents)))

	return v
}

func renderBanner(d *domain.ClaimDecision) Banner {
	b := Banner{Title: StatusTitle(d.Status), Reason: d.Reason}
	switch d.Status {
	case domain.ClaimStatusApproved:
		b.Tone, b.Icon = ToneSuccess, IconCheck
	case domain.ClaimStatusRejected:
		b.Tone, b.Icon = ToneDanger, IconX
	case domain.ClaimStatusManualReview:
		b.Tone, b.Icon = ToneWarning, IconAlert
	default:
		b.Tone, b.Icon = ToneWarning, IconUnknown
	}
	return b
}

// StatusTitle turns "manual_review" into "Manual Review".
func StatusTitle(status domain.ClaimStatus) string {
	if status == "" {
		return unknownStatusTitle
	}
	return titleCaser.String(strings.ReplaceAll(string(status), "_", " "))
}

func documentLabel(t domain.DocumentType) string {
	if t == "" {
		return "UNKNOWN"
	}
	return strings.ReplaceAll(string(t), "_", " ")
}

func renderCard(doc *domain.ExtractedData) Card {
	c := Card{
		Label:      documentLabel(doc.DocumentType),
		Confidence: ConfidencePercent(doc.ConfidenceScore),
	}
	add := func(label string, v *string, block bool) {
		if s := domain.StringValue(v); s != "" {
			c.Fields = append(c.Fields, Field{Label: label, Value: s, Block: block})
		}
	}

	add("Patient", doc.PatientName, false)
	add("Hospital", doc.HospitalName, false)
	if doc.TotalAmount > 0 {
		c.Fields = append(c.Fields, Field{Label: "Amount", Value: FormatAmount(float64(doc.TotalAmount))})
	}
	add("Admitted", doc.AdmissionDate, false)
	add("Discharged", doc.DischargeDate, false)
	add("Diagnosis", doc.Diagnosis, true)
	add("Policy #", doc.PolicyNumber, false)

	if !doc.HasData() {
		c.EmptyMessage = emptyDataMessage
	}
	return c
}

// ConfidencePercent converts a 0..1 score to a rounded percentage.
func ConfidencePercent(score domain.FlexFloat) int {
	return int(math.Round(float64(score) * 100))
}

// FormatAmount renders an amount with thousands separators and up to three decimals.
func FormatAmount(v float64) string {
	return "$" + printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

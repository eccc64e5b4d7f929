package export

import (
	"strconv"
	"strings"
	"time"

	"medclaim/internal/domain"
)

// columns defines the header row shared by every export format.
var columns = []string{
	"Claim ID",
	"Status",
	"Reason",
	"Document Count",
	"File Names",
	"Document Types",
	"Patient Name",
	"Hospital Name",
	"Policy Number",
	"Admission Date",
	"Discharge Date",
	"Diagnosis",
	"Total Billed",
	"Missing Documents",
	"Discrepancies",
	"Created At",
}

const colTotalBilled = 12

// claimSummary is the flattened view of one claim used for a report row.
type claimSummary struct {
	documentTypes []string
	patientName   string
	hospitalName  string
	policyNumber  string
	admissionDate string
	dischargeDate string
	diagnosis     string
	totalBilled   float64
	missing       []string
	discrepancies []string
}

// summarize flattens a stored result. Text fields take the first non-empty value across
// documents; the billed total sums bills and pharmacy bills.
func summarize(rec *domain.ClaimRecord) claimSummary {
	var s claimSummary
	res, err := rec.DecodeResult()
	if err != nil || res == nil {
		return s
	}

	first := func(dst *string, v *string) {
		if *dst == "" {
			*dst = domain.StringValue(v)
		}
	}
	for i := range res.Documents {
		d := &res.Documents[i]
		s.documentTypes = append(s.documentTypes, string(d.DocumentType))
		first(&s.patientName, d.PatientName)
		first(&s.hospitalName, d.HospitalName)
		first(&s.policyNumber, d.PolicyNumber)
		first(&s.admissionDate, d.AdmissionDate)
		first(&s.dischargeDate, d.DischargeDate)
		first(&s.diagnosis, d.Diagnosis)
		if d.DocumentType == domain.DocumentTypeBill || d.DocumentType == domain.DocumentTypePharmacyBill {
			s.totalBilled += float64(d.TotalAmount)
		}
	}
	s.missing = res.Validation.MissingDocuments
	s.discrepancies = res.Validation.Discrepancies
	return s
}

// claimToRow converts a claim record to a string slice matching columns.
func claimToRow(rec *domain.ClaimRecord) []string {
	s := summarize(rec)
	return []string{
		rec.ID.String(),
		string(rec.Status),
		rec.Reason,
		strconv.Itoa(rec.DocumentCount),
		strings.Join(rec.FileNames, "; "),
		strings.Join(s.documentTypes, "; "),
		s.patientName,
		s.hospitalName,
		s.policyNumber,
		s.admissionDate,
		s.dischargeDate,
		s.diagnosis,
		formatMoney(s.totalBilled),
		strings.Join(s.missing, "; "),
		strings.Join(s.discrepancies, "; "),
		rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

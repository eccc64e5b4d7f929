package claimrules

import (
	"fmt"
	"strings"
	"time"

	"medclaim/internal/domain"
)

var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"2006-01-02T15:04:05Z07:00",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// admissionDischargeOrder flags documents whose discharge date precedes the admission
// date. Dates that do not parse are ignored.
func admissionDischargeOrder(docs []domain.ExtractedData) []Finding {
	var findings []Finding
	for i := range docs {
		d := &docs[i]
		admitted, ok1 := parseDate(domain.StringValue(d.AdmissionDate))
		discharged, ok2 := parseDate(domain.StringValue(d.DischargeDate))
		if !ok1 || !ok2 {
			continue
		}
		if discharged.Before(admitted) {
			findings = append(findings, discrepancy(fmt.Sprintf(
				"Discharge date %s is before admission date %s in %s",
				*d.DischargeDate, *d.AdmissionDate, d.DocumentType)))
		}
	}
	return findings
}

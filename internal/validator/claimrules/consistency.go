package claimrules

import (
	"strings"

	"medclaim/internal/domain"
)

// patientNameConsistency compares every reported name with the first one. Containment in
// either direction counts as a match so "John Doe" and "John A. Doe" differ but
// "John Doe" and "Mr. John Doe" agree.
func patientNameConsistency(docs []domain.ExtractedData) []Finding {
	var names []string
	for i := range docs {
		if n := strings.ToLower(strings.TrimSpace(domain.StringValue(docs[i].PatientName))); n != "" {
			names = append(names, n)
		}
	}
	if len(names) < 2 {
		return nil
	}

	base := names[0]
	for _, n := range names[1:] {
		if !strings.Contains(n, base) && !strings.Contains(base, n) {
			return []Finding{discrepancy("Name mismatch: " + formatNames(names))}
		}
	}
	return nil
}

// formatNames renders names as ['a', 'b'].
func formatNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

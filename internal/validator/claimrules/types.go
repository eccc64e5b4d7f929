package claimrules

// FindingKind separates findings that reject a claim from those that need a reviewer.
type FindingKind string

const (
	FindingMissing     FindingKind = "missing"
	FindingDiscrepancy FindingKind = "discrepancy"
)

// Finding is a single problem reported by a rule. It lives here rather than in the
// validator package to avoid an import cycle.
type Finding struct {
	Kind    FindingKind
	Message string
}

func missing(msg string) Finding     { return Finding{Kind: FindingMissing, Message: msg} }
func discrepancy(msg string) Finding { return Finding{Kind: FindingDiscrepancy, Message: msg} }

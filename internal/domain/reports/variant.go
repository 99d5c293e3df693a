// Package reports computes employer-level statutory monthly aggregates
// (forms 102, B102 and H102) over the year ledger. One shared routine
// serves all variants; only the derived fields differ.
package reports

import (
	"encoding/json"
	"strings"
)

// Variant selects which statutory monthly form the aggregate feeds.
type Variant int

const (
	// General is the standard form 102 employer report.
	General Variant = iota
	// ReducedRate is the B102 flavor for reduced-rate filings.
	ReducedRate
	// RegionalBenefit is the H102 flavor for Eilat-area employers.
	RegionalBenefit
)

func (v Variant) String() string {
	switch v {
	case ReducedRate:
		return "B102"
	case RegionalBenefit:
		return "H102"
	default:
		return "102"
	}
}

// MarshalJSON renders the form name, so API consumers see the same
// "102"/"B102"/"H102" labels as the export files.
func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// ParseVariant maps a form name from the API surface onto a Variant.
func ParseVariant(name string) (Variant, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "102":
		return General, true
	case "B102":
		return ReducedRate, true
	case "H102":
		return RegionalBenefit, true
	}
	return General, false
}

// Package interactions answers drug-pair interaction queries against the
// reference interaction table.
package interactions

import (
	"github.com/rxguard/rxguard-api/normalize"
	"github.com/rxguard/rxguard-api/reference"
)

// Result is an interaction lookup outcome. Found distinguishes an explicit
// table record from the synthesized default returned on a table miss: a
// default is a recommendation, not a finding, and downstream consumers
// must be able to tell the two apart even when both read "Safe".
type Result struct {
	reference.InteractionRecord
	Found bool `json:"found"`
}

// Lookup returns the interaction record for an unordered drug pair. The
// table is small, so a linear scan over normalized names is sufficient.
// Lookup(a,b) and Lookup(b,a) always return the same record.
func Lookup(set *reference.Set, drugA, drugB string) Result {
	a := normalize.Name(drugA)
	b := normalize.Name(drugB)

	if a != "" && b != "" {
		for _, rec := range set.Interactions {
			if (rec.DrugA == a && rec.DrugB == b) || (rec.DrugA == b && rec.DrugB == a) {
				return Result{InteractionRecord: rec, Found: true}
			}
		}
	}

	return Result{
		InteractionRecord: reference.InteractionRecord{
			DrugA:                a,
			DrugB:                b,
			Severity:             reference.SeveritySafe,
			Mechanism:            "No known interaction mechanism on record",
			ClinicalSignificance: "No significant interaction found in the reference table",
			Recommendation:       "No interaction documented; apply usual clinical judgment",
			Monitoring:           "Routine monitoring",
			Confidence:           reference.ConfidenceMedium,
		},
		Found: false,
	}
}

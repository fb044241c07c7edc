// Package alternatives selects and ranks substitute medications for a
// drug, filtered against a patient's age, conditions, allergies and
// current medication list.
package alternatives

import (
	"sort"
	"strings"

	"github.com/rxguard/rxguard-api/normalize"
	"github.com/rxguard/rxguard-api/patient"
	"github.com/rxguard/rxguard-api/reference"
)

// maxCandidates caps the returned list; the catalog is ranked, so the tail
// adds noise rather than options.
const maxCandidates = 5

// Candidate is one ranked alternative for a drug. InteractionRisk is
// recomputed per request against the patient's current medications.
type Candidate struct {
	Name              string              `json:"name"`
	Reason            string              `json:"reason"`
	Contraindications []string            `json:"contraindications"`
	AgeAppropriate    bool                `json:"age_appropriate"`
	InteractionRisk   reference.RiskLevel `json:"interaction_risk"`
	ConfidenceScore   float64             `json:"confidence_score"`
}

var riskRank = map[reference.RiskLevel]int{
	reference.RiskLow:    0,
	reference.RiskMedium: 1,
	reference.RiskHigh:   2,
}

// Find returns up to five alternatives for the drug, ranked by interaction
// risk ascending then confidence descending, stable on catalog order. An
// unknown drug or a fully filtered catalog yields an empty list; that is a
// valid "no known alternatives" answer, not an error.
func Find(set *reference.Set, drug string, p patient.Profile) []Candidate {
	p = p.Sanitize()
	options := set.Alternatives[normalize.Name(drug)]

	candidates := make([]Candidate, 0, len(options))
	for _, opt := range options {
		if p.AgeYears < float64(opt.MinimumAge) {
			continue
		}
		if conflictsWithConditions(opt.Contraindications, p.ActiveConditions) {
			continue
		}
		if conflictsWithAllergies(opt, p.Allergies) {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:              opt.Name,
			Reason:            opt.Reason,
			Contraindications: opt.Contraindications,
			AgeAppropriate:    true,
			InteractionRisk:   riskAgainstCurrentMeds(set, opt.Name, p.CurrentMedications),
			ConfidenceScore:   opt.Confidence,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := riskRank[candidates[i].InteractionRisk], riskRank[candidates[j].InteractionRisk]
		if ri != rj {
			return ri < rj
		}
		return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// conflictsWithConditions checks for a case-insensitive substring overlap
// in either direction between a candidate's contraindications and the
// patient's active conditions.
func conflictsWithConditions(contraindications, conditions []string) bool {
	for _, contra := range contraindications {
		c := strings.ToLower(contra)
		for _, cond := range conditions {
			pc := strings.ToLower(cond)
			if pc == "" {
				continue
			}
			if strings.Contains(c, pc) || strings.Contains(pc, c) {
				return true
			}
		}
	}
	return false
}

// conflictsWithAllergies discards a candidate whose name or
// contraindications mention any allergy term.
func conflictsWithAllergies(opt reference.AlternativeOption, allergies []string) bool {
	if len(allergies) == 0 {
		return false
	}
	name := strings.ToLower(opt.Name)
	for _, allergy := range allergies {
		term := strings.ToLower(allergy)
		if term == "" {
			continue
		}
		if strings.Contains(name, term) {
			return true
		}
		for _, contra := range opt.Contraindications {
			if strings.Contains(strings.ToLower(contra), term) {
				return true
			}
		}
	}
	return false
}

// riskAgainstCurrentMeds scans the fixed risk rules for the candidate
// against the patient's medication list. The highest matching severity
// wins; no match defaults to low.
func riskAgainstCurrentMeds(set *reference.Set, candidate string, meds []string) reference.RiskLevel {
	key := normalize.Name(candidate)
	risk := reference.RiskLow

	for _, rule := range set.RiskRules {
		if normalize.Name(rule.Candidate) != key {
			continue
		}
		term := strings.ToLower(rule.InteractingTerm)
		for _, med := range meds {
			if strings.Contains(strings.ToLower(med), term) && riskRank[rule.Risk] > riskRank[risk] {
				risk = rule.Risk
			}
		}
	}
	return risk
}

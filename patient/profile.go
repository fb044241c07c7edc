// Package patient defines the per-request patient profile consumed by the
// rule engines. Defaults and sanitation are applied once here, at the
// boundary, instead of being re-derived inside every rule.
package patient

import "strings"

// DefaultAgeYears is assumed when a caller provides no age on endpoints
// where age is optional.
const DefaultAgeYears = 30.0

// Profile carries the patient attributes the dosage, alternatives and
// analysis engines evaluate. Constructed per request, never persisted.
type Profile struct {
	AgeYears           float64  `json:"age"`
	WeightKg           float64  `json:"weight"`
	Sex                string   `json:"sex,omitempty"`
	Pregnancy          bool     `json:"pregnancy"`
	Lactation          bool     `json:"lactation"`
	RenalMarker        *float64 `json:"renal_marker,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	ActiveConditions   []string `json:"conditions,omitempty"`
	CurrentMedications []string `json:"medications,omitempty"`
}

// Sanitize clamps malformed numeric fields to zero and trims the string
// sets, enforcing the ageYears >= 0 invariant the engines rely on.
func (p Profile) Sanitize() Profile {
	if p.AgeYears < 0 {
		p.AgeYears = 0
	}
	if p.WeightKg < 0 {
		p.WeightKg = 0
	}
	if p.RenalMarker != nil && *p.RenalMarker < 0 {
		zero := 0.0
		p.RenalMarker = &zero
	}
	p.Allergies = trimAll(p.Allergies)
	p.ActiveConditions = trimAll(p.ActiveConditions)
	p.CurrentMedications = trimAll(p.CurrentMedications)
	return p
}

// RenalImpaired reports whether the renal marker is present and above the
// 1.5 threshold used by the dosage rules.
func (p Profile) RenalImpaired() bool {
	return p.RenalMarker != nil && *p.RenalMarker > 1.5
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Package dosage implements the rule-based dosage recommendation engine.
// Given a drug and a patient profile it derives a standard dose, an
// adjusted dose via a chain of multiplicative factors, a maximum daily
// dose and a risk flag.
package dosage

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rxguard/rxguard-api/normalize"
	"github.com/rxguard/rxguard-api/patient"
	"github.com/rxguard/rxguard-api/reference"
)

// Flag classifies the dosage risk for a drug/patient pair.
type Flag string

const (
	FlagOK               Flag = "ok"
	FlagCaution          Flag = "caution"
	FlagAdjustment       Flag = "adjustment"
	FlagContraindication Flag = "contraindication"
)

// Recommendation is the engine's output. Recomputed on every request,
// never cached.
type Recommendation struct {
	Drug         string  `json:"drug"`
	StandardDose string  `json:"standard_dose"`
	AdjustedDose string  `json:"adjusted_dose"`
	MaxDailyDose string  `json:"max_daily_dose"`
	Adjustment   float64 `json:"adjustment_factor"`
	Flag         Flag    `json:"flag"`
	Rationale    string  `json:"rationale"`
}

const (
	defaultStandardDose = "1 tablet daily"
	defaultMaxDaily     = "See prescribing info"
)

// Fixed rationale strings, selected by flag (and by which condition
// triggered an adjustment).
const (
	rationaleOK               = "Standard adult dosing applies."
	rationaleCaution          = "Use with caution; verify dosing guidance for this patient group."
	rationaleElderly          = "Dose reduced for patients aged 65 and over."
	rationaleRenal            = "Dose reduced due to impaired renal clearance."
	rationaleContraindication = "Contraindicated in pregnancy; do not prescribe."
)

// leadingDose captures the leading <number><mg|mcg> token of a standard
// dose string, e.g. the "10mg" of "10mg daily".
var leadingDose = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(mg|mcg)\b`)

// Recommend computes the dosage recommendation for one drug. Unknown drugs
// fall back to documented defaults; no error conditions exist.
func Recommend(set *reference.Set, drug string, p patient.Profile) Recommendation {
	p = p.Sanitize()
	key := normalize.Name(drug)
	profile, known := set.Dosage[key]

	standard := defaultStandardDose
	maxDaily := defaultMaxDaily
	if known {
		standard = profile.StandardDose
		if profile.MaxDailyDose != "" {
			maxDaily = profile.MaxDailyDose
		}
	}

	// Every matching factor applies; they are cumulative, not exclusive.
	adjustment := 1.0
	if p.AgeYears >= 65 {
		adjustment *= 0.75
	}
	if p.AgeYears < 18 {
		adjustment *= 0.5
	}
	if known && profile.WeightSensitive && p.WeightKg > 0 && p.WeightKg < 50 {
		adjustment *= 0.75
	}
	if p.Pregnancy || p.Lactation {
		adjustment *= 0.8
	}
	if p.RenalImpaired() {
		adjustment *= 0.6
	}

	flag := classify(set, key, p)

	return Recommendation{
		Drug:         drug,
		StandardDose: standard,
		AdjustedDose: applyAdjustment(standard, adjustment),
		MaxDailyDose: maxDaily,
		Adjustment:   adjustment,
		Flag:         flag,
		Rationale:    rationaleFor(flag, p),
	}
}

// applyAdjustment rewrites the leading numeric dose token, preserving all
// trailing text. Doses whose leading token does not parse (e.g. "1 tablet
// daily") pass through unchanged, as does an adjustment of exactly 1.0.
func applyAdjustment(standard string, adjustment float64) string {
	if adjustment == 1.0 {
		return standard
	}

	m := leadingDose.FindStringSubmatch(standard)
	if m == nil {
		return standard
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return standard
	}

	adjusted := roundHalfAway(amount*adjustment, 1)
	return formatDose(adjusted) + m[2] + strings.TrimPrefix(standard, m[0])
}

// roundHalfAway rounds to the given number of decimal places, halves away
// from zero. The convention is documented here because generic float
// rounding leaves it ambiguous; half-away matches how doses are rounded on
// labels (2.25 -> 2.3, not 2.2).
func roundHalfAway(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

func formatDose(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// classify applies the flag precedence chain; the first matching rule
// wins.
func classify(set *reference.Set, key string, p patient.Profile) Flag {
	profile, known := set.Dosage[key]

	switch {
	case p.Pregnancy && known && profile.PregnancyContraindicated:
		return FlagContraindication
	case p.AgeYears >= 65 || p.RenalImpaired():
		return FlagAdjustment
	case p.Lactation || p.AgeYears < 18:
		return FlagCaution
	default:
		return FlagOK
	}
}

func rationaleFor(flag Flag, p patient.Profile) string {
	switch flag {
	case FlagContraindication:
		return rationaleContraindication
	case FlagAdjustment:
		// Elderly wording takes priority when both conditions hold; the
		// flag is the same either way.
		if p.AgeYears >= 65 {
			return rationaleElderly
		}
		return rationaleRenal
	case FlagCaution:
		return rationaleCaution
	default:
		return rationaleOK
	}
}

// Describe renders a recommendation as one line for summaries and logs.
func Describe(rec Recommendation) string {
	if rec.Adjustment == 1.0 {
		return fmt.Sprintf("%s: %s (max %s)", rec.Drug, rec.StandardDose, rec.MaxDailyDose)
	}
	return fmt.Sprintf("%s: %s, adjusted from %s (max %s)", rec.Drug, rec.AdjustedDose, rec.StandardDose, rec.MaxDailyDose)
}

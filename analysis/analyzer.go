// Package analysis runs the full prescription review pipeline: extract
// medications from free text, check every pair for interactions, derive
// dosage advice and safety status per drug, suggest alternatives for the
// risky ones and roll everything up into one scored report.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rxguard/rxguard-api/alternatives"
	"github.com/rxguard/rxguard-api/dosage"
	"github.com/rxguard/rxguard-api/extraction"
	"github.com/rxguard/rxguard-api/interactions"
	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/metrics"
	"github.com/rxguard/rxguard-api/patient"
	"github.com/rxguard/rxguard-api/reference"
	"github.com/rxguard/rxguard-api/safety"
)

// OverallRisk is the report-level rollup, a coarser scale than the
// per-candidate RiskLevel.
type OverallRisk string

const (
	RiskLow    OverallRisk = "Low"
	RiskMedium OverallRisk = "Medium"
	RiskHigh   OverallRisk = "High"
)

// Alternatives suggested per risky drug are capped tighter than the
// standalone endpoint: the report is a summary, not a catalog.
const maxReportAlternatives = 2

// PairFinding is one interaction check between two extracted drugs.
type PairFinding struct {
	DrugA string `json:"drug_a"`
	DrugB string `json:"drug_b"`
	interactions.Result
}

// Report is the analysis result for one prescription text.
type Report struct {
	ReportID        string                              `json:"report_id"`
	GeneratedAt     time.Time                           `json:"generated_at"`
	Drugs           []extraction.Mention                `json:"drugs"`
	Interactions    []PairFinding                       `json:"interactions"`
	DosageAdvice    []dosage.Recommendation             `json:"dosage_advice"`
	Alternatives    map[string][]alternatives.Candidate `json:"alternatives"`
	Safety          []safety.Verdict                    `json:"safety"`
	OverallRisk     OverallRisk                         `json:"overall_risk"`
	RiskScore       int                                 `json:"risk_score"`
	RiskFactors     []string                            `json:"risk_factors"`
	Recommendations []string                            `json:"recommendations"`
	AISummary       string                              `json:"ai_summary"`
}

// Analyzer wires the engines together. The text client is used for the
// summary only; its failure never fails an analysis.
type Analyzer struct {
	store   interfaces.DataStore
	checker *safety.Checker
	text    interfaces.TextClient
	timeout time.Duration
}

func NewAnalyzer(store interfaces.DataStore, checker *safety.Checker, text interfaces.TextClient, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Analyzer{
		store:   store,
		checker: checker,
		text:    text,
		timeout: timeout,
	}
}

// Analyze runs the pipeline over one prescription text. Zero extracted
// drugs yields a valid low-risk report, not an error.
func (a *Analyzer) Analyze(ctx context.Context, text string, p patient.Profile) Report {
	set := a.store.GetReference()
	p = p.Sanitize()

	report := Report{
		ReportID:     uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Drugs:        extraction.Extract(set, text),
		Alternatives: make(map[string][]alternatives.Candidate),
	}

	for i := range report.Drugs {
		for j := i + 1; j < len(report.Drugs); j++ {
			report.Interactions = append(report.Interactions, PairFinding{
				DrugA:  report.Drugs[i].Name,
				DrugB:  report.Drugs[j].Name,
				Result: interactions.Lookup(set, report.Drugs[i].Name, report.Drugs[j].Name),
			})
		}
	}

	for _, m := range report.Drugs {
		report.DosageAdvice = append(report.DosageAdvice, dosage.Recommend(set, m.Name, p))
		report.Safety = append(report.Safety, a.checker.Check(ctx, m.Name))
	}

	report.RiskScore, report.RiskFactors = scoreFindings(&report)
	report.OverallRisk = rollUp(&report)
	report.Recommendations = collectRecommendations(&report)

	for _, drug := range riskyDrugs(&report) {
		options := alternatives.Find(set, drug, p)
		if len(options) > maxReportAlternatives {
			options = options[:maxReportAlternatives]
		}
		if len(options) > 0 {
			report.Alternatives[drug] = options
		}
	}

	report.AISummary = a.summarize(ctx, &report)

	metrics.AnalysesTotal.WithLabelValues(string(report.OverallRisk)).Inc()
	return report
}

// scoreFindings accumulates the 0-100 risk score and names each
// contributing factor.
func scoreFindings(r *Report) (int, []string) {
	score := 0
	factors := make([]string, 0, 4)

	for _, pf := range r.Interactions {
		switch {
		case pf.Severity == reference.SeverityDangerous:
			score += 35
			factors = append(factors, fmt.Sprintf("Dangerous interaction between %s and %s", pf.DrugA, pf.DrugB))
		case pf.Severity == reference.SeverityCaution && pf.Found:
			score += 15
			factors = append(factors, fmt.Sprintf("Interaction between %s and %s requires monitoring", pf.DrugA, pf.DrugB))
		}
	}

	for _, rec := range r.DosageAdvice {
		switch rec.Flag {
		case dosage.FlagContraindication:
			score += 25
			factors = append(factors, fmt.Sprintf("%s is contraindicated for this patient", rec.Drug))
		case dosage.FlagAdjustment:
			score += 10
			factors = append(factors, fmt.Sprintf("%s requires dose adjustment", rec.Drug))
		case dosage.FlagCaution:
			score += 5
		}
	}

	for _, v := range r.Safety {
		switch v.Status {
		case reference.StatusRecalled:
			score += 30
			factors = append(factors, fmt.Sprintf("%s has an active recall (%s)", v.Drug, v.Authority))
		case reference.StatusPartialRecall:
			score += 15
			factors = append(factors, fmt.Sprintf("%s has a partial recall", v.Drug))
		case reference.StatusUnderReview:
			score += 10
			factors = append(factors, fmt.Sprintf("%s is under regulatory review", v.Drug))
		}
	}

	if score > 100 {
		score = 100
	}
	return score, factors
}

// rollUp derives the coarse risk label. Any dangerous interaction,
// contraindication or recall forces High regardless of the numeric score.
func rollUp(r *Report) OverallRisk {
	medium := false

	for _, pf := range r.Interactions {
		if pf.Severity == reference.SeverityDangerous {
			return RiskHigh
		}
		if pf.Severity == reference.SeverityCaution {
			medium = true
		}
	}
	for _, rec := range r.DosageAdvice {
		if rec.Flag == dosage.FlagContraindication {
			return RiskHigh
		}
		if rec.Flag == dosage.FlagAdjustment || rec.Flag == dosage.FlagCaution {
			medium = true
		}
	}
	for _, v := range r.Safety {
		if v.Status == reference.StatusRecalled {
			return RiskHigh
		}
		if v.Status == reference.StatusPartialRecall || v.Status == reference.StatusUnderReview {
			medium = true
		}
	}

	if medium {
		return RiskMedium
	}
	return RiskLow
}

// riskyDrugs lists the drugs worth suggesting alternatives for, in
// first-mention order without duplicates.
func riskyDrugs(r *Report) []string {
	risky := make([]string, 0, 2)
	seen := make(map[string]bool)
	add := func(drug string) {
		if !seen[drug] {
			seen[drug] = true
			risky = append(risky, drug)
		}
	}

	for _, pf := range r.Interactions {
		if pf.Severity == reference.SeverityDangerous {
			add(pf.DrugA)
			add(pf.DrugB)
		}
	}
	for _, rec := range r.DosageAdvice {
		if rec.Flag == dosage.FlagContraindication {
			add(rec.Drug)
		}
	}
	for _, v := range r.Safety {
		if v.Status == reference.StatusRecalled || v.Status == reference.StatusPartialRecall {
			add(v.Drug)
		}
	}
	return risky
}

func collectRecommendations(r *Report) []string {
	recs := make([]string, 0, 4)
	for _, pf := range r.Interactions {
		if pf.Found && pf.Recommendation != "" && pf.Severity != reference.SeveritySafe {
			recs = append(recs, pf.Recommendation)
		}
	}
	for _, rec := range r.DosageAdvice {
		if rec.Flag == dosage.FlagContraindication || rec.Flag == dosage.FlagAdjustment {
			recs = append(recs, fmt.Sprintf("%s: %s", rec.Drug, rec.Rationale))
		}
	}
	for _, v := range r.Safety {
		if v.Recommendation != "" {
			recs = append(recs, fmt.Sprintf("%s: %s", v.Drug, v.Recommendation))
		}
	}
	if len(recs) == 0 && len(r.Drugs) > 0 {
		recs = append(recs, "No issues found; continue as prescribed and review at the next appointment.")
	}
	return recs
}

// summarize asks the text client for a short narrative; any failure falls
// back to a deterministic locally composed summary.
func (a *Analyzer) summarize(ctx context.Context, r *Report) string {
	if a.text != nil {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		summary, err := a.text.Generate(ctx, summaryPrompt(r))
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			logging.Warn("AI summary failed, using local fallback", "error", err.Error())
			metrics.ExternalFallbacksTotal.WithLabelValues("text_generation").Inc()
		}
	}
	return fallbackSummary(r)
}

func summaryPrompt(r *Report) string {
	var sb strings.Builder
	sb.WriteString("Summarize this prescription review in at most three sentences for a clinician.\n")
	fmt.Fprintf(&sb, "Overall risk: %s (score %d).\n", r.OverallRisk, r.RiskScore)
	drugs := make([]string, len(r.Drugs))
	for i, m := range r.Drugs {
		drugs[i] = m.Name
	}
	fmt.Fprintf(&sb, "Medications: %s.\n", strings.Join(drugs, ", "))
	for _, factor := range r.RiskFactors {
		fmt.Fprintf(&sb, "- %s\n", factor)
	}
	return sb.String()
}

// fallbackSummary composes the deterministic summary used whenever the
// text client is absent or failing.
func fallbackSummary(r *Report) string {
	if len(r.Drugs) == 0 {
		return "No known medications were identified in the provided text."
	}

	drugs := make([]string, len(r.Drugs))
	for i, m := range r.Drugs {
		drugs[i] = m.Name
	}
	summary := fmt.Sprintf("Reviewed %d medication(s): %s. Overall risk is %s (score %d/100).",
		len(r.Drugs), strings.Join(drugs, ", "), r.OverallRisk, r.RiskScore)
	if len(r.RiskFactors) > 0 {
		summary += " Key findings: " + strings.Join(r.RiskFactors, "; ") + "."
	}
	return summary
}

package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/rxguard/rxguard-api/data"
	"github.com/rxguard/rxguard-api/dosage"
	"github.com/rxguard/rxguard-api/external"
	"github.com/rxguard/rxguard-api/patient"
	"github.com/rxguard/rxguard-api/reference"
	"github.com/rxguard/rxguard-api/safety"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeText struct {
	answer string
	err    error
}

func (f fakeText) Generate(ctx context.Context, prompt string) (string, error) {
	return f.answer, f.err
}

func newAnalyzer(text *fakeText) *Analyzer {
	store := data.NewDataContainer()
	checker := safety.NewChecker(store, nil, nil, time.Second)
	if text == nil {
		return NewAnalyzer(store, checker, external.NoopTextClient{}, time.Second)
	}
	return NewAnalyzer(store, checker, *text, time.Second)
}

func TestAnalyzeDangerousPair(t *testing.T) {
	a := newAnalyzer(nil)

	report := a.Analyze(context.Background(), "warfarin 5mg daily and aspirin 81mg daily", patient.Profile{AgeYears: 30, WeightKg: 70})

	assert.NotEmpty(t, report.ReportID)
	require.Len(t, report.Drugs, 2)
	require.Len(t, report.Interactions, 1)
	assert.Equal(t, reference.SeverityDangerous, report.Interactions[0].Severity)

	assert.Equal(t, RiskHigh, report.OverallRisk)
	assert.GreaterOrEqual(t, report.RiskScore, 35)
	assert.NotEmpty(t, report.RiskFactors)
	assert.NotEmpty(t, report.Recommendations)

	// Both partners of the dangerous pair get alternatives, capped at two.
	require.Contains(t, report.Alternatives, "warfarin")
	require.Contains(t, report.Alternatives, "aspirin")
	for drug, options := range report.Alternatives {
		assert.LessOrEqual(t, len(options), 2, "drug %s", drug)
	}

	// Without a text provider the summary is the deterministic fallback.
	assert.Contains(t, report.AISummary, "warfarin")
	assert.Contains(t, report.AISummary, "High")
}

func TestAnalyzeNoDrugsIsValidLowRisk(t *testing.T) {
	a := newAnalyzer(nil)

	report := a.Analyze(context.Background(), "rest and drink fluids", patient.Profile{AgeYears: 30})

	assert.Empty(t, report.Drugs)
	assert.Empty(t, report.Interactions)
	assert.Equal(t, RiskLow, report.OverallRisk)
	assert.Equal(t, 0, report.RiskScore)
	assert.Equal(t, "No known medications were identified in the provided text.", report.AISummary)
}

func TestAnalyzeRecalledDrugForcesHigh(t *testing.T) {
	a := newAnalyzer(nil)

	report := a.Analyze(context.Background(), "Zantac 150mg twice daily", patient.Profile{AgeYears: 30, WeightKg: 70})

	require.Len(t, report.Drugs, 1)
	assert.Equal(t, "ranitidine", report.Drugs[0].Name)
	require.Len(t, report.Safety, 1)
	assert.Equal(t, reference.StatusRecalled, report.Safety[0].Status)
	assert.Equal(t, RiskHigh, report.OverallRisk)
	assert.NotEmpty(t, report.Alternatives["ranitidine"])
}

func TestAnalyzeAdjustmentFlagMeansMedium(t *testing.T) {
	a := newAnalyzer(nil)

	report := a.Analyze(context.Background(), "metformin 500mg BID", patient.Profile{AgeYears: 70, WeightKg: 70})

	require.Len(t, report.DosageAdvice, 1)
	assert.Equal(t, dosage.FlagAdjustment, report.DosageAdvice[0].Flag)
	assert.Equal(t, RiskMedium, report.OverallRisk)
	// Adjustment alone does not trigger alternatives.
	assert.Empty(t, report.Alternatives)
}

func TestAnalyzeUsesTextClientSummary(t *testing.T) {
	a := newAnalyzer(&fakeText{answer: "Patient regimen is acceptable."})

	report := a.Analyze(context.Background(), "metformin 500mg BID", patient.Profile{AgeYears: 40, WeightKg: 70})

	assert.Equal(t, "Patient regimen is acceptable.", report.AISummary)
}

func TestAnalyzeReportIDsAreUnique(t *testing.T) {
	a := newAnalyzer(nil)

	r1 := a.Analyze(context.Background(), "aspirin 81mg", patient.Profile{AgeYears: 40})
	r2 := a.Analyze(context.Background(), "aspirin 81mg", patient.Profile{AgeYears: 40})

	assert.NotEqual(t, r1.ReportID, r2.ReportID)
}

func TestScoreClampsAtHundred(t *testing.T) {
	a := newAnalyzer(nil)

	// Several dangerous pairs plus a recall stack well past 100.
	text := "warfarin 5mg, aspirin 81mg, omeprazole 20mg, clopidogrel 75mg, Zantac 150mg, sertraline 50mg, tramadol 50mg"
	report := a.Analyze(context.Background(), text, patient.Profile{AgeYears: 80, WeightKg: 45})

	assert.Equal(t, 100, report.RiskScore)
	assert.Equal(t, RiskHigh, report.OverallRisk)
}

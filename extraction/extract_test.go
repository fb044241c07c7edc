package extraction

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rxguard/rxguard-api/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A brand-name mention resolves to the canonical drug with its dosage and
// frequency normalized.
func TestExtractBrandNameWithDosage(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "Take Tylenol 500mg twice daily with food")
	require.Len(t, got, 1)

	m := got[0]
	assert.Equal(t, "paracetamol", m.Name)
	assert.Equal(t, "Tylenol", m.Matched)
	assert.Equal(t, "500mg", m.Dosage)
	assert.Equal(t, "2/day", m.Frequency)
	assert.Equal(t, "oral", m.Route)
	assert.InDelta(t, 0.85, m.Confidence, 1e-9)
}

func TestExtractMultipleDrugsKeepOwnAttributes(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "warfarin 5mg once daily and aspirin 81mg every 8 hours")
	require.Len(t, got, 2)

	assert.Equal(t, "warfarin", got[0].Name)
	assert.Equal(t, "5mg", got[0].Dosage)
	assert.Equal(t, "1/day", got[0].Frequency)

	assert.Equal(t, "aspirin", got[1].Name)
	assert.Equal(t, "81mg", got[1].Dosage)
	assert.Equal(t, "every 8 hours", got[1].Frequency)
}

func TestExtractFrequencyAbbreviations(t *testing.T) {
	set := reference.Build()

	tests := []struct {
		text string
		want string
	}{
		{"metformin 500mg BID", "2/day"},
		{"amoxicillin 250mg TID", "3/day"},
		{"paracetamol 500mg QID", "4/day"},
		{"lisinopril 10mg QD", "1/day"},
		{"ibuprofen 200mg as needed", "as needed"},
		{"sertraline 50mg at bedtime", "1/day"},
	}
	for _, tt := range tests {
		got := Extract(set, tt.text)
		require.Len(t, got, 1, "text %q", tt.text)
		assert.Equal(t, tt.want, got[0].Frequency, "text %q", tt.text)
	}
}

func TestExtractRoute(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "furosemide 40mg IV twice daily")
	require.Len(t, got, 1)
	assert.Equal(t, "intravenous", got[0].Route)

	got = Extract(set, "omeprazole 20mg by mouth daily")
	require.Len(t, got, 1)
	assert.Equal(t, "oral", got[0].Route)
}

// The multi-word synonym must win over its embedded short form.
func TestExtractLongestSynonymWins(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "acetylsalicylic acid 75mg daily")
	require.Len(t, got, 1)
	assert.Equal(t, "aspirin", got[0].Name)
	assert.Equal(t, "acetylsalicylic acid", got[0].Matched)
}

func TestExtractCanonicalNameConfidence(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "warfarin 5mg daily")
	require.Len(t, got, 1)
	assert.InDelta(t, 0.95, got[0].Confidence, 1e-9)
}

// Unrecognized text yields an empty, valid result.
func TestExtractNoDrugs(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "drink plenty of water and rest")
	assert.Empty(t, got)

	got = Extract(set, "")
	assert.Empty(t, got)
}

func TestExtractDeduplicatesByNameAndDosage(t *testing.T) {
	set := reference.Build()

	got := Extract(set, "Tylenol 500mg daily\nparacetamol 500mg at night\nparacetamol 1000mg once")
	require.Len(t, got, 2)
	assert.Equal(t, "500mg", got[0].Dosage)
	assert.Equal(t, "1000mg", got[1].Dosage)
}

func TestExtractCapsAtTen(t *testing.T) {
	set := reference.Build()

	var sb strings.Builder
	for i, entry := range set.Vocabulary {
		fmt.Fprintf(&sb, "%s %dmg daily\n", entry.Canonical, (i+1)*10)
	}
	got := Extract(set, sb.String())
	assert.Len(t, got, 10)
}

func TestExtractLineOriented(t *testing.T) {
	set := reference.Build()

	// Dosage on the next line belongs to no mention.
	got := Extract(set, "warfarin\n5mg daily")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Dosage)
	assert.Empty(t, got[0].Frequency)
}

// Package safety resolves the regulatory status of a drug. The local
// recall table answers first; only unresolved names fan out to the
// external recall registry and then to a free-text analyzer, and every
// external failure degrades to the approved default instead of an error.
package safety

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/normalize"
	"github.com/rxguard/rxguard-api/reference"
)

// Source names which step of the chain produced the verdict.
type Source string

const (
	SourceLocalTable   Source = "local_table"
	SourceRegistry     Source = "recall_registry"
	SourceTextAnalysis Source = "text_analysis"
	SourceDefault      Source = "default"
)

// Verdict is the outcome of a safety check for one drug.
type Verdict struct {
	Drug           string                 `json:"drug"`
	Status         reference.SafetyStatus `json:"status"`
	Reason         string                 `json:"reason,omitempty"`
	Authority      string                 `json:"authority,omitempty"`
	Recommendation string                 `json:"recommendation,omitempty"`
	EffectiveAt    string                 `json:"effective_date,omitempty"`
	Source         Source                 `json:"source"`
}

// Checker runs the resolution chain. Registry and text client are
// optional; a nil step is skipped the same way a failing one is.
type Checker struct {
	store    interfaces.DataStore
	registry interfaces.RecallRegistry
	text     interfaces.TextClient
	timeout  time.Duration
}

// NewChecker wires a Checker. timeout bounds each external call
// individually, not the chain as a whole.
func NewChecker(store interfaces.DataStore, registry interfaces.RecallRegistry, text interfaces.TextClient, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Checker{
		store:    store,
		registry: registry,
		text:     text,
		timeout:  timeout,
	}
}

// Check resolves the safety status of one drug. A hit in the local
// recall table short-circuits before any network call; otherwise the
// registry and then the text analyzer are consulted, and a chain with no
// answer returns the approved default.
func (c *Checker) Check(ctx context.Context, drug string) Verdict {
	key := normalize.Name(drug)
	set := c.store.GetReference()

	if notice, ok := set.Recalls[key]; ok {
		return Verdict{
			Drug:           drug,
			Status:         notice.Status,
			Reason:         notice.Reason,
			Authority:      notice.Authority,
			Recommendation: notice.Recommendation,
			EffectiveAt:    notice.EffectiveDate,
			Source:         SourceLocalTable,
		}
	}

	if v, ok := c.fromRegistry(ctx, drug); ok {
		return v
	}
	if v, ok := c.fromTextAnalysis(ctx, drug); ok {
		return v
	}

	return Verdict{
		Drug:   drug,
		Status: reference.StatusApproved,
		Reason: "No recall or safety advisory on record",
		Source: SourceDefault,
	}
}

func (c *Checker) fromRegistry(ctx context.Context, drug string) (Verdict, bool) {
	if c.registry == nil {
		return Verdict{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	notices, err := c.registry.FindRecalls(ctx, drug)
	if err != nil {
		logging.Warn("Recall registry lookup failed, falling through",
			"drug", drug, "error", err.Error())
		return Verdict{}, false
	}
	if len(notices) == 0 {
		return Verdict{}, false
	}

	// Most severe notice wins when the registry returns several.
	best := notices[0]
	for _, n := range notices[1:] {
		if statusRank(n.Status) > statusRank(best.Status) {
			best = n
		}
	}
	return Verdict{
		Drug:           drug,
		Status:         best.Status,
		Reason:         best.Reason,
		Authority:      best.Authority,
		Recommendation: best.Recommendation,
		EffectiveAt:    best.EffectiveDate,
		Source:         SourceRegistry,
	}, true
}

func (c *Checker) fromTextAnalysis(ctx context.Context, drug string) (Verdict, bool) {
	if c.text == nil {
		return Verdict{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"List any current recalls, withdrawals or safety warnings for the medication %q. Answer 'none known' if there are none.",
		drug)
	answer, err := c.text.Generate(ctx, prompt)
	if err != nil {
		logging.Warn("Text analysis failed, falling through",
			"drug", drug, "error", err.Error())
		return Verdict{}, false
	}

	status, hit := classifyAnswer(answer)
	if !hit {
		return Verdict{}, false
	}
	return Verdict{
		Drug:   drug,
		Status: status,
		Reason: strings.TrimSpace(answer),
		Source: SourceTextAnalysis,
	}, true
}

// classifyAnswer scans free text for recall language. The keywords are
// deliberately narrow: a false "under review" beats a false "recalled".
func classifyAnswer(answer string) (reference.SafetyStatus, bool) {
	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "none known"), strings.TrimSpace(lower) == "":
		return "", false
	case strings.Contains(lower, "recall"), strings.Contains(lower, "withdrawn"):
		return reference.StatusUnderReview, true
	case strings.Contains(lower, "warning"), strings.Contains(lower, "concern"):
		return reference.StatusUnderReview, true
	default:
		return "", false
	}
}

func statusRank(s reference.SafetyStatus) int {
	switch s {
	case reference.StatusRecalled:
		return 3
	case reference.StatusPartialRecall:
		return 2
	case reference.StatusUnderReview:
		return 1
	default:
		return 0
	}
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rxguard/rxguard-api/data"
	"github.com/rxguard/rxguard-api/reference"
)

type fakeRegistry struct {
	notices map[string][]reference.RecallNotice
	err     error
	calls   int
}

func (f *fakeRegistry) FindRecalls(_ context.Context, drug string) ([]reference.RecallNotice, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.notices[drug], nil
}

func TestRefreshMergesAdvisories(t *testing.T) {
	store := data.NewDataContainer()
	registry := &fakeRegistry{
		notices: map[string][]reference.RecallNotice{
			"metformin": {{
				Drug:      "metformin",
				Status:    reference.StatusPartialRecall,
				Reason:    "NDMA impurity above acceptable intake",
				Authority: "FDA",
			}},
		},
	}

	s := NewScheduler(store, registry, 12, time.Minute)
	if err := s.refreshRecalls(); err != nil {
		t.Fatalf("refreshRecalls() = %v, want nil", err)
	}

	set := store.GetReference()
	notice, ok := set.Recalls["metformin"]
	if !ok {
		t.Fatal("expected a merged metformin advisory")
	}
	if notice.Status != reference.StatusPartialRecall {
		t.Errorf("status = %s, want %s", notice.Status, reference.StatusPartialRecall)
	}
	if store.GetLastUpdated().IsZero() {
		t.Error("expected last-updated timestamp to be set")
	}
	if registry.calls != len(set.Vocabulary) {
		t.Errorf("registry calls = %d, want %d", registry.calls, len(set.Vocabulary))
	}
}

func TestRefreshBuiltInNoticesWin(t *testing.T) {
	store := data.NewDataContainer()
	builtin := store.GetReference().Recalls["ranitidine"]

	registry := &fakeRegistry{
		notices: map[string][]reference.RecallNotice{
			"ranitidine": {{
				Drug:      "ranitidine",
				Status:    reference.StatusUnderReview,
				Reason:    "conflicting registry entry",
				Authority: "FDA",
			}},
		},
	}

	s := NewScheduler(store, registry, 12, time.Minute)
	if err := s.refreshRecalls(); err != nil {
		t.Fatalf("refreshRecalls() = %v, want nil", err)
	}

	got := store.GetReference().Recalls["ranitidine"]
	if got.Reason != builtin.Reason || got.Status != builtin.Status {
		t.Errorf("built-in notice overwritten: got %+v, want %+v", got, builtin)
	}
}

func TestRefreshSkipsWhenUpdateInProgress(t *testing.T) {
	store := data.NewDataContainer()
	registry := &fakeRegistry{}

	if !store.BeginUpdate() {
		t.Fatal("BeginUpdate() = false on a fresh container")
	}
	defer store.EndUpdate()

	s := NewScheduler(store, registry, 12, time.Minute)
	if err := s.refreshRecalls(); err != nil {
		t.Fatalf("refreshRecalls() = %v, want nil when skipping", err)
	}
	if registry.calls != 0 {
		t.Errorf("registry calls = %d, want 0 while another update runs", registry.calls)
	}
	if !store.GetLastUpdated().IsZero() {
		t.Error("skipped refresh should not touch the snapshot")
	}
}

func TestRefreshAllLookupsFailing(t *testing.T) {
	store := data.NewDataContainer()
	registry := &fakeRegistry{err: errors.New("registry down")}

	s := NewScheduler(store, registry, 12, time.Minute)
	if err := s.refreshRecalls(); err == nil {
		t.Fatal("refreshRecalls() = nil, want error when every lookup fails")
	}
	if !store.GetLastUpdated().IsZero() {
		t.Error("failed refresh should keep the old snapshot")
	}
}

func TestStartWithoutRegistry(t *testing.T) {
	store := data.NewDataContainer()

	s := NewScheduler(store, nil, 12, time.Minute)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() = %v, want nil with no registry", err)
	}
}

func TestNewSchedulerDefaults(t *testing.T) {
	s := NewScheduler(data.NewDataContainer(), &fakeRegistry{}, 0, 0)
	if s.refreshHours != 12 {
		t.Errorf("refreshHours = %d, want default 12", s.refreshHours)
	}
	if s.timeout != 2*time.Minute {
		t.Errorf("timeout = %v, want default 2m", s.timeout)
	}
}

package data

import (
	"sync"
	"testing"
	"time"

	"github.com/rxguard/rxguard-api/reference"
)

func TestNewDataContainer(t *testing.T) {
	dc := NewDataContainer()

	if dc.IsUpdating() {
		t.Error("new container should not be updating")
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("new container should have zero lastUpdated time")
	}

	// Seeded with built-ins so the API answers before the first refresh
	set := dc.GetReference()
	if set == nil {
		t.Fatal("GetReference returned nil")
	}
	if len(set.Interactions) == 0 {
		t.Error("built-in interactions missing")
	}
	if len(set.Dosage) == 0 {
		t.Error("built-in dosage profiles missing")
	}
	if len(set.Vocabulary) == 0 {
		t.Error("built-in vocabulary missing")
	}
}

func TestUpdateReference(t *testing.T) {
	dc := NewDataContainer()

	next := dc.GetReference().WithRecalls([]reference.RecallNotice{{
		Drug:      "examplium",
		Status:    reference.StatusRecalled,
		Authority: "FDA",
	}})
	dc.UpdateReference(next)

	if dc.GetReference() != next {
		t.Error("UpdateReference should swap the snapshot")
	}
	if dc.GetLastUpdated().IsZero() {
		t.Error("UpdateReference should stamp last-updated")
	}
	if _, ok := dc.GetReference().Recalls["examplium"]; !ok {
		t.Error("merged recall missing from new snapshot")
	}
}

func TestUpdateReferenceIgnoresNil(t *testing.T) {
	dc := NewDataContainer()
	before := dc.GetReference()

	dc.UpdateReference(nil)

	if dc.GetReference() != before {
		t.Error("nil update should leave the snapshot alone")
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("nil update should not stamp last-updated")
	}
}

func TestBeginEndUpdate(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("BeginUpdate should succeed on an idle container")
	}
	if dc.BeginUpdate() {
		t.Error("BeginUpdate should fail while another update runs")
	}
	if !dc.IsUpdating() {
		t.Error("IsUpdating should report true during an update")
	}

	dc.EndUpdate()
	if dc.IsUpdating() {
		t.Error("IsUpdating should report false after EndUpdate")
	}
	if !dc.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
	dc.EndUpdate()
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()

	if !dc.GetServerStartTime().IsZero() {
		t.Error("start time should be zero before SetServerStartTime")
	}

	now := time.Now()
	dc.SetServerStartTime(now)
	if !dc.GetServerStartTime().Equal(now) {
		t.Errorf("start time = %v, want %v", dc.GetServerStartTime(), now)
	}
}

func TestConcurrentReadsDuringSwap(t *testing.T) {
	dc := NewDataContainer()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				set := dc.GetReference()
				if set == nil || len(set.Vocabulary) == 0 {
					t.Error("reader observed an invalid snapshot")
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		dc.UpdateReference(dc.GetReference().WithRecalls(nil))
	}
	close(stop)
	wg.Wait()
}

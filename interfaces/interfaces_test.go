package interfaces

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxguard/rxguard-api/reference"
)

// MockDataStore implements DataStore for testing
type MockDataStore struct {
	set         *reference.Set
	lastUpdated time.Time
	updating    bool
}

func (m *MockDataStore) GetReference() *reference.Set  { return m.set }
func (m *MockDataStore) GetLastUpdated() time.Time     { return m.lastUpdated }
func (m *MockDataStore) IsUpdating() bool              { return m.updating }
func (m *MockDataStore) GetServerStartTime() time.Time { return time.Time{} }

func (m *MockDataStore) UpdateReference(set *reference.Set) {
	m.set = set
	m.lastUpdated = time.Now()
}

func (m *MockDataStore) BeginUpdate() bool {
	if m.updating {
		return false
	}
	m.updating = true
	return true
}

func (m *MockDataStore) EndUpdate() { m.updating = false }

// MockRegistry implements RecallRegistry for testing
type MockRegistry struct {
	notices []reference.RecallNotice
	err     error
}

func (m *MockRegistry) FindRecalls(ctx context.Context, drug string) ([]reference.RecallNotice, error) {
	return m.notices, m.err
}

// MockTextClient implements TextClient for testing
type MockTextClient struct {
	answer string
	err    error
}

func (m *MockTextClient) Generate(ctx context.Context, prompt string) (string, error) {
	return m.answer, m.err
}

// MockScheduler implements Scheduler for testing
type MockScheduler struct {
	started bool
	stopped bool
}

func (m *MockScheduler) Start() error {
	if m.started {
		return fmt.Errorf("already started")
	}
	m.started = true
	return nil
}

func (m *MockScheduler) Stop() { m.stopped = true }

// MockHTTPHandler implements HTTPHandler for testing
type MockHTTPHandler struct {
	responseCode int
	responseBody string
}

func (m *MockHTTPHandler) respond(w http.ResponseWriter) {
	w.WriteHeader(m.responseCode)
	_, _ = w.Write([]byte(m.responseBody))
}

func (m *MockHTTPHandler) CheckInteraction(w http.ResponseWriter, r *http.Request)    { m.respond(w) }
func (m *MockHTTPHandler) PlanDosage(w http.ResponseWriter, r *http.Request)          { m.respond(w) }
func (m *MockHTTPHandler) FindAlternatives(w http.ResponseWriter, r *http.Request)    { m.respond(w) }
func (m *MockHTTPHandler) CheckSafety(w http.ResponseWriter, r *http.Request)         { m.respond(w) }
func (m *MockHTTPHandler) AnalyzePrescription(w http.ResponseWriter, r *http.Request) { m.respond(w) }
func (m *MockHTTPHandler) ServeDrugs(w http.ResponseWriter, r *http.Request)          { m.respond(w) }
func (m *MockHTTPHandler) FindDrug(w http.ResponseWriter, r *http.Request)            { m.respond(w) }
func (m *MockHTTPHandler) ServeInteractions(w http.ResponseWriter, r *http.Request)   { m.respond(w) }
func (m *MockHTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request)         { m.respond(w) }

// MockDataValidator implements DataValidator for testing
type MockDataValidator struct {
	shouldFail bool
}

func (m *MockDataValidator) ValidateInput(input string) error {
	if m.shouldFail {
		return fmt.Errorf("input validation failed")
	}
	return nil
}

func (m *MockDataValidator) ValidateDrugName(name string) error {
	if m.shouldFail {
		return fmt.Errorf("drug name validation failed")
	}
	return nil
}

func TestDataStoreInterface(t *testing.T) {
	store := &MockDataStore{}

	if !store.BeginUpdate() {
		t.Error("BeginUpdate should succeed on an idle store")
	}
	if store.BeginUpdate() {
		t.Error("BeginUpdate should fail while updating")
	}
	store.EndUpdate()

	store.UpdateReference(reference.Build())
	if store.GetReference() == nil {
		t.Error("UpdateReference should store the set")
	}
	if store.GetLastUpdated().IsZero() {
		t.Error("UpdateReference should stamp last-updated")
	}
}

func TestSchedulerInterface(t *testing.T) {
	scheduler := &MockScheduler{}

	if err := scheduler.Start(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := scheduler.Start(); err == nil {
		t.Error("Second Start should fail")
	}

	scheduler.Stop()
	if !scheduler.stopped {
		t.Error("Scheduler should be stopped")
	}
}

func TestHTTPHandlerInterface(t *testing.T) {
	handler := &MockHTTPHandler{
		responseCode: http.StatusOK,
		responseBody: "test response",
	}

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Body.String() != "test response" {
		t.Errorf("Expected body 'test response', got '%s'", w.Body.String())
	}
}

func TestDataValidatorInterface(t *testing.T) {
	validator := &MockDataValidator{shouldFail: false}
	if err := validator.ValidateDrugName("aspirin"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	validator = &MockDataValidator{shouldFail: true}
	if err := validator.ValidateDrugName("aspirin"); err == nil {
		t.Error("Expected validation error but got none")
	}
}

// Compile-time checks to ensure the mocks implement the interfaces
func TestCompileTimeChecks(t *testing.T) {
	var _ DataStore = (*MockDataStore)(nil)
	var _ RecallRegistry = (*MockRegistry)(nil)
	var _ TextClient = (*MockTextClient)(nil)
	var _ Scheduler = (*MockScheduler)(nil)
	var _ HTTPHandler = (*MockHTTPHandler)(nil)
	var _ DataValidator = (*MockDataValidator)(nil)
}

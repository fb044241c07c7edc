// Package interfaces defines core abstractions for the RxGuard API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/rxguard/rxguard-api/reference"
)

// DataStore defines the contract for reference-data access.
// It provides thread-safe access to the clinical reference set
// with atomic operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetReference() *reference.Set
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateReference(set *reference.Set)
	BeginUpdate() bool
	EndUpdate()
}

// RecallRegistry defines the contract for the external regulatory recall
// source consulted when the local recall table has no entry for a drug.
// Implementations must honor the context deadline and report failures as
// errors, never as an empty all-clear.
type RecallRegistry interface {
	FindRecalls(ctx context.Context, drug string) ([]reference.RecallNotice, error)
}

// TextClient defines the contract for a text-generation service. It backs
// the free-text safety heuristic and the analysis summaries; a no-op
// implementation stands in when no provider is configured.
type TextClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated recall refreshes and system health checks.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
// It provides a consistent interface for all API endpoints.
type HTTPHandler interface {
	// Clinical endpoint handlers
	CheckInteraction(w http.ResponseWriter, r *http.Request)
	PlanDosage(w http.ResponseWriter, r *http.Request)
	FindAlternatives(w http.ResponseWriter, r *http.Request)
	CheckSafety(w http.ResponseWriter, r *http.Request)
	AnalyzePrescription(w http.ResponseWriter, r *http.Request)

	// Reference browsing handlers
	ServeDrugs(w http.ResponseWriter, r *http.Request)
	FindDrug(w http.ResponseWriter, r *http.Request)
	ServeInteractions(w http.ResponseWriter, r *http.Request)

	// Operational handlers
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// DataValidator defines the contract for input validation operations.
type DataValidator interface {
	// ValidateInput validates user input strings
	ValidateInput(input string) error

	// ValidateDrugName validates a drug name parameter
	ValidateDrugName(name string) error
}

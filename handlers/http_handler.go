// Package handlers provides HTTP request handlers for the RxGuard API
// endpoints. This file implements the HTTPHandler interface with
// dependency injection.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rxguard/rxguard-api/alternatives"
	"github.com/rxguard/rxguard-api/analysis"
	"github.com/rxguard/rxguard-api/dosage"
	"github.com/rxguard/rxguard-api/interactions"
	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/metrics"
	"github.com/rxguard/rxguard-api/normalize"
	"github.com/rxguard/rxguard-api/patient"
	"github.com/rxguard/rxguard-api/reference"
	"github.com/rxguard/rxguard-api/safety"
)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore interfaces.DataStore
	validator interfaces.DataValidator
	checker   *safety.Checker
	analyzer  *analysis.Analyzer
	text      interfaces.TextClient
	timeout   time.Duration
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	dataStore interfaces.DataStore,
	validator interfaces.DataValidator,
	checker *safety.Checker,
	analyzer *analysis.Analyzer,
	text interfaces.TextClient,
	timeout time.Duration,
) interfaces.HTTPHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPHandlerImpl{
		dataStore: dataStore,
		validator: validator,
		checker:   checker,
		analyzer:  analyzer,
		text:      text,
		timeout:   timeout,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

func (h *HTTPHandlerImpl) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// patientPayload is the wire shape of a patient profile. Age and weight
// are pointers so handlers can tell "absent" from zero.
type patientPayload struct {
	Age                *float64 `json:"age"`
	Weight             *float64 `json:"weight"`
	Sex                string   `json:"sex,omitempty"`
	Pregnancy          bool     `json:"pregnancy,omitempty"`
	Lactation          bool     `json:"lactation,omitempty"`
	RenalMarker        *float64 `json:"renal_marker,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	Conditions         []string `json:"conditions,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
}

func (p *patientPayload) toProfile() patient.Profile {
	profile := patient.Profile{
		AgeYears:           patient.DefaultAgeYears,
		Sex:                p.Sex,
		Pregnancy:          p.Pregnancy,
		Lactation:          p.Lactation,
		RenalMarker:        p.RenalMarker,
		Allergies:          p.Allergies,
		ActiveConditions:   p.Conditions,
		CurrentMedications: p.CurrentMedications,
	}
	if p.Age != nil {
		profile.AgeYears = *p.Age
	}
	if p.Weight != nil {
		profile.WeightKg = *p.Weight
	}
	return profile
}

type interactionCheckRequest struct {
	Drug1          string   `json:"drug1"`
	Drug2          string   `json:"drug2"`
	PatientAge     *float64 `json:"patientAge,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
}

type interactionCheckResponse struct {
	interactions.Result
	Warnings []string `json:"warnings,omitempty"`
}

// CheckInteraction resolves one drug pair against the interaction table.
func (h *HTTPHandlerImpl) CheckInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionCheckRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Drug1 == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: drug1")
		return
	}
	if req.Drug2 == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: drug2")
		return
	}
	if err := h.validator.ValidateDrugName(req.Drug1); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateDrugName(req.Drug2); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := h.dataStore.GetReference()
	resp := interactionCheckResponse{
		Result: interactions.Lookup(set, req.Drug1, req.Drug2),
	}

	if req.PatientAge != nil && *req.PatientAge >= 65 && resp.Severity != reference.SeveritySafe {
		resp.Warnings = append(resp.Warnings,
			"Older adults are at increased risk from this combination; review before prescribing.")
	}
	for _, condition := range req.MedicalHistory {
		c := strings.ToLower(strings.TrimSpace(condition))
		if c == "" {
			continue
		}
		if strings.Contains(strings.ToLower(resp.ClinicalSignificance), c) {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("Patient history of %s is directly relevant to this interaction.", condition))
		}
	}

	h.RespondWithJSON(w, http.StatusOK, resp)
}

type dosagePlanRequest struct {
	Patient patientPayload `json:"patient"`
	Drugs   []struct {
		Name string `json:"name"`
	} `json:"drugs"`
}

type dosagePlanResponse struct {
	Recommendations []dosage.Recommendation `json:"recommendations"`
	AISummary       string                  `json:"ai_summary"`
}

// PlanDosage derives a dosage recommendation for each requested drug.
// Age and weight are the only required patient fields.
func (h *HTTPHandlerImpl) PlanDosage(w http.ResponseWriter, r *http.Request) {
	var req dosagePlanRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Patient.Age == nil {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: patient.age")
		return
	}
	if req.Patient.Weight == nil {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: patient.weight")
		return
	}
	if len(req.Drugs) == 0 {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: drugs")
		return
	}
	for _, d := range req.Drugs {
		if err := h.validator.ValidateDrugName(d.Name); err != nil {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	set := h.dataStore.GetReference()
	profile := req.Patient.toProfile()

	resp := dosagePlanResponse{
		Recommendations: make([]dosage.Recommendation, 0, len(req.Drugs)),
	}
	for _, d := range req.Drugs {
		resp.Recommendations = append(resp.Recommendations, dosage.Recommend(set, d.Name, profile))
	}
	resp.AISummary = h.summarizePlan(r.Context(), resp.Recommendations)

	h.RespondWithJSON(w, http.StatusOK, resp)
}

// summarizePlan narrates a dosage plan, falling back to a deterministic
// summary when no text provider is available.
func (h *HTTPHandlerImpl) summarizePlan(ctx context.Context, recs []dosage.Recommendation) string {
	lines := make([]string, len(recs))
	for i, rec := range recs {
		lines[i] = dosage.Describe(rec)
	}

	if h.text != nil {
		ctx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()

		prompt := "Summarize this dosage plan in two sentences for a clinician:\n" + strings.Join(lines, "\n")
		summary, err := h.text.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		if err != nil {
			logging.Warn("Dosage plan summary failed, using local fallback", "error", err.Error())
			metrics.ExternalFallbacksTotal.WithLabelValues("text_generation").Inc()
		}
	}
	return "Dosage plan: " + strings.Join(lines, "; ")
}

type alternativesRequest struct {
	DrugName           string   `json:"drugName"`
	PatientAge         *float64 `json:"patientAge,omitempty"`
	MedicalConditions  []string `json:"medicalConditions,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	CurrentMedications []string `json:"currentMedications,omitempty"`
}

type alternativesResponse struct {
	DrugName         string                   `json:"drug_name"`
	Alternatives     []alternatives.Candidate `json:"alternatives"`
	SafetyGuidelines []string                 `json:"safety_guidelines"`
}

// FindAlternatives returns the ranked substitution list for one drug.
func (h *HTTPHandlerImpl) FindAlternatives(w http.ResponseWriter, r *http.Request) {
	var req alternativesRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.DrugName == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: drugName")
		return
	}
	if err := h.validator.ValidateDrugName(req.DrugName); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := patient.Profile{
		AgeYears:           patient.DefaultAgeYears,
		Allergies:          req.Allergies,
		ActiveConditions:   req.MedicalConditions,
		CurrentMedications: req.CurrentMedications,
	}
	if req.PatientAge != nil {
		profile.AgeYears = *req.PatientAge
	}

	set := h.dataStore.GetReference()
	h.RespondWithJSON(w, http.StatusOK, alternativesResponse{
		DrugName:         req.DrugName,
		Alternatives:     alternatives.Find(set, req.DrugName, profile),
		SafetyGuidelines: set.Guidelines,
	})
}

type safetyCheckRequest struct {
	DrugName string `json:"drugName"`
}

// CheckSafety resolves the regulatory status of one drug.
func (h *HTTPHandlerImpl) CheckSafety(w http.ResponseWriter, r *http.Request) {
	var req safetyCheckRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.DrugName == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: drugName")
		return
	}
	if err := h.validator.ValidateDrugName(req.DrugName); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondWithJSON(w, http.StatusOK, h.checker.Check(r.Context(), req.DrugName))
}

type analyzeRequest struct {
	Text    string          `json:"text"`
	Patient *patientPayload `json:"patient,omitempty"`
}

// AnalyzePrescription runs the full analysis pipeline over free text.
func (h *HTTPHandlerImpl) AnalyzePrescription(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Text == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing required field: text")
		return
	}
	if err := h.validator.ValidateInput(req.Text); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := patient.Profile{AgeYears: patient.DefaultAgeYears}
	if req.Patient != nil {
		profile = req.Patient.toProfile()
	}

	h.RespondWithJSON(w, http.StatusOK, h.analyzer.Analyze(r.Context(), req.Text, profile))
}

// ServeDrugs lists the known drug vocabulary.
func (h *HTTPHandlerImpl) ServeDrugs(w http.ResponseWriter, r *http.Request) {
	set := h.dataStore.GetReference()
	h.RespondWithJSON(w, http.StatusOK, set.Vocabulary)
}

// drugDetail aggregates everything the reference tables know about one
// drug.
type drugDetail struct {
	Name         string                         `json:"name"`
	Synonyms     []string                       `json:"synonyms"`
	Dosage       *reference.DosageProfile       `json:"dosage,omitempty"`
	Interactions []reference.InteractionRecord  `json:"interactions"`
	Alternatives []reference.AlternativeOption  `json:"alternatives,omitempty"`
	Recall       *reference.RecallNotice        `json:"recall,omitempty"`
}

// FindDrug returns the reference detail for one drug by name or synonym.
func (h *HTTPHandlerImpl) FindDrug(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.validator.ValidateDrugName(name); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := h.dataStore.GetReference()
	canonical := set.CanonicalName(name)
	if canonical == "" {
		h.RespondWithError(w, http.StatusNotFound, "Drug not found")
		return
	}

	detail := drugDetail{
		Name:         canonical,
		Synonyms:     []string{},
		Interactions: []reference.InteractionRecord{},
	}
	for _, entry := range set.Vocabulary {
		if entry.Canonical == canonical {
			detail.Synonyms = entry.Synonyms
			break
		}
	}

	key := normalize.Name(canonical)
	if profile, ok := set.Dosage[key]; ok {
		detail.Dosage = &profile
	}
	for _, rec := range set.Interactions {
		if rec.DrugA == key || rec.DrugB == key {
			detail.Interactions = append(detail.Interactions, rec)
		}
	}
	if options, ok := set.Alternatives[key]; ok {
		detail.Alternatives = options
	}
	if notice, ok := set.Recalls[key]; ok {
		detail.Recall = &notice
	}

	h.RespondWithJSON(w, http.StatusOK, detail)
}

// ServeInteractions returns the full interaction table.
func (h *HTTPHandlerImpl) ServeInteractions(w http.ResponseWriter, r *http.Request) {
	set := h.dataStore.GetReference()
	h.RespondWithJSON(w, http.StatusOK, set.Interactions)
}

// HealthResponseImpl defines the structure for consistent JSON ordering
type HealthResponseImpl struct {
	Status        string                 `json:"status"`
	LastUpdate    string                 `json:"last_update"`
	DataAgeHours  float64                `json:"data_age_hours"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	set := h.dataStore.GetReference()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	uptime := time.Since(h.dataStore.GetServerStartTime())
	var dataAge time.Duration
	if !lastUpdate.IsZero() {
		dataAge = time.Since(lastUpdate)
	}

	// The reference tables ship with the binary, so "no data" means a
	// broken build rather than a pending download; recall advisories are
	// the only part that ages.
	var healthStatus string
	httpStatus := http.StatusOK
	switch {
	case len(set.Interactions) == 0 || len(set.Dosage) == 0:
		healthStatus = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case !lastUpdate.IsZero() && dataAge > 48*time.Hour:
		healthStatus = "degraded"
	default:
		healthStatus = "healthy"
	}

	lastUpdateStr := "never"
	if !lastUpdate.IsZero() {
		lastUpdateStr = lastUpdate.Format(time.RFC3339)
	}

	response := HealthResponseImpl{
		Status:        healthStatus,
		LastUpdate:    lastUpdateStr,
		DataAgeHours:  dataAge.Hours(),
		UptimeSeconds: uptime.Seconds(),
		Data: map[string]interface{}{
			"api_version":  "1.0",
			"drugs":        len(set.Vocabulary),
			"interactions": len(set.Interactions),
			"recalls":      len(set.Recalls),
			"is_updating":  isUpdating,
		},
		System: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}

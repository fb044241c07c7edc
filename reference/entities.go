// Package reference holds the read-only clinical reference data the rule
// engines run against: the interaction table, dosage profiles, the
// alternatives catalog, recall notices and the extraction vocabulary. The
// data ships compiled into the binary and is loaded once at process start;
// engines only ever see an immutable *Set, so the tables can later move to
// a real store without touching any rule code.
package reference

// Severity classifies the strength of a known drug-drug interaction.
type Severity string

const (
	SeveritySafe      Severity = "Safe"
	SeverityCaution   Severity = "Caution"
	SeverityDangerous Severity = "Dangerous"
)

// Confidence expresses how well-established an interaction record is.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// RiskLevel grades the interaction risk of an alternative candidate. It is
// a separate scale from Severity and the two are never interchangeable.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SafetyStatus is the regulatory standing of a drug.
type SafetyStatus string

const (
	StatusApproved      SafetyStatus = "approved"
	StatusRecalled      SafetyStatus = "recalled"
	StatusPartialRecall SafetyStatus = "partial-recall"
	StatusUnderReview   SafetyStatus = "under-review"
)

// InteractionRecord describes one unordered drug pair. DrugA and DrugB are
// stored in normalized form; lookups must treat (a,b) and (b,a) as the
// same pair.
type InteractionRecord struct {
	DrugA                string     `json:"drug_a"`
	DrugB                string     `json:"drug_b"`
	Severity             Severity   `json:"severity"`
	Mechanism            string     `json:"mechanism"`
	ClinicalSignificance string     `json:"clinical_significance"`
	Recommendation       string     `json:"recommendation"`
	Monitoring           string     `json:"monitoring"`
	Alternatives         string     `json:"alternatives"`
	Confidence           Confidence `json:"confidence"`
}

// DosageProfile is the per-drug dosing reference consulted by the dosage
// rule engine.
type DosageProfile struct {
	Drug                     string `json:"drug"`
	StandardDose             string `json:"standard_dose"`
	MaxDailyDose             string `json:"max_daily_dose"`
	WeightSensitive          bool   `json:"weight_sensitive"`
	PregnancyContraindicated bool   `json:"pregnancy_contraindicated"`
}

// AlternativeOption is one catalog entry for a drug's substitution list.
// MinimumAge is the youngest age (in years) the candidate is considered
// appropriate for.
type AlternativeOption struct {
	Name              string   `json:"name"`
	Reason            string   `json:"reason"`
	Contraindications []string `json:"contraindications"`
	MinimumAge        int      `json:"minimum_age"`
	Confidence        float64  `json:"confidence"`
}

// InteractionRiskRule raises the interaction risk of an alternative
// candidate when the patient's current medication list mentions the
// interacting term (substring match, case-insensitive).
type InteractionRiskRule struct {
	Candidate       string
	InteractingTerm string
	Risk            RiskLevel
}

// RecallNotice is a known regulatory action against a drug.
type RecallNotice struct {
	Drug           string       `json:"drug"`
	Status         SafetyStatus `json:"status"`
	Reason         string       `json:"reason"`
	Authority      string       `json:"authority"`
	Recommendation string       `json:"recommendation"`
	EffectiveDate  string       `json:"effective_date,omitempty"`
}

// VocabularyEntry maps a canonical drug name to its known brand and
// generic synonyms for free-text extraction.
type VocabularyEntry struct {
	Canonical string   `json:"canonical"`
	Synonyms  []string `json:"synonyms"`
}

package reference

import (
	"github.com/rxguard/rxguard-api/normalize"
)

// Set is one immutable snapshot of all reference tables, keyed by
// normalized drug name where a map helps. Engines receive a *Set and must
// not mutate it; updates happen by building a fresh Set and swapping it
// into the data container.
type Set struct {
	Interactions []InteractionRecord
	Dosage       map[string]DosageProfile
	Alternatives map[string][]AlternativeOption
	RiskRules    []InteractionRiskRule
	Recalls      map[string]RecallNotice
	Vocabulary   []VocabularyEntry
	Synonyms     map[string]string // normalized synonym or canonical -> canonical
	Guidelines   []string
}

// Build assembles a Set from the built-in tables. All keys and stored
// names are normalized so lookups only ever compare normalized forms.
func Build() *Set {
	set := &Set{
		Interactions: make([]InteractionRecord, 0, len(interactionTable)),
		Dosage:       make(map[string]DosageProfile, len(dosageTable)),
		Alternatives: make(map[string][]AlternativeOption, len(alternativesCatalog)),
		RiskRules:    riskRules,
		Recalls:      make(map[string]RecallNotice, len(recallTable)),
		Vocabulary:   vocabularyTable,
		Synonyms:     make(map[string]string),
		Guidelines:   safetyGuidelines,
	}

	for _, rec := range interactionTable {
		rec.DrugA = normalize.Name(rec.DrugA)
		rec.DrugB = normalize.Name(rec.DrugB)
		set.Interactions = append(set.Interactions, rec)
	}

	for _, prof := range dosageTable {
		set.Dosage[normalize.Name(prof.Drug)] = prof
	}

	for drug, options := range alternativesCatalog {
		set.Alternatives[normalize.Name(drug)] = options
	}

	for _, notice := range recallTable {
		set.Recalls[normalize.Name(notice.Drug)] = notice
	}

	for _, entry := range vocabularyTable {
		set.Synonyms[normalize.Name(entry.Canonical)] = entry.Canonical
		for _, syn := range entry.Synonyms {
			set.Synonyms[normalize.Name(syn)] = entry.Canonical
		}
	}

	return set
}

// WithRecalls returns a copy of the Set whose recall table contains the
// built-in notices plus the given ones. Built-in entries win on conflict:
// the curated table is the authoritative short-circuit for known recalls.
func (s *Set) WithRecalls(notices []RecallNotice) *Set {
	next := *s
	next.Recalls = make(map[string]RecallNotice, len(s.Recalls)+len(notices))
	for _, notice := range notices {
		key := normalize.Name(notice.Drug)
		if key == "" {
			continue
		}
		next.Recalls[key] = notice
	}
	for key, notice := range s.Recalls {
		next.Recalls[key] = notice
	}
	return &next
}

// CanonicalName resolves a free-text drug name to its canonical vocabulary
// form. Unknown names resolve to the empty string.
func (s *Set) CanonicalName(name string) string {
	return s.Synonyms[normalize.Name(name)]
}

// Package extraction pulls medication mentions out of free prescription
// text. Matching is vocabulary-driven: only drugs present in the reference
// vocabulary (canonical names and their brand synonyms) are recognized, so
// the extractor never invents a drug the engines cannot answer for.
package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rxguard/rxguard-api/normalize"
	"github.com/rxguard/rxguard-api/reference"
)

// maxMentions caps the extracted list per request.
const maxMentions = 10

// Mention is one recognized medication in the input text. Name is always
// the canonical vocabulary form; Matched preserves the text as written.
type Mention struct {
	Name       string  `json:"name"`
	Matched    string  `json:"matched_text"`
	Dosage     string  `json:"dosage,omitempty"`
	Frequency  string  `json:"frequency,omitempty"`
	Route      string  `json:"route"`
	Confidence float64 `json:"confidence"`
}

var dosagePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(mg|mcg|g|ml|units?)\b`)

// frequencyPatterns are tried in order; specific phrasings must come
// before the bare "daily" catch-all.
var frequencyPatterns = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)\b(?:twice\s+(?:daily|a\s+day)|two\s+times\s+(?:daily|a\s+day)|2x\s+daily|b\.?i\.?d\.?)\b`), "2/day"},
	{regexp.MustCompile(`(?i)\b(?:three\s+times\s+(?:daily|a\s+day)|thrice\s+daily|3x\s+daily|t\.?i\.?d\.?)\b`), "3/day"},
	{regexp.MustCompile(`(?i)\b(?:four\s+times\s+(?:daily|a\s+day)|4x\s+daily|q\.?i\.?d\.?)\b`), "4/day"},
	{regexp.MustCompile(`(?i)\bevery\s+(\d+)\s+hours?\b`), ""}, // canonical built from the capture
	{regexp.MustCompile(`(?i)\b(?:as\s+needed|p\.?r\.?n\.?)\b`), "as needed"},
	{regexp.MustCompile(`(?i)\b(?:at\s+bedtime|nightly|q\.?h\.?s\.?)\b`), "1/day"},
	{regexp.MustCompile(`(?i)\b(?:once\s+(?:daily|a\s+day)|daily|every\s+day|q\.?d\.?|o\.?d\.?)\b`), "1/day"},
}

var routePatterns = []struct {
	re    *regexp.Regexp
	route string
}{
	{regexp.MustCompile(`(?i)\b(?:intravenous(?:ly)?|i\.?v\.?)\b`), "intravenous"},
	{regexp.MustCompile(`(?i)\b(?:subcutaneous(?:ly)?|subcut)\b`), "subcutaneous"},
	{regexp.MustCompile(`(?i)\btopical(?:ly)?\b`), "topical"},
	{regexp.MustCompile(`(?i)\bsublingual(?:ly)?\b`), "sublingual"},
	{regexp.MustCompile(`(?i)\b(?:inhaled|inhalation)\b`), "inhaled"},
	{regexp.MustCompile(`(?i)\b(?:oral(?:ly)?|by\s+mouth|p\.?o\.?)\b`), "oral"},
}

const defaultRoute = "oral"

// Extract scans text for vocabulary drugs and their dosage, frequency and
// route, line by line. Attributes are read from the text between a drug
// mention and the next one, so two drugs on one line keep their own
// dosage. Mentions deduplicate on (name, dosage) and cap at ten; zero
// mentions is a valid result, not an error.
func Extract(set *reference.Set, text string) []Mention {
	pattern := vocabularyPattern(set)
	if pattern == nil {
		return []Mention{}
	}

	mentions := make([]Mention, 0, 4)
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		locs := pattern.FindAllStringIndex(line, -1)
		for i, loc := range locs {
			matched := line[loc[0]:loc[1]]
			canonical := set.CanonicalName(matched)
			if canonical == "" {
				continue
			}

			// Attribute window: after this mention, before the next.
			end := len(line)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			window := line[loc[1]:end]

			m := Mention{
				Name:       canonical,
				Matched:    matched,
				Dosage:     parseDosage(window),
				Frequency:  parseFrequency(window),
				Route:      parseRoute(window),
				Confidence: matchConfidence(matched, canonical),
			}

			key := m.Name + "|" + m.Dosage
			if seen[key] {
				continue
			}
			seen[key] = true

			mentions = append(mentions, m)
			if len(mentions) >= maxMentions {
				return mentions
			}
		}
	}
	return mentions
}

// vocabularyPattern compiles one alternation over every canonical name
// and synonym, longest first so "acetylsalicylic acid" wins over "asa".
func vocabularyPattern(set *reference.Set) *regexp.Regexp {
	terms := make([]string, 0, len(set.Vocabulary)*3)
	for _, entry := range set.Vocabulary {
		terms = append(terms, entry.Canonical)
		terms = append(terms, entry.Synonyms...)
	}
	if len(terms) == 0 {
		return nil
	}

	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func parseDosage(window string) string {
	m := dosagePattern.FindStringSubmatch(window)
	if m == nil {
		return ""
	}
	return m[1] + strings.ToLower(m[2])
}

func parseFrequency(window string) string {
	for _, fp := range frequencyPatterns {
		m := fp.re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		if fp.canonical == "" {
			return "every " + m[1] + " hours"
		}
		return fp.canonical
	}
	return ""
}

func parseRoute(window string) string {
	for _, rp := range routePatterns {
		if rp.re.MatchString(window) {
			return rp.route
		}
	}
	return defaultRoute
}

// matchConfidence is higher when the text used the canonical name rather
// than a brand synonym.
func matchConfidence(matched, canonical string) float64 {
	if normalize.Name(matched) == normalize.Name(canonical) {
		return 0.95
	}
	return 0.85
}

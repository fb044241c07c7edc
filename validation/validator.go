// Package validation guards user-supplied strings before they reach the
// rule engines.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rxguard/rxguard-api/interfaces"
)

// Pre-compiled patterns, compiled once at package initialization.
var (
	// Drug names: letters, digits, spaces and the punctuation that occurs
	// in real medication names (co-amoxiclav, vitamin B-12, St. John's wort).
	drugNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.'/()]+$`)

	// Dangerous patterns as plain strings; strings.Contains beats regex
	// for simple substring matching. The list is shorter than a generic
	// WAF's because prescription text legitimately contains semicolons
	// and dashes.
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"eval(", "expression(", "@import",
		"union select", "drop table", "delete from", "insert into",
		"../", "..\\", "%2e%2e", "file://",
		"{$ne:", "{$gt:", "{$where:", "{$regex:",
	}
)

const (
	maxDrugNameLen = 80
	maxInputLen    = 5000
)

// InputValidatorImpl implements the interfaces.DataValidator interface
type InputValidatorImpl struct{}

// NewValidator creates a new input validator
func NewValidator() interfaces.DataValidator {
	return &InputValidatorImpl{}
}

// ValidateInput validates free prescription text. It is deliberately
// permissive about punctuation; only size and injection patterns are
// rejected.
func (v *InputValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > maxInputLen {
		return fmt.Errorf("input too long: maximum %d characters", maxInputLen)
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidateDrugName validates a single drug name parameter.
func (v *InputValidatorImpl) ValidateDrugName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("drug name cannot be empty")
	}

	if len(trimmed) < 2 {
		return fmt.Errorf("drug name too short: minimum 2 characters")
	}

	if len(trimmed) > maxDrugNameLen {
		return fmt.Errorf("drug name too long: maximum %d characters", maxDrugNameLen)
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("drug name contains potentially dangerous content")
		}
	}

	if !drugNameRegex.MatchString(trimmed) {
		return fmt.Errorf("drug name contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, slashes and parentheses are allowed")
	}

	if hasExcessiveRepetition(trimmed) {
		return fmt.Errorf("drug name contains excessive character repetition")
	}

	return nil
}

// hasExcessiveRepetition reports the same byte repeated more than ten
// times in a row, a cheap DoS guard.
func hasExcessiveRepetition(input string) bool {
	run := 1
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			run++
			if run > 10 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

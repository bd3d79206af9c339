package services

import (
	"fmt"
	"hash/fnv"
	"strings"

	"easyapply/models"
)

// Fingerprint is a structural snapshot of the page used to decide
// whether an advance attempt changed anything.
type Fingerprint struct {
	URL  string
	Hash uint64
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%s#%016x", f.URL, f.Hash)
}

// errorPhrases maps validation phrases to their category, checked in
// order; the first match names the blocking class.
var errorPhrases = []struct {
	phrase   string
	category models.ErrorCategory
}{
	{"please make a selection", models.ErrorSelection},
	{"please enter a valid answer", models.ErrorAnswer},
	{"file is required", models.ErrorFile},
	{"field is required", models.ErrorRequired},
	{"invalid format", models.ErrorFormat},
}

// ValidationDetector classifies the page state after an advance attempt:
// progressed, blocked by a validation error, or stuck with no evidence
// either way.
type ValidationDetector struct {
	page Page
}

func NewValidationDetector(page Page) *ValidationDetector {
	return &ValidationDetector{page: page}
}

// Snapshot fingerprints the current page (URL plus a content hash).
func (d *ValidationDetector) Snapshot() Fingerprint {
	fp := Fingerprint{URL: d.page.URL()}
	content, err := d.page.Content()
	if err != nil {
		return fp
	}
	h := fnv.New64a()
	h.Write([]byte(content))
	fp.Hash = h.Sum64()
	return fp
}

// Check compares the before/after fingerprints and scans the page for
// validation-error phrases when nothing changed.
func (d *ValidationDetector) Check(before, after Fingerprint) models.StepOutcome {
	if before != after {
		return models.StepOutcome{Kind: models.OutcomeAdvanced}
	}
	content, err := d.page.Content()
	if err != nil {
		return models.StepOutcome{Kind: models.OutcomeStuck}
	}
	folded := strings.ToLower(content)
	for _, entry := range errorPhrases {
		if strings.Contains(folded, entry.phrase) {
			return models.StepOutcome{Kind: models.OutcomeBlocked, Category: entry.category}
		}
	}
	return models.StepOutcome{Kind: models.OutcomeStuck}
}

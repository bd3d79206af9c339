package services

import (
	"log"
	"strings"
)

var (
	forwardPhrases  = []string{"continue to next step", "review your application", "submit application"}
	forwardKeywords = []string{"continue", "next", "submit", "review"}
	backwardWords   = []string{"back", "previous"}
)

// AdvanceButton is the resolver's pick plus the evidence behind it.
type AdvanceButton struct {
	Element Element
	Label   string
	Text    string
	Score   int
}

// IsSubmit reports whether this control finalizes the application.
func (b *AdvanceButton) IsSubmit() bool {
	return strings.Contains(fold(b.Text), "submit application") ||
		strings.Contains(fold(b.Label), "submit application")
}

func equalsAny(s string, tokens ...string) bool {
	for _, token := range tokens {
		if s == token {
			return true
		}
	}
	return false
}

// ButtonResolver scores every visible, enabled button in the current step
// and picks the single best forward-progress control.
type ButtonResolver struct {
	page Page
	cfg  SelectorConfig
}

func NewButtonResolver(page Page, cfg SelectorConfig) *ButtonResolver {
	return &ButtonResolver{page: page, cfg: cfg}
}

// Resolve returns the best advance candidate, or nil when no button
// scores positively.
func (r *ButtonResolver) Resolve() (*AdvanceButton, error) {
	var buttons []Element
	for _, selector := range r.cfg.Buttons {
		found, err := r.page.QueryAll(selector)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, found...)
	}

	var best *AdvanceButton
	for i, btn := range buttons {
		if visible, err := btn.IsVisible(); err != nil || !visible {
			continue
		}
		if enabled, err := btn.IsEnabled(); err != nil || !enabled {
			continue
		}

		text, _ := btn.Text()
		text = strings.TrimSpace(text)
		label, _ := btn.Attribute("aria-label")
		classes, _ := btn.Attribute("class")
		foldedText := fold(text)
		foldedLabel := fold(label)

		score := 0
		for _, marker := range r.cfg.NextButtonMarkers {
			if value, err := btn.Attribute(marker); err == nil && value != "" {
				score += 10
				break
			}
		}
		// The phrase bonus requires an exact label match; mere containment
		// only earns the keyword bonus.
		if equalsAny(foldedLabel, forwardPhrases...) {
			score += 8
		} else if containsAny(foldedLabel, forwardKeywords...) {
			score += 6
		}
		if containsAny(foldedText, forwardKeywords...) {
			score += 4
		}
		if r.cfg.PrimaryButtonClass != "" && strings.Contains(classes, r.cfg.PrimaryButtonClass) {
			score += 3
		}
		// Large enough to veto a primary-styled "Back" control.
		if containsAny(foldedLabel, backwardWords...) || containsAny(foldedText, backwardWords...) {
			score -= 5
		}
		// Forward controls conventionally sit after "Back" in the DOM.
		if i > len(buttons)/2 {
			score++
		}

		if score <= 0 {
			continue
		}
		if best == nil || score > best.Score {
			best = &AdvanceButton{Element: btn, Label: label, Text: text, Score: score}
		}
	}

	if best != nil {
		log.Printf("Advance button: text=%q aria=%q score=%d", best.Text, best.Label, best.Score)
	}
	return best, nil
}

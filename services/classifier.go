package services

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"easyapply/models"
)

var foldLower = cases.Lower(language.English)

// fold normalizes text for the case-insensitive substring matching every
// classifier rule relies on.
func fold(s string) string {
	return foldLower.String(strings.TrimSpace(s))
}

var (
	affirmativeTokens = []string{"yes", "authorized", "authorised", "eligible"}
	negativeTokens    = []string{"no", "not required", "don't", "do not"}
	declineTokens     = []string{"prefer", "decline", "don't", "do not", "not specified", "none", "not to answer"}

	experiencePhrases = []string{
		"years of experience",
		"how many years",
		"years of work experience",
		"experience do you currently have",
		"many years of working experience",
	}
	eeoTokens = []string{
		"gender", "race", "veteran", "disability", "ethnicity",
		"sexual orientation", "latino", "transgender",
	}
	sanctionedCountries = []string{"north korea", "iran", "syria", "cuba", "crimea"}
	salaryTokens        = []string{"salary", "compensation", "pay", "wage"}
)

// ClassifierPolicy holds the convention-dependent knobs. The defaults
// mirror the layouts these forms are observed to use, but nothing
// guarantees a given form provider orders its options that way.
type ClassifierPolicy struct {
	// EEOFallbackLast selects the last option of a demographic question
	// when no decline-style option exists ("prefer not to say" is
	// conventionally placed last).
	EEOFallbackLast bool
	// TextPlaceholder is the minimal non-empty value for unmatched
	// required text fields; empty required fields always fail validation.
	TextPlaceholder string
	// DefaultProficiency answers language-proficiency questions for
	// languages missing from the profile.
	DefaultProficiency string
}

func DefaultClassifierPolicy() ClassifierPolicy {
	return ClassifierPolicy{
		EEOFallbackLast:    true,
		TextPlaceholder:    "N/A",
		DefaultProficiency: "Conversational",
	}
}

// FieldClassifier maps a field's question text to a semantic category and
// produces an answer from the user profile. Rules are evaluated in a
// fixed priority order; the first matching rule wins.
type FieldClassifier struct {
	profile *models.UserProfile
	policy  ClassifierPolicy
}

func NewFieldClassifier(profile *models.UserProfile, policy ClassifierPolicy) *FieldClassifier {
	return &FieldClassifier{profile: profile, policy: policy}
}

// Answer classifies one observed field and returns the value to fill or
// select, or the skip sentinel.
func (c *FieldClassifier) Answer(field models.FormField) models.FieldAnswer {
	switch field.Kind {
	case models.FieldFileUpload:
		// Uploads are attached by the dedicated uploader.
		return models.SkipAnswer()
	case models.FieldCheckbox, models.FieldDate:
		// The filler computes these without a value.
		return models.Answer("")
	}

	q := fold(field.Question)
	choice := field.Kind == models.FieldRadioGroup || field.Kind == models.FieldDropdown

	if containsAny(q, experiencePhrases...) {
		return c.answerExperience(q, field)
	}

	if answer, ok := c.answerPersonal(q); ok {
		return answer
	}

	if strings.Contains(q, "grade point average") || strings.Contains(q, "gpa") {
		return models.Answer(c.profile.GPA)
	}

	if containsAny(q, "authorized", "authorised", "legally", "work in") {
		return c.answerBool(c.profile.Preferences.LegallyAuthorized, field, choice)
	}

	if containsAny(q, "sponsor", "visa", "h1b", "citizenship") {
		// The question asks whether sponsorship is required, so a
		// profile that needs a visa answers affirmatively.
		return c.answerBool(c.profile.Preferences.RequiresVisa, field, choice)
	}

	if containsAny(q, "driver's licen", "drivers licen", "driver licen", "driving licen") {
		return c.answerBool(c.profile.Preferences.DriversLicense, field, choice)
	}

	if containsAny(q, sanctionedCountries...) {
		return c.answerBool(false, field, choice)
	}

	if strings.Contains(q, "data retention") {
		return c.answerBool(false, field, choice)
	}

	// Location-restriction sentinel ("are you currently located in the
	// United States?"). Authorization and sponsorship wording is handled
	// by the earlier rules; what falls through here is answered negatively.
	if strings.Contains(q, "united states") {
		return c.answerBool(false, field, choice)
	}

	if containsAny(q, eeoTokens...) {
		return c.answerEEO(field, choice)
	}

	if strings.Contains(q, "proficiency") {
		return c.answerProficiency(q, field)
	}

	if strings.Contains(q, "experience") && strings.Contains(q, "level") && choice {
		return c.answerExperienceLevel(field)
	}

	if containsAny(q, "level of education", "degree", "education") {
		return c.answerEducation(q, field, choice)
	}

	if containsAny(q, salaryTokens...) {
		return models.SkipAnswer()
	}

	if containsAny(q, "urgent", "immediately", "immediate start", "available to start") {
		return c.answerBool(c.profile.Preferences.UrgentFill, field, choice)
	}

	if containsAny(q, "commut") {
		return c.answerBool(c.profile.Preferences.Commute, field, choice)
	}

	if strings.Contains(q, "background check") {
		return c.answerBool(c.profile.Preferences.BackgroundCheck, field, choice)
	}

	return c.answerDefault(field, choice)
}

// answerExperience extracts a technology or industry keyword from the
// question and looks up the configured years; technology takes priority
// over industry, and the technology default covers everything else.
func (c *FieldClassifier) answerExperience(q string, field models.FormField) models.FieldAnswer {
	years := c.profile.TechnologyDefault
	matched := false
	for tech, n := range c.profile.Technology {
		if strings.Contains(q, fold(tech)) {
			years = n
			matched = true
			break
		}
	}
	if !matched {
		for industry, n := range c.profile.Industry {
			if strings.Contains(q, fold(industry)) {
				years = n
				matched = true
				break
			}
		}
	}
	value := strconv.Itoa(years)
	if field.Kind == models.FieldRadioGroup || field.Kind == models.FieldDropdown {
		if option, ok := pickOption(field.Options, value); ok {
			return models.Answer(option)
		}
		return models.Answer(firstOption(field.Options))
	}
	return models.Answer(value)
}

func (c *FieldClassifier) answerPersonal(q string) (models.FieldAnswer, bool) {
	info := c.profile.Personal
	switch {
	case strings.Contains(q, "first name"):
		return models.Answer(info.FirstName), true
	case strings.Contains(q, "last name"):
		return models.Answer(info.LastName), true
	case strings.Contains(q, "country code"):
		return models.Answer(info.PhoneCountryCode), true
	case strings.Contains(q, "phone") || strings.Contains(q, "mobile"):
		return models.Answer(info.Phone), true
	case strings.Contains(q, "email"):
		return models.Answer(info.Email), true
	case strings.Contains(q, "linkedin"):
		return models.Answer(info.LinkedIn), true
	case containsAny(q, "website", "portfolio", "github"):
		return models.Answer(info.Website), true
	case strings.Contains(q, "street"):
		return models.Answer(info.StreetAddress), true
	case strings.Contains(q, "city") && !strings.Contains(q, "ethnicity"):
		// "ethnicity" contains "city".
		return models.Answer(info.City), true
	case (strings.Contains(q, "state") && !strings.Contains(q, "united states")) || strings.Contains(q, "province"):
		// "united states" contains "state" but asks about authorization.
		return models.Answer(info.State), true
	case strings.Contains(q, "zip") || strings.Contains(q, "postal"):
		return models.Answer(info.Zip), true
	case strings.Contains(q, "full name"):
		return models.Answer(c.profile.FullName()), true
	}
	return models.FieldAnswer{}, false
}

// answerBool renders a yes/no preference against the field's offered
// options, or as plain text for free-form fields.
func (c *FieldClassifier) answerBool(value bool, field models.FormField, choice bool) models.FieldAnswer {
	if !choice {
		if value {
			return models.Answer("Yes")
		}
		return models.Answer("No")
	}
	tokens := negativeTokens
	if value {
		tokens = affirmativeTokens
	}
	if option, ok := pickOption(field.Options, tokens...); ok {
		return models.Answer(option)
	}
	return models.Answer(lastOption(field.Options))
}

// answerEEO declines demographic questions. When no decline-style option
// is offered, the last option is selected by convention.
func (c *FieldClassifier) answerEEO(field models.FormField, choice bool) models.FieldAnswer {
	if !choice {
		return models.Answer("Prefer not to answer")
	}
	if option, ok := pickOption(field.Options, declineTokens...); ok {
		return models.Answer(option)
	}
	if c.policy.EEOFallbackLast {
		return models.Answer(lastOption(field.Options))
	}
	return models.Answer(firstOption(field.Options))
}

func (c *FieldClassifier) answerProficiency(q string, field models.FormField) models.FieldAnswer {
	level := c.policy.DefaultProficiency
	for lang, configured := range c.profile.Languages {
		if strings.Contains(q, fold(lang)) {
			level = configured
			break
		}
	}
	if option, ok := pickOption(field.Options, fold(level)); ok {
		return models.Answer(option)
	}
	return models.Answer(level)
}

func (c *FieldClassifier) answerExperienceLevel(field models.FormField) models.FieldAnswer {
	if option, ok := pickOption(field.Options, "mid", "3-5", "2-4", "intermediate"); ok {
		return models.Answer(option)
	}
	if len(field.Options) > 1 {
		return models.Answer(field.Options[1])
	}
	return models.Answer(firstOption(field.Options))
}

func (c *FieldClassifier) answerEducation(q string, field models.FormField, choice bool) models.FieldAnswer {
	completed := false
	for _, degree := range c.profile.Degrees {
		if strings.Contains(q, fold(degree)) {
			completed = true
			break
		}
	}
	return c.answerBool(completed, field, choice)
}

// answerDefault covers everything no rule matched. Required text fields
// must never be left empty, and choice fields must always end up with a
// selection.
func (c *FieldClassifier) answerDefault(field models.FormField, choice bool) models.FieldAnswer {
	if choice {
		if option, ok := pickOption(field.Options, "yes"); ok {
			return models.Answer(option)
		}
		return models.Answer(firstOption(field.Options))
	}
	if field.Filled {
		return models.SkipAnswer()
	}
	if field.Numeric {
		return models.Answer(strconv.Itoa(c.profile.TechnologyDefault))
	}
	return models.Answer(c.policy.TextPlaceholder)
}

func containsAny(s string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// pickOption returns the first option whose folded label contains any of
// the given tokens.
func pickOption(options []string, tokens ...string) (string, bool) {
	for _, option := range options {
		folded := fold(option)
		for _, token := range tokens {
			if strings.Contains(folded, fold(token)) {
				return option, true
			}
		}
	}
	return "", false
}

func firstOption(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

func lastOption(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[len(options)-1]
}

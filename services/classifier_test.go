package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"easyapply/models"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		Personal: models.PersonalInfo{
			FirstName:        "Ada",
			LastName:         "Lovelace",
			Email:            "ada@example.com",
			Phone:            "5551234567",
			PhoneCountryCode: "+1",
			City:             "Boston",
			State:            "MA",
			Zip:              "02134",
			LinkedIn:         "https://linkedin.com/in/ada",
			Website:          "https://ada.dev",
		},
		Preferences: models.WorkPreferences{
			LegallyAuthorized: true,
			RequiresVisa:      false,
			DriversLicense:    true,
			BackgroundCheck:   true,
		},
		Technology:        map[string]int{"Python": 6, "Go": 3},
		TechnologyDefault: 2,
		Industry:          map[string]int{"Finance": 4},
		IndustryDefault:   1,
		GPA:               "3.8",
		Languages:         map[string]string{"Spanish": "Native"},
		Degrees:           []string{"Bachelor's Degree"},
	}
}

func newTestClassifier() *FieldClassifier {
	return NewFieldClassifier(testProfile(), DefaultClassifierPolicy())
}

func textField(question string) models.FormField {
	return models.FormField{Kind: models.FieldSingleLineText, Question: question}
}

func radioField(question string, options ...string) models.FormField {
	return models.FormField{Kind: models.FieldRadioGroup, Question: question, Options: options}
}

func TestClassifierSalaryIsNeverAnswered(t *testing.T) {
	c := newTestClassifier()

	assert.True(t, c.Answer(textField("What are your salary expectations?")).Skip)
	assert.True(t, c.Answer(textField("Desired compensation (USD)")).Skip)
	assert.True(t, c.Answer(radioField("Expected pay range", "50k", "100k")).Skip)
}

func TestClassifierExperienceYears(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(textField("How many years of experience do you have with Python?"))
	assert.Equal(t, "6", got.Value)

	// Unknown technology falls back to the technology default.
	got = c.Answer(textField("How many years of work experience do you have with Haskell?"))
	assert.Equal(t, "2", got.Value)

	// Industry lookup when no technology matches.
	got = c.Answer(textField("How many years of experience do you have in Finance?"))
	assert.Equal(t, "4", got.Value)
}

func TestClassifierExperienceYearsOnChoiceField(t *testing.T) {
	c := newTestClassifier()

	field := radioField("How many years of experience do you have with Go?", "1", "3", "5+")
	assert.Equal(t, "3", c.Answer(field).Value)

	// No option matches the configured years, first option wins.
	field = radioField("How many years of experience do you have with Go?", "10+", "20+")
	assert.Equal(t, "10+", c.Answer(field).Value)
}

func TestClassifierPersonalFields(t *testing.T) {
	c := newTestClassifier()

	assert.Equal(t, "Ada", c.Answer(textField("First name")).Value)
	assert.Equal(t, "Lovelace", c.Answer(textField("Last name")).Value)
	assert.Equal(t, "+1", c.Answer(textField("Phone country code")).Value)
	assert.Equal(t, "5551234567", c.Answer(textField("Mobile phone number")).Value)
	assert.Equal(t, "ada@example.com", c.Answer(textField("Email address")).Value)
	assert.Equal(t, "https://ada.dev", c.Answer(textField("Portfolio URL")).Value)
	assert.Equal(t, "02134", c.Answer(textField("ZIP / Postal Code")).Value)
}

func TestClassifierAuthorization(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(radioField("Are you legally authorized to work in the United States?", "Yes", "No"))
	assert.Equal(t, "Yes", got.Value)

	got = c.Answer(radioField("Will you now or in the future require sponsorship for employment visa status?", "Yes", "No"))
	assert.Equal(t, "No", got.Value)

	got = c.Answer(textField("Do you have a valid driver's license?"))
	assert.Equal(t, "Yes", got.Value)
}

func TestClassifierDemographicsDecline(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(radioField("What is your gender?", "Male", "Female", "Prefer not to say"))
	assert.Equal(t, "Prefer not to say", got.Value)

	got = c.Answer(radioField("Are you a veteran?", "Yes", "No, I am not a veteran"))
	assert.Equal(t, "No, I am not a veteran", got.Value)

	// No decline option offered: last option by convention.
	got = c.Answer(radioField("Race/ethnicity", "Group A", "Group B", "Group C"))
	assert.Equal(t, "Group C", got.Value)

	// Authorization outranks demographics when a question mentions both.
	got = c.Answer(radioField("Are you authorized to work in this country? Responses include gender data.", "Yes", "No"))
	assert.Equal(t, "Yes", got.Value)

	// "What is your ethnicity?" must decline, not leak the city answer.
	got = c.Answer(radioField("What is your ethnicity?", "Group A", "Prefer not to say"))
	assert.Equal(t, "Prefer not to say", got.Value)
}

func TestClassifierEEOFallbackFirstWhenConfigured(t *testing.T) {
	policy := DefaultClassifierPolicy()
	policy.EEOFallbackLast = false
	c := NewFieldClassifier(testProfile(), policy)

	got := c.Answer(radioField("Race/ethnicity", "Group A", "Group B", "Group C"))
	assert.Equal(t, "Group A", got.Value)
}

func TestClassifierLanguageProficiency(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(radioField("What is your level of proficiency in Spanish?", "None", "Conversational", "Native or bilingual"))
	assert.Equal(t, "Native or bilingual", got.Value)

	got = c.Answer(radioField("What is your level of proficiency in German?", "None", "Conversational", "Native or bilingual"))
	assert.Equal(t, "Conversational", got.Value)
}

func TestClassifierExperienceLevelPrefersMid(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(radioField("What is your experience level?", "Entry", "Mid-Senior", "Director"))
	assert.Equal(t, "Mid-Senior", got.Value)

	// No mid-style option: second option by convention (first is often
	// a placeholder or the lowest level).
	got = c.Answer(radioField("What is your experience level?", "Junior", "Staff", "Principal"))
	assert.Equal(t, "Staff", got.Value)
}

func TestClassifierEducation(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(radioField("Have you completed a Bachelor's Degree?", "Yes", "No"))
	assert.Equal(t, "Yes", got.Value)

	got = c.Answer(radioField("Have you completed a Doctorate degree?", "Yes", "No"))
	assert.Equal(t, "No", got.Value)
}

func TestClassifierUnitedStatesRestriction(t *testing.T) {
	c := newTestClassifier()

	// Location-restriction questions answer negatively even though the
	// default rule would otherwise prefer a "Yes" option.
	got := c.Answer(radioField("Are you currently located in the United States?", "Yes", "No"))
	assert.Equal(t, "No", got.Value)

	// Authorization wording still outranks the sentinel.
	got = c.Answer(radioField("Are you legally authorized to work in the United States?", "Yes", "No"))
	assert.Equal(t, "Yes", got.Value)
}

func TestClassifierSanctionedCountry(t *testing.T) {
	c := newTestClassifier()

	got := c.Answer(radioField("Are you a resident of Iran, Syria or North Korea?", "Yes", "No"))
	assert.Equal(t, "No", got.Value)
}

func TestClassifierDefaults(t *testing.T) {
	c := newTestClassifier()

	// Unmatched choice question: prefer a yes-style option.
	got := c.Answer(radioField("Can you start within two weeks of an offer?", "Yes I can", "No"))
	assert.Equal(t, "Yes I can", got.Value)

	// Unmatched required text field gets the placeholder, never empty.
	got = c.Answer(textField("Anything else we should know?"))
	assert.Equal(t, "N/A", got.Value)

	// Numeric unmatched fields answer with the default years.
	field := textField("Rate your ninja skills")
	field.Numeric = true
	assert.Equal(t, "2", c.Answer(field).Value)

	// Pre-filled text fields are left alone.
	field = textField("Headline")
	field.Filled = true
	assert.True(t, c.Answer(field).Skip)
}

func TestClassifierUploadAndCheckbox(t *testing.T) {
	c := newTestClassifier()

	assert.True(t, c.Answer(models.FormField{Kind: models.FieldFileUpload, Question: "Resume"}).Skip)

	got := c.Answer(models.FormField{Kind: models.FieldCheckbox, Question: "I agree to the terms"})
	assert.False(t, got.Skip)
	assert.Empty(t, got.Value)
}

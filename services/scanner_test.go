package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"easyapply/models"
)

func TestScannerClassifiesRadioGroup(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	yes := newFakeElement("").withAttr("id", "radio-yes")
	no := newFakeElement("").withAttr("id", "radio-no")
	group := newFakeElement("Are you authorized? Yes No").
		withChildren("legend", newFakeElement("Are you authorized?")).
		withChildren("input[type='radio']", yes, no).
		withChildren("label[for='radio-yes']", newFakeElement("Yes")).
		withChildren("label[for='radio-no']", newFakeElement("No"))
	page.set(".jobs-easy-apply-form-section__grouping", group)

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, models.FieldRadioGroup, fields[0].Field.Kind)
	assert.Equal(t, "Are you authorized?", fields[0].Field.Question)
	assert.Equal(t, []string{"Yes", "No"}, fields[0].Field.Options)
	assert.False(t, fields[0].Field.Filled)
}

func TestScannerRadioFilledWhenChecked(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	yes := newFakeElement("")
	yes.checked = true
	group := newFakeElement("q").
		withChildren("input[type='radio']", yes).
		withChildren("legend", newFakeElement("Question here"))
	page.set(".jobs-easy-apply-form-section__grouping", group)

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.True(t, fields[0].Field.Filled)
}

func TestScannerClassifiesDropdown(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	placeholder := newFakeElement("Select an option")
	us := newFakeElement("United States")
	sel := newFakeElement("").
		withChildren("option", placeholder, us).
		withChildren("option:checked", us)
	group := newFakeElement("Country").
		withChildren("legend", newFakeElement("Country of residence")).
		withChildren("select", sel)
	page.set(".jobs-easy-apply-form-section__grouping", group)

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, models.FieldDropdown, fields[0].Field.Kind)
	assert.Equal(t, []string{"Select an option", "United States"}, fields[0].Field.Options)
	assert.True(t, fields[0].Field.Filled)
}

func TestScannerClassifiesTextAndNumeric(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	input := newFakeElement("").withAttr("type", "text").withAttr("id", "single-line-numeric-123")
	group := newFakeElement("Years of experience").
		withChildren("label", newFakeElement("Years of experience with Go")).
		withChildren("input[class*='artdeco-text-input--input']", input)
	page.set(".jobs-easy-apply-form-section__grouping", group)

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, models.FieldSingleLineText, fields[0].Field.Kind)
	assert.True(t, fields[0].Field.Numeric)
	assert.False(t, fields[0].Field.Filled)
}

func TestScannerDeduplicatesNestedGroups(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	build := func() *fakeElement {
		return newFakeElement("q").
			withChildren("legend", newFakeElement("Same question")).
			withChildren("textarea", newFakeElement(""))
	}
	// The same question surfaces under two container selectors.
	page.set(".jobs-easy-apply-form-section__grouping", build())
	page.set("fieldset", build())

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, models.FieldMultiLineText, fields[0].Field.Kind)
}

// Re-scanning an untouched step must observe exactly the same fields.
func TestScannerRescanIsIdempotent(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	yes := newFakeElement("").withAttr("id", "radio-yes")
	no := newFakeElement("").withAttr("id", "radio-no")
	radioGroup := newFakeElement("Authorized? Yes No").
		withChildren("legend", newFakeElement("Are you authorized?")).
		withChildren("input[type='radio']", yes, no).
		withChildren("label[for='radio-yes']", newFakeElement("Yes")).
		withChildren("label[for='radio-no']", newFakeElement("No"))
	textGroup := newFakeElement("Years").
		withChildren("label", newFakeElement("Years of experience with Go")).
		withChildren("input[type='text']", newFakeElement(""))
	page.set(".jobs-easy-apply-form-section__grouping", radioGroup, textGroup)

	s := NewStepScanner(page, DefaultSelectors())
	first, err := s.Scan()
	assert.NoError(t, err)
	second, err := s.Scan()
	assert.NoError(t, err)

	observe := func(fields []*ScannedField) []models.FormField {
		out := make([]models.FormField, 0, len(fields))
		for _, f := range fields {
			out = append(out, f.Field)
		}
		return out
	}
	assert.Equal(t, observe(first), observe(second))
	assert.Len(t, first, 2)
}

func TestScannerSkipsGroupsWithoutControls(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	page.set(".jobs-easy-apply-form-section__grouping", newFakeElement("Just a heading"))

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Empty(t, fields)
}

func TestScannerQuestionFallsBackToGroupText(t *testing.T) {
	page := newFakePage("https://example.com/job", "")
	group := newFakeElement("How did you hear about us?").
		withChildren("textarea", newFakeElement(""))
	page.set(".jobs-easy-apply-form-section__grouping", group)

	fields, err := NewStepScanner(page, DefaultSelectors()).Scan()
	assert.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Equal(t, "How did you hear about us?", fields[0].Field.Question)
}

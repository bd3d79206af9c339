package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"easyapply/models"
)

// FillerPolicy holds the convention-dependent dropdown behavior.
type FillerPolicy struct {
	// DefaultToSecondOption selects index 1 when a dropdown answer is
	// not among the offered options and the dropdown is still on its
	// placeholder; index 0 is conventionally "Select an option".
	DefaultToSecondOption bool
	// DateFormat renders the current date for date pickers.
	DateFormat string
}

func DefaultFillerPolicy() FillerPolicy {
	return FillerPolicy{
		DefaultToSecondOption: true,
		DateFormat:            "01/02/2006",
	}
}

// FieldFiller performs the concrete fill/select/click action for one
// classified field. A failure on one field never aborts the step; the
// validation detector discovers later whether the omission mattered.
type FieldFiller struct {
	policy FillerPolicy
	now    func() time.Time
}

func NewFieldFiller(policy FillerPolicy) *FieldFiller {
	return &FieldFiller{policy: policy, now: time.Now}
}

// Fill applies the answer to the scanned field. The returned error is
// informational; callers log it and move on.
func (f *FieldFiller) Fill(field *ScannedField, answer models.FieldAnswer) error {
	switch field.Field.Kind {
	case models.FieldSingleLineText, models.FieldMultiLineText:
		return f.fillText(field, answer)
	case models.FieldRadioGroup:
		return f.fillRadio(field, answer)
	case models.FieldDropdown:
		return f.fillDropdown(field, answer)
	case models.FieldDate:
		return f.fillDate(field)
	case models.FieldCheckbox:
		return field.Input.Click()
	case models.FieldFileUpload:
		// Handled by the uploader, not the filler.
		return nil
	default:
		return fmt.Errorf("unknown field kind %q", field.Field.Kind)
	}
}

func (f *FieldFiller) fillText(field *ScannedField, answer models.FieldAnswer) error {
	if answer.Skip {
		return nil
	}
	if field.Field.Filled {
		// Pre-populated values (e.g. email from the account) are kept.
		return nil
	}
	if err := field.Input.Fill(answer.Value); err != nil {
		return fmt.Errorf("fill %q: %w", field.Field.Question, err)
	}
	return nil
}

// fillRadio selects the radio whose label contains the answer. A group
// must never be left unselected, so the last option is a forced fallback.
func (f *FieldFiller) fillRadio(field *ScannedField, answer models.FieldAnswer) error {
	if len(field.Options) == 0 {
		return fmt.Errorf("radio group %q has no options", field.Field.Question)
	}
	target := field.Options[len(field.Options)-1]
	if !answer.Skip && answer.Value != "" {
		want := fold(answer.Value)
		for i, label := range field.Field.Options {
			if strings.Contains(fold(label), want) || strings.Contains(want, fold(label)) {
				target = field.Options[i]
				break
			}
		}
	}
	if err := target.Click(); err != nil {
		return fmt.Errorf("select radio for %q: %w", field.Field.Question, err)
	}
	return nil
}

func (f *FieldFiller) fillDropdown(field *ScannedField, answer models.FieldAnswer) error {
	if answer.Skip {
		return nil
	}
	for _, label := range field.Field.Options {
		if fold(label) == fold(answer.Value) || strings.Contains(fold(label), fold(answer.Value)) {
			if err := field.Input.SelectByLabel(label); err != nil {
				return fmt.Errorf("select %q for %q: %w", label, field.Field.Question, err)
			}
			return nil
		}
	}
	// Options can be dynamic; the answer may no longer be offered. Keep
	// the current selection unless the dropdown is still sitting on its
	// placeholder.
	if !field.Field.Filled && f.policy.DefaultToSecondOption && len(field.Field.Options) > 1 {
		if err := field.Input.SelectByLabel(field.Field.Options[1]); err != nil {
			return fmt.Errorf("select fallback for %q: %w", field.Field.Question, err)
		}
		log.Printf("Dropdown %q: answer %q not offered, selected %q", field.Field.Question, answer.Value, field.Field.Options[1])
	}
	return nil
}

func (f *FieldFiller) fillDate(field *ScannedField) error {
	today := f.now().Format(f.policy.DateFormat)
	if err := field.Input.Fill(today); err != nil {
		return fmt.Errorf("fill date for %q: %w", field.Field.Question, err)
	}
	// Date pickers open a calendar overlay; Enter commits the typed date.
	if err := field.Input.Press("Enter"); err != nil {
		return fmt.Errorf("confirm date for %q: %w", field.Field.Question, err)
	}
	return nil
}

package services

import (
	"fmt"
	"strings"

	"easyapply/models"
)

// ScannedField pairs a FormField observation with the live element
// handles needed to act on it. Instances are valid only until the next
// page interaction and are discarded after each step.
type ScannedField struct {
	Field   models.FormField
	Group   Element
	Input   Element
	Options []Element
}

// StepScanner enumerates the fields of the currently visible form step.
// Every scan re-derives everything from the live page; nothing is cached
// across steps.
type StepScanner struct {
	page Page
	cfg  SelectorConfig
}

func NewStepScanner(page Page, cfg SelectorConfig) *StepScanner {
	return &StepScanner{page: page, cfg: cfg}
}

// Scan walks the configured field-group containers and classifies each
// group into exactly one field kind. Groups that contain no recognizable
// control are skipped.
func (s *StepScanner) Scan() ([]*ScannedField, error) {
	var groups []Element
	for _, selector := range s.cfg.FieldGroups {
		found, err := s.page.QueryAll(selector)
		if err != nil {
			return nil, fmt.Errorf("scan field groups: %w", err)
		}
		groups = append(groups, found...)
	}

	var fields []*ScannedField
	seen := make(map[string]bool)
	for _, group := range groups {
		field, err := s.classifyGroup(group)
		if err != nil || field == nil {
			continue
		}
		// Nested containers can surface the same question twice.
		key := string(field.Field.Kind) + "|" + field.Field.Question
		if seen[key] {
			continue
		}
		seen[key] = true
		fields = append(fields, field)
	}
	return fields, nil
}

func (s *StepScanner) classifyGroup(group Element) (*ScannedField, error) {
	question := s.questionText(group)

	if radios := queryFirst(group, s.cfg.RadioInputs); len(radios) > 0 {
		labels := s.radioLabels(group, radios)
		filled := false
		for _, radio := range radios {
			if checked, err := radio.IsChecked(); err == nil && checked {
				filled = true
				break
			}
		}
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldRadioGroup,
				Question: question,
				Options:  labels,
				Filled:   filled,
			},
			Group:   group,
			Options: radios,
		}, nil
	}

	if selects := queryFirst(group, s.cfg.Selects); len(selects) > 0 {
		sel := selects[0]
		options, optionTexts := s.selectOptions(sel)
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldDropdown,
				Question: question,
				Options:  optionTexts,
				Filled:   s.dropdownFilled(sel, optionTexts),
			},
			Group:   group,
			Input:   sel,
			Options: options,
		}, nil
	}

	if files := queryFirst(group, s.cfg.FileInputs); len(files) > 0 {
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldFileUpload,
				Question: question,
			},
			Group: group,
			Input: files[0],
		}, nil
	}

	if dates := queryFirst(group, s.cfg.DateInputs); len(dates) > 0 {
		value, _ := dates[0].InputValue()
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldDate,
				Question: question,
				Filled:   strings.TrimSpace(value) != "",
			},
			Group: group,
			Input: dates[0],
		}, nil
	}

	if areas := queryFirst(group, s.cfg.Textareas); len(areas) > 0 {
		value, _ := areas[0].InputValue()
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldMultiLineText,
				Question: question,
				Filled:   strings.TrimSpace(value) != "",
			},
			Group: group,
			Input: areas[0],
		}, nil
	}

	if inputs := queryFirst(group, s.cfg.TextInputs); len(inputs) > 0 {
		value, _ := inputs[0].InputValue()
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldSingleLineText,
				Question: question,
				Filled:   strings.TrimSpace(value) != "",
				Numeric:  isNumericInput(inputs[0]),
			},
			Group: group,
			Input: inputs[0],
		}, nil
	}

	if boxes := queryFirst(group, s.cfg.Checkboxes); len(boxes) > 0 {
		checked, _ := boxes[0].IsChecked()
		return &ScannedField{
			Field: models.FormField{
				Kind:     models.FieldCheckbox,
				Question: question,
				Filled:   checked,
			},
			Group: group,
			Input: boxes[0],
		}, nil
	}

	return nil, nil
}

// questionText extracts the visible question for a group, trying the
// configured label selectors first and falling back to the group's own
// text.
func (s *StepScanner) questionText(group Element) string {
	for _, selector := range s.cfg.QuestionLabels {
		labels, err := group.QueryAll(selector)
		if err != nil || len(labels) == 0 {
			continue
		}
		text, err := labels[0].Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) > 3 {
			return text
		}
	}
	text, err := group.Text()
	if err != nil {
		return ""
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// radioLabels resolves the visible label for each radio input, first via
// label[for=id], then by positional label matching.
func (s *StepScanner) radioLabels(group Element, radios []Element) []string {
	allLabels, _ := group.QueryAll("label")
	labels := make([]string, len(radios))
	for i, radio := range radios {
		if id, err := radio.Attribute("id"); err == nil && id != "" {
			if matches, err := group.QueryAll("label[for='" + id + "']"); err == nil && len(matches) > 0 {
				if text, err := matches[0].Text(); err == nil {
					labels[i] = strings.TrimSpace(text)
					continue
				}
			}
		}
		if i < len(allLabels) {
			if text, err := allLabels[i].Text(); err == nil {
				labels[i] = strings.TrimSpace(text)
			}
		}
	}
	return labels
}

func (s *StepScanner) selectOptions(sel Element) ([]Element, []string) {
	options, err := sel.QueryAll("option")
	if err != nil {
		return nil, nil
	}
	texts := make([]string, 0, len(options))
	for _, opt := range options {
		text, err := opt.Text()
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return options, texts
}

// dropdownFilled reports whether a select has moved off its first
// (placeholder) option.
func (s *StepScanner) dropdownFilled(sel Element, optionTexts []string) bool {
	if len(optionTexts) == 0 {
		return false
	}
	checked, err := sel.QueryAll("option:checked")
	if err != nil || len(checked) == 0 {
		return false
	}
	text, err := checked[0].Text()
	if err != nil {
		return false
	}
	return strings.TrimSpace(text) != optionTexts[0]
}

// isNumericInput checks the input's declared type and the numeric id
// marker the platform puts on number-only text inputs.
func isNumericInput(input Element) bool {
	if typ, err := input.Attribute("type"); err == nil && (typ == "number" || typ == "tel") {
		return true
	}
	if id, err := input.Attribute("id"); err == nil && strings.Contains(id, "numeric") {
		return true
	}
	return false
}

// queryFirst returns the results of the first selector that matches
// anything.
func queryFirst(scope Element, selectors []string) []Element {
	for _, selector := range selectors {
		found, err := scope.QueryAll(selector)
		if err == nil && len(found) > 0 {
			return found
		}
	}
	return nil
}

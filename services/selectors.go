package services

// SelectorConfig collects every platform-specific selector the core
// touches. LinkedIn's markup changes frequently, so none of these live
// in code paths: swapping the target platform means swapping this
// config, not the driver.
type SelectorConfig struct {
	// Containers that group one question with its control(s).
	FieldGroups []string

	// Per-kind probes evaluated inside a field group, in order.
	RadioInputs []string
	Selects     []string
	FileInputs  []string
	DateInputs  []string
	Textareas   []string
	TextInputs  []string
	Checkboxes  []string

	// Question/label extraction ladder inside a group.
	QuestionLabels []string

	// Buttons considered by the button resolver.
	Buttons []string
	// Marker attributes that identify the platform's own "next" button.
	NextButtonMarkers []string
	// Class substring marking the platform's primary visual style.
	PrimaryButtonClass string

	// Modal / confirmation teardown controls.
	ModalDismiss   []string
	ConfirmDiscard []string
	ToastDismiss   []string

	// Label text identifying the follow-company checkbox.
	FollowLabel string

	// Label text fragments identifying upload inputs.
	UploadInputs []string
}

// DefaultSelectors returns the LinkedIn Easy Apply selector set, covering
// both the legacy form markup and the artdeco-based structure.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		FieldGroups: []string{
			".jobs-easy-apply-form-section__grouping",
			".jobs-easy-apply-form-element",
			"fieldset",
			"[data-test-form-element]",
		},
		RadioInputs: []string{"input[type='radio']"},
		Selects:     []string{"select"},
		FileInputs:  []string{"input[type='file']"},
		DateInputs:  []string{"input[class*='artdeco-datepicker__input']", "input[name*='date']"},
		Textareas:   []string{"textarea"},
		TextInputs: []string{
			"input[class*='artdeco-text-input--input']",
			"input[type='text']",
			"input[type='number']",
			"input[type='email']",
			"input[type='tel']",
		},
		Checkboxes: []string{"input[type='checkbox']"},
		QuestionLabels: []string{
			"legend",
			"label",
			".fb-form-element-label",
			"h3",
			"h4",
			"span[class*='label']",
			".artdeco-text-input--label",
		},
		Buttons: []string{"button"},
		NextButtonMarkers: []string{
			"data-easy-apply-next-button",
			"data-live-test-easy-apply-next-button",
		},
		PrimaryButtonClass: "artdeco-button--primary",
		ModalDismiss:       []string{".artdeco-modal__dismiss", "button[aria-label='Dismiss']"},
		ConfirmDiscard:     []string{".artdeco-modal__confirm-dialog-btn"},
		ToastDismiss:       []string{".artdeco-toast-item__dismiss"},
		FollowLabel:        "to stay up to date with their page",
		UploadInputs:       []string{"input[name='file']", "input[type='file']"},
	}
}

package models

// FieldKind is the interaction modality of one form control. Every field
// observed in a form step is classified into exactly one kind before any
// fill action is attempted.
type FieldKind string

const (
	FieldSingleLineText FieldKind = "single_line_text"
	FieldMultiLineText  FieldKind = "multi_line_text"
	FieldRadioGroup     FieldKind = "radio_group"
	FieldDropdown       FieldKind = "dropdown"
	FieldDate           FieldKind = "date"
	FieldCheckbox       FieldKind = "checkbox"
	FieldFileUpload     FieldKind = "file_upload"
)

// FormField is a transient observation of one control in the currently
// visible form step. It is re-derived on every scan and never cached
// across steps, since the live form is the only source of truth.
type FormField struct {
	Kind     FieldKind `json:"kind"`
	Question string    `json:"question"`
	Options  []string  `json:"options,omitempty"`
	Filled   bool      `json:"filled"`
	// Numeric marks text inputs that only accept numbers (type=number,
	// or an id the platform tags as numeric).
	Numeric bool `json:"numeric,omitempty"`
}

// FieldAnswer is the classifier's verdict for one field: either a value
// to fill/select, or an instruction to leave the field alone.
type FieldAnswer struct {
	Value string `json:"value"`
	Skip  bool   `json:"skip"`
}

// SkipAnswer is the sentinel for questions that must never be answered
// (salary questions, uploads routed through the dedicated uploader).
func SkipAnswer() FieldAnswer {
	return FieldAnswer{Skip: true}
}

// Answer wraps a concrete value to fill or select.
func Answer(value string) FieldAnswer {
	return FieldAnswer{Value: value}
}

// OutcomeKind classifies the result of one advance attempt within a step.
type OutcomeKind string

const (
	OutcomeAdvanced OutcomeKind = "advanced"
	OutcomeBlocked  OutcomeKind = "validation_blocked"
	OutcomeStuck    OutcomeKind = "stuck"
)

// ErrorCategory names the class of validation error that blocked an
// advance attempt.
type ErrorCategory string

const (
	ErrorNone      ErrorCategory = ""
	ErrorSelection ErrorCategory = "selection_required"
	ErrorAnswer    ErrorCategory = "invalid_answer"
	ErrorFile      ErrorCategory = "file_required"
	ErrorRequired  ErrorCategory = "field_required"
	ErrorFormat    ErrorCategory = "invalid_format"
)

// StepOutcome is produced once per advance attempt by the validation
// detector.
type StepOutcome struct {
	Kind     OutcomeKind   `json:"kind"`
	Category ErrorCategory `json:"category,omitempty"`
}

// ApplicationStatus is the terminal state of one job application attempt.
type ApplicationStatus string

const (
	StatusSubmitted         ApplicationStatus = "submitted"
	StatusFailed            ApplicationStatus = "failed"
	StatusExceededStepLimit ApplicationStatus = "exceeded_step_limit"
)

// Failure reasons carried by ApplicationResult.
const (
	ReasonRetriesExhausted  = "retries_exhausted"
	ReasonNoAdvanceControl  = "no_advance_control"
	ReasonStepLimitExceeded = "step_limit_exceeded"
	ReasonConfirmationStuck = "could_not_close_confirmation"
	ReasonAgentFailed       = "ai_agent_failed"
)

// ApplicationResult is the terminal value of one application attempt.
// On failure it carries enough context for external debug capture; the
// core itself never persists artifacts.
type ApplicationResult struct {
	Status      ApplicationStatus `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	Steps       int               `json:"steps"`
	LastURL     string            `json:"last_url,omitempty"`
	Fingerprint string            `json:"fingerprint,omitempty"`
}

// Submitted reports whether the application went through.
func (r ApplicationResult) Submitted() bool {
	return r.Status == StatusSubmitted
}

// ApplyMode selects which form driver(s) the orchestrator runs for a job.
type ApplyMode string

const (
	ModeHardcodedOnly ApplyMode = "hardcoded-only"
	ModeAIOnly        ApplyMode = "ai-only"
	ModeHybrid        ApplyMode = "hybrid"
)

// ParseApplyMode maps a config/request string onto an ApplyMode,
// defaulting to hybrid.
func ParseApplyMode(s string) ApplyMode {
	switch ApplyMode(s) {
	case ModeHardcodedOnly, ModeAIOnly, ModeHybrid:
		return ApplyMode(s)
	default:
		return ModeHybrid
	}
}

package services

import (
	"context"
	"log"
	"strings"
	"time"

	"easyapply/models"
)

// DriverConfig bounds one run of the step driver.
type DriverConfig struct {
	// MaxSteps caps how many distinct form steps the driver will attempt
	// before giving up on a form that is not converging.
	MaxSteps int
	// RetryBudget is the number of advance attempts allowed per step.
	RetryBudget int
	// SettleDelay is the wait after an advance click before the page is
	// re-fingerprinted.
	SettleDelay time.Duration
	ResumePath  string
	CoverPath   string
}

func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		MaxSteps:    20,
		RetryBudget: 3,
		SettleDelay: 1500 * time.Millisecond,
	}
}

// FormStepDriver runs the fill/advance/check loop over a multi-step
// application form until it is submitted or the budgets run out.
type FormStepDriver struct {
	page       Page
	cfg        SelectorConfig
	conf       DriverConfig
	scanner    *StepScanner
	classifier *FieldClassifier
	filler     *FieldFiller
	buttons    *ButtonResolver
	detector   *ValidationDetector
	uploader   *DocumentUploader

	// sleep is swapped out in tests.
	sleep func(time.Duration)

	remediations int
}

func NewFormStepDriver(page Page, profile *models.UserProfile, cfg SelectorConfig, conf DriverConfig) *FormStepDriver {
	if conf.MaxSteps <= 0 {
		conf.MaxSteps = DefaultDriverConfig().MaxSteps
	}
	if conf.RetryBudget <= 0 {
		conf.RetryBudget = DefaultDriverConfig().RetryBudget
	}
	if conf.SettleDelay <= 0 {
		conf.SettleDelay = DefaultDriverConfig().SettleDelay
	}
	return &FormStepDriver{
		page:       page,
		cfg:        cfg,
		conf:       conf,
		scanner:    NewStepScanner(page, cfg),
		classifier: NewFieldClassifier(profile, DefaultClassifierPolicy()),
		filler:     NewFieldFiller(DefaultFillerPolicy()),
		buttons:    NewButtonResolver(page, cfg),
		detector:   NewValidationDetector(page),
		uploader:   NewDocumentUploader(page, cfg, conf.ResumePath, conf.CoverPath),
		sleep:      time.Sleep,
	}
}

// Remediations reports how many forced radio remediations the last Run
// performed.
func (d *FormStepDriver) Remediations() int {
	return d.remediations
}

type stepVerdict int

const (
	stepAdvanced stepVerdict = iota
	stepSubmitted
	stepExhausted
	stepNoButton
	stepConfirmationStuck
)

// Run drives the form from the current page state to a terminal result.
// Every iteration re-reads the live page; nothing observed in an earlier
// step is trusted.
func (d *FormStepDriver) Run(ctx context.Context) models.ApplicationResult {
	d.remediations = 0
	for step := 1; step <= d.conf.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			d.dismissModal()
			return d.failure(models.StatusFailed, err.Error(), step)
		}

		log.Printf("Form step %d/%d", step, d.conf.MaxSteps)
		switch d.runStep(ctx, step) {
		case stepSubmitted:
			return models.ApplicationResult{Status: models.StatusSubmitted, Steps: step, LastURL: d.page.URL()}
		case stepAdvanced:
			continue
		case stepNoButton:
			// Structural failure: the page may still be loading, or an
			// overlay swallowed the form. Consumes a step, not a retry.
			d.sleep(d.conf.SettleDelay)
			continue
		case stepConfirmationStuck:
			return d.failure(models.StatusFailed, models.ReasonConfirmationStuck, step)
		case stepExhausted:
			d.dismissModal()
			return d.failure(models.StatusFailed, models.ReasonRetriesExhausted, step)
		}
	}
	d.dismissModal()
	return d.failure(models.StatusExceededStepLimit, models.ReasonStepLimitExceeded, d.conf.MaxSteps)
}

func (d *FormStepDriver) runStep(ctx context.Context, step int) stepVerdict {
	for retries := d.conf.RetryBudget; retries > 0; retries-- {
		d.fillVisibleFields()
		d.uploader.Attach()

		btn, err := d.buttons.Resolve()
		if err != nil || btn == nil {
			log.Printf("Step %d: no advance control found", step)
			return stepNoButton
		}
		submit := btn.IsSubmit()
		if submit {
			d.unfollowCompany()
		}

		before := d.detector.Snapshot()
		if err := clickWithFallback(btn.Element); err != nil {
			// The whole interaction fallback chain failed. Structural,
			// like a missing button: consumes a step, not a retry.
			log.Printf("Step %d: advance click failed: %v", step, err)
			return stepNoButton
		}
		d.sleep(d.conf.SettleDelay)
		after := d.detector.Snapshot()

		outcome := d.detector.Check(before, after)
		switch outcome.Kind {
		case models.OutcomeAdvanced:
			if submit {
				if !d.closeConfirmation() {
					return stepConfirmationStuck
				}
				return stepSubmitted
			}
			return stepAdvanced
		case models.OutcomeBlocked:
			log.Printf("Step %d: validation blocked (%s), %d retries left", step, outcome.Category, retries-1)
			if outcome.Category == models.ErrorSelection {
				d.remediateRadios()
			}
		default:
			log.Printf("Step %d: no page change after advance, %d retries left", step, retries-1)
		}
	}
	return stepExhausted
}

// fillVisibleFields classifies and fills every field in the current
// step. Individual failures are logged and skipped; the validation
// detector decides afterwards whether anything mattered.
func (d *FormStepDriver) fillVisibleFields() {
	fields, err := d.scanner.Scan()
	if err != nil {
		log.Printf("Field scan failed: %v", err)
		return
	}
	for _, field := range fields {
		answer := d.classifier.Answer(field.Field)
		if err := d.filler.Fill(field, answer); err != nil {
			log.Printf("Fill failed: %v", err)
		}
	}
}

// remediateRadios re-scans the step and force-selects the first option
// of every radio group still unselected. Radio groups are the usual
// source of "please make a selection" errors.
func (d *FormStepDriver) remediateRadios() {
	fields, err := d.scanner.Scan()
	if err != nil {
		return
	}
	for _, field := range fields {
		if field.Field.Kind != models.FieldRadioGroup || field.Field.Filled {
			continue
		}
		if len(field.Options) == 0 {
			continue
		}
		if err := field.Options[0].Click(); err != nil {
			log.Printf("Radio remediation failed for %q: %v", field.Field.Question, err)
			continue
		}
		d.remediations++
		log.Printf("Remediated unselected radio group %q", field.Field.Question)
	}
}

// unfollowCompany unticks the pre-checked follow checkbox on the final
// review step. Best effort only.
func (d *FormStepDriver) unfollowCompany() {
	labels, err := d.page.QueryAll("label")
	if err != nil {
		return
	}
	for _, label := range labels {
		text, err := label.Text()
		if err != nil {
			continue
		}
		if strings.Contains(fold(text), d.cfg.FollowLabel) {
			if err := label.Click(); err != nil {
				log.Printf("Unfollow click failed: %v", err)
			}
			return
		}
	}
}

// closeConfirmation tears down the post-submit confirmation. Dismiss
// button first, then the success toast, then a raw Escape.
func (d *FormStepDriver) closeConfirmation() bool {
	d.sleep(d.conf.SettleDelay)
	if d.clickFirst(d.cfg.ModalDismiss) {
		return true
	}
	if d.clickFirst(d.cfg.ToastDismiss) {
		return true
	}
	return d.page.Press("Escape") == nil
}

// dismissModal abandons the application: close the Easy Apply modal and
// confirm the discard prompt.
func (d *FormStepDriver) dismissModal() {
	if !d.clickFirst(d.cfg.ModalDismiss) {
		return
	}
	d.sleep(d.conf.SettleDelay)
	for _, selector := range d.cfg.ConfirmDiscard {
		buttons, err := d.page.QueryAll(selector)
		if err != nil || len(buttons) == 0 {
			continue
		}
		// The confirm dialog renders [keep, discard]; discard is last.
		if err := buttons[len(buttons)-1].Click(); err != nil {
			log.Printf("Discard confirm failed: %v", err)
		}
		return
	}
}

func (d *FormStepDriver) clickFirst(selectors []string) bool {
	for _, selector := range selectors {
		elements, err := d.page.QueryAll(selector)
		if err != nil || len(elements) == 0 {
			continue
		}
		if visible, err := elements[0].IsVisible(); err != nil || !visible {
			continue
		}
		if err := elements[0].Click(); err == nil {
			return true
		}
	}
	return false
}

func (d *FormStepDriver) failure(status models.ApplicationStatus, reason string, steps int) models.ApplicationResult {
	fp := d.detector.Snapshot()
	return models.ApplicationResult{
		Status:      status,
		Reason:      reason,
		Steps:       steps,
		LastURL:     fp.URL,
		Fingerprint: fp.String(),
	}
}

// clickWithFallback escalates through click strategies. Overlays and
// sticky footers routinely intercept the plain click.
func clickWithFallback(el Element) error {
	if err := el.Click(); err == nil {
		return nil
	}
	if err := el.DispatchClick(); err == nil {
		return nil
	}
	if err := el.ScrollIntoView(); err != nil {
		return err
	}
	return el.Click()
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"easyapply/models"
)

func newTestDriver(page Page, conf DriverConfig) *FormStepDriver {
	d := NewFormStepDriver(page, testProfile(), DefaultSelectors(), conf)
	d.sleep = func(time.Duration) {}
	return d
}

// Three steps, each advancing on the first click, with the third step's
// button being the submit control.
func TestDriverSubmitsThreeStepForm(t *testing.T) {
	page := newFakePage("https://example.com/job", "step one")

	submit := newFakeElement("Submit application")
	submit.attrs["aria-label"] = "Submit application"
	submit.onClick = func() {
		page.content = "confirmation"
	}

	review := newFakeElement("Review")
	review.attrs["aria-label"] = "Review your application"
	review.onClick = func() {
		page.content = "step three"
		page.set("button", submit)
	}

	next := newFakeElement("Next")
	next.attrs["aria-label"] = "Continue to next step"
	next.onClick = func() {
		page.content = "step two"
		page.set("button", review)
	}
	page.set("button", next)

	dismiss := newFakeElement("Dismiss")
	page.set(".artdeco-modal__dismiss", dismiss)

	result := newTestDriver(page, DriverConfig{}).Run(context.Background())

	assert.Equal(t, models.StatusSubmitted, result.Status)
	assert.True(t, result.Submitted())
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, 1, dismiss.clicks)
}

// A single-step form blocked twice by an unselected radio group before
// the third attempt goes through. The driver must remediate on each
// blocked attempt and stay within the retry budget.
func TestDriverRemediatesSelectionErrors(t *testing.T) {
	page := newFakePage("https://example.com/job", "form Please make a selection")

	radioA := newFakeElement("")
	radioB := newFakeElement("")
	group := newFakeElement("Pick one A B").
		withChildren("legend", newFakeElement("Pick exactly one")).
		withChildren("input[type='radio']", radioA, radioB)
	page.set(".jobs-easy-apply-form-section__grouping", group)

	attempts := 0
	submit := newFakeElement("Submit application")
	submit.attrs["aria-label"] = "Submit application"
	submit.onClick = func() {
		attempts++
		if attempts >= 3 {
			page.content = "confirmation"
		}
	}
	page.set("button", submit)
	page.set(".artdeco-modal__dismiss", newFakeElement("Dismiss"))

	d := newTestDriver(page, DriverConfig{})
	result := d.Run(context.Background())

	assert.Equal(t, models.StatusSubmitted, result.Status)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, 3, attempts)
	// One unselected group remediated on each of the two blocked attempts.
	assert.Equal(t, 2, d.Remediations())
	assert.GreaterOrEqual(t, radioA.clicks, 2)
}

// The page never changes and shows no validation error: the retry budget
// runs out and the modal is abandoned via dismiss + discard.
func TestDriverGivesUpAfterRetryBudget(t *testing.T) {
	page := newFakePage("https://example.com/job", "stubborn step")

	next := newFakeElement("Next")
	next.attrs["aria-label"] = "Continue to next step"
	page.set("button", next)

	dismiss := newFakeElement("Dismiss")
	keep := newFakeElement("Keep")
	discard := newFakeElement("Discard")
	page.set(".artdeco-modal__dismiss", dismiss)
	page.set(".artdeco-modal__confirm-dialog-btn", keep, discard)

	result := newTestDriver(page, DriverConfig{}).Run(context.Background())

	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Equal(t, models.ReasonRetriesExhausted, result.Reason)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, 3, next.clicks)
	assert.Equal(t, 1, dismiss.clicks)
	assert.Equal(t, 0, keep.clicks)
	assert.Equal(t, 1, discard.clicks)
	assert.Equal(t, "https://example.com/job", result.LastURL)
	assert.NotEmpty(t, result.Fingerprint)
}

// Steps that advance forever hit the step ceiling.
func TestDriverStopsAtStepLimit(t *testing.T) {
	page := newFakePage("https://example.com/job", "step 0")

	step := 0
	next := newFakeElement("Next")
	next.attrs["aria-label"] = "Continue to next step"
	next.onClick = func() {
		step++
		page.content = "step " + string(rune('a'+step%26))
	}
	page.set("button", next)
	page.set(".artdeco-modal__dismiss", newFakeElement("Dismiss"))

	result := newTestDriver(page, DriverConfig{MaxSteps: 5}).Run(context.Background())

	assert.Equal(t, models.StatusExceededStepLimit, result.Status)
	assert.Equal(t, models.ReasonStepLimitExceeded, result.Reason)
	assert.Equal(t, 5, result.Steps)
}

// Submission succeeded but the confirmation cannot be torn down via
// dismiss or toast; the raw Escape keypress is the last resort.
func TestDriverClosesConfirmationWithEscape(t *testing.T) {
	page := newFakePage("https://example.com/job", "final step")

	submit := newFakeElement("Submit application")
	submit.attrs["aria-label"] = "Submit application"
	submit.onClick = func() { page.content = "confirmation" }
	page.set("button", submit)
	// No dismiss or toast controls present.

	result := newTestDriver(page, DriverConfig{}).Run(context.Background())

	assert.Equal(t, models.StatusSubmitted, result.Status)
	assert.Contains(t, page.pressed, "Escape")
}

// The unfollow checkbox is unticked before the submit click.
func TestDriverUnfollowsCompanyOnSubmit(t *testing.T) {
	page := newFakePage("https://example.com/job", "final step")

	follow := newFakeElement("Follow Example Corp to stay up to date with their page")
	page.set("label", follow)

	submit := newFakeElement("Submit application")
	submit.attrs["aria-label"] = "Submit application"
	submit.onClick = func() { page.content = "confirmation" }
	page.set("button", submit)
	page.set(".artdeco-modal__dismiss", newFakeElement("Dismiss"))

	result := newTestDriver(page, DriverConfig{}).Run(context.Background())

	assert.True(t, result.Submitted())
	assert.Equal(t, 1, follow.clicks)
}

func TestDriverCancelledContext(t *testing.T) {
	page := newFakePage("https://example.com/job", "step one")
	page.set("button", newFakeElement("Next"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := newTestDriver(page, DriverConfig{}).Run(ctx)

	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Equal(t, context.Canceled.Error(), result.Reason)
}

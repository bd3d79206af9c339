package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"easyapply/models"
)

// ReasoningAgent is a model-driven browser operator. Execute works the
// given task against the live page and returns once the agent believes
// it is done or cannot proceed.
type ReasoningAgent interface {
	Execute(ctx context.Context, task string) error
}

// Confirmation phrases that prove an application actually went through.
// The agent's own success claim is never trusted without one of these.
var confirmationPhrases = []string{
	"application submitted",
	"your application has been submitted",
	"application sent",
	"thank you for applying",
	"application received",
}

func confirmationVisible(page Page) bool {
	content, err := page.Content()
	if err != nil {
		return false
	}
	folded := strings.ToLower(content)
	for _, phrase := range confirmationPhrases {
		if strings.Contains(folded, phrase) {
			return true
		}
	}
	return false
}

// BuildInstructions renders the application task for a reasoning agent,
// embedding the candidate profile so the agent can answer screening
// questions without a callback.
func BuildInstructions(profile *models.UserProfile, jobURL string) string {
	var b strings.Builder
	b.WriteString("Complete the Easy Apply application form on the current page")
	if jobURL != "" {
		fmt.Fprintf(&b, " (%s)", jobURL)
	}
	b.WriteString(".\n\nCandidate details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", profile.FullName())
	fmt.Fprintf(&b, "- Email: %s\n", profile.Personal.Email)
	fmt.Fprintf(&b, "- Phone: %s %s\n", profile.Personal.PhoneCountryCode, profile.Personal.Phone)
	if profile.Personal.City != "" {
		fmt.Fprintf(&b, "- Location: %s, %s %s\n", profile.Personal.City, profile.Personal.State, profile.Personal.Zip)
	}
	fmt.Fprintf(&b, "- Legally authorized to work: %s\n", yesNo(profile.Preferences.LegallyAuthorized))
	fmt.Fprintf(&b, "- Requires visa sponsorship: %s\n", yesNo(profile.Preferences.RequiresVisa))
	if len(profile.Technology) > 0 {
		keys := make([]string, 0, len(profile.Technology))
		for k := range profile.Technology {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("- Years of experience: ")
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s %d", k, profile.Technology[k]))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "- Default years for anything unlisted: %d\n", profile.TechnologyDefault)
	if len(profile.Degrees) > 0 {
		fmt.Fprintf(&b, "- Completed degrees: %s\n", strings.Join(profile.Degrees, ", "))
	}
	if len(profile.Languages) > 0 {
		langs := make([]string, 0, len(profile.Languages))
		for lang := range profile.Languages {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		parts := make([]string, 0, len(langs))
		for _, lang := range langs {
			parts = append(parts, fmt.Sprintf("%s (%s)", lang, profile.Languages[lang]))
		}
		fmt.Fprintf(&b, "- Languages: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\nAnswer rules:\n")
	b.WriteString("- Never answer salary or compensation questions; leave them blank.\n")
	b.WriteString("- Decline to self-identify on equal-opportunity questions.\n")
	b.WriteString("- Use the years of experience above for any skill question; pick the closest offered option.\n")
	b.WriteString("\nProcedural rules:\n")
	b.WriteString("- Always prefer forward-progress controls (Next, Continue, Review, Submit).\n")
	b.WriteString("- Scroll to reveal off-screen controls before deciding none exist.\n")
	b.WriteString("- Never navigate away from the current job listing.\n")
	b.WriteString("- Click through every step until you reach Submit application, then submit.\n")
	b.WriteString("- Close the confirmation dialog after submitting.\n")
	b.WriteString("- If the form cannot be completed, close the modal via its dismiss control.\n")
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// AIFormAgent runs a reasoning agent against the application form under
// a hard timeout. Success means a confirmation phrase is visible on the
// page afterwards, regardless of what the agent reports.
type AIFormAgent struct {
	agent   ReasoningAgent
	page    Page
	profile *models.UserProfile
	timeout time.Duration
}

func NewAIFormAgent(agent ReasoningAgent, page Page, profile *models.UserProfile, timeout time.Duration) *AIFormAgent {
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &AIFormAgent{agent: agent, page: page, profile: profile, timeout: timeout}
}

// Run executes the agent and verifies the outcome. The boolean is the
// verified submission state; the error explains a non-submission.
func (a *AIFormAgent) Run(ctx context.Context, jobURL string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	task := BuildInstructions(a.profile, jobURL)

	done := make(chan error, 1)
	go func() {
		done <- a.agent.Execute(ctx, task)
	}()

	select {
	case err := <-done:
		if err != nil {
			return false, fmt.Errorf("agent execution: %w", err)
		}
	case <-ctx.Done():
		// The agent goroutine is abandoned; its context is cancelled so
		// any in-flight page call unwinds on its own.
		log.Printf("AI agent timed out after %s", a.timeout)
		return false, fmt.Errorf("agent timeout after %s: %w", a.timeout, ctx.Err())
	}

	if confirmationVisible(a.page) {
		return true, nil
	}
	return false, fmt.Errorf("agent finished without a visible confirmation")
}

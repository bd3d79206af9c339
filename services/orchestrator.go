package services

import (
	"context"
	"log"
	"sync"

	"easyapply/models"
)

// FormAgent is the orchestrator's view of the AI path. Satisfied by
// *AIFormAgent.
type FormAgent interface {
	Run(ctx context.Context, jobURL string) (bool, error)
}

// OrchestratorStats are the running counters exposed over the API.
type OrchestratorStats struct {
	Attempted    int `json:"attempted"`
	Submitted    int `json:"submitted"`
	Failed       int `json:"failed"`
	AgentRuns    int `json:"agent_runs"`
	AgentSuccess int `json:"agent_success"`
	Fallbacks    int `json:"fallbacks"`
	TotalSteps   int `json:"total_steps"`
}

// ApplicationOrchestrator applies to one job at a time: it selects the
// hardcoded driver, the AI agent, or both according to the mode, and
// records the terminal result.
type ApplicationOrchestrator struct {
	page      Page
	driver    *FormStepDriver
	agent     FormAgent
	mode      models.ApplyMode
	artifacts ArtifactSink

	mu    sync.Mutex
	stats OrchestratorStats
}

func NewApplicationOrchestrator(page Page, driver *FormStepDriver, agent FormAgent, mode models.ApplyMode) *ApplicationOrchestrator {
	return &ApplicationOrchestrator{page: page, driver: driver, agent: agent, mode: mode}
}

// SetArtifactSink enables debug capture on failures.
func (o *ApplicationOrchestrator) SetArtifactSink(sink ArtifactSink) {
	o.artifacts = sink
}

// Stats returns a copy of the running counters.
func (o *ApplicationOrchestrator) Stats() OrchestratorStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// Apply drives one application to a terminal result. The page is
// expected to already show the opened Easy Apply modal.
func (o *ApplicationOrchestrator) Apply(ctx context.Context, jobID, jobURL string) models.ApplicationResult {
	o.mu.Lock()
	o.stats.Attempted++
	o.mu.Unlock()

	var result models.ApplicationResult
	switch o.mode {
	case models.ModeHardcodedOnly:
		result = o.driver.Run(ctx)
	case models.ModeAIOnly:
		result = o.runAgent(ctx, jobURL, false)
	default:
		result = o.runAgent(ctx, jobURL, true)
	}

	o.record(jobID, result)
	return result
}

// runAgent runs the AI path; with fallback enabled, any agent failure
// force-closes whatever the agent left open and hands the form to the
// hardcoded driver.
func (o *ApplicationOrchestrator) runAgent(ctx context.Context, jobURL string, fallback bool) models.ApplicationResult {
	o.mu.Lock()
	o.stats.AgentRuns++
	o.mu.Unlock()

	if o.agent == nil {
		if fallback {
			log.Printf("No AI agent configured, using hardcoded driver")
			return o.driver.Run(ctx)
		}
		return models.ApplicationResult{Status: models.StatusFailed, Reason: models.ReasonAgentFailed, LastURL: o.page.URL()}
	}

	ok, err := o.agent.Run(ctx, jobURL)
	if ok {
		o.mu.Lock()
		o.stats.AgentSuccess++
		o.mu.Unlock()
		return models.ApplicationResult{Status: models.StatusSubmitted, LastURL: o.page.URL()}
	}
	log.Printf("AI agent did not submit: %v", err)

	// Whatever state the agent left behind gets torn down before anyone
	// else touches the page.
	o.forceClose()

	if !fallback {
		return models.ApplicationResult{Status: models.StatusFailed, Reason: models.ReasonAgentFailed, LastURL: o.page.URL()}
	}

	o.mu.Lock()
	o.stats.Fallbacks++
	o.mu.Unlock()
	log.Printf("Falling back to hardcoded driver")
	return o.driver.Run(ctx)
}

var closeVocabulary = []string{"close", "cancel", "dismiss", "discard", "exit"}

// forceClose restores a clean UI state after an agent failure: escape
// keypresses, then any control with close-style wording, then a raw
// history-back as the last resort.
func (o *ApplicationOrchestrator) forceClose() {
	for i := 0; i < 2; i++ {
		if err := o.page.Press("Escape"); err != nil {
			log.Printf("Escape press failed: %v", err)
		}
	}

	cfg := o.driver.cfg
	selectors := append(append([]string{}, cfg.ModalDismiss...), cfg.ConfirmDiscard...)
	selectors = append(selectors, cfg.Buttons...)
	clicked := false
	for _, selector := range selectors {
		elements, err := o.page.QueryAll(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if visible, err := el.IsVisible(); err != nil || !visible {
				continue
			}
			text, _ := el.Text()
			label, _ := el.Attribute("aria-label")
			if !containsAny(fold(text), closeVocabulary...) && !containsAny(fold(label), closeVocabulary...) {
				continue
			}
			if err := el.Click(); err == nil {
				clicked = true
			}
		}
	}
	if !clicked {
		if err := o.page.GoBack(); err != nil {
			log.Printf("History back failed: %v", err)
		}
	}
}

func (o *ApplicationOrchestrator) record(jobID string, result models.ApplicationResult) {
	o.mu.Lock()
	if result.Submitted() {
		o.stats.Submitted++
	} else {
		o.stats.Failed++
	}
	o.stats.TotalSteps += result.Steps
	o.mu.Unlock()

	log.Printf("Application %s: status=%s reason=%s steps=%d", jobID, result.Status, result.Reason, result.Steps)

	if result.Submitted() || o.artifacts == nil {
		return
	}
	shot, err := o.page.Screenshot()
	if err != nil {
		log.Printf("Failure screenshot unavailable: %v", err)
		return
	}
	if err := o.artifacts.SaveFailure(jobID, result, shot); err != nil {
		log.Printf("Failed to save failure artifacts: %v", err)
	}
}

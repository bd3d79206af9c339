package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"easyapply/config"
	"easyapply/models"
)

// EasyApplyService ties the browser session and the orchestrator into
// the per-job application pipeline behind the API.
type EasyApplyService struct {
	cfg     config.AppConfig
	profile *models.UserProfile
	session *BrowserSession

	mu    sync.Mutex
	stats OrchestratorStats
}

func NewEasyApplyService(cfg config.AppConfig, profile *models.UserProfile, session *BrowserSession) *EasyApplyService {
	return &EasyApplyService{cfg: cfg, profile: profile, session: session}
}

// Apply opens the job, drives the form to a terminal result and tears
// the page down. The mode argument overrides the configured default.
func (s *EasyApplyService) Apply(ctx context.Context, jobURL string, mode models.ApplyMode) (models.ApplicationResult, error) {
	if mode == "" {
		mode = s.cfg.Mode
	}

	pwPage, err := s.session.OpenJob(jobURL)
	if err != nil {
		return models.ApplicationResult{}, fmt.Errorf("open job: %w", err)
	}
	defer pwPage.Close()

	page := NewPlaywrightPage(pwPage)
	selectors := DefaultSelectors()
	driver := NewFormStepDriver(page, s.profile, selectors, DriverConfig{
		MaxSteps:    s.cfg.MaxSteps,
		RetryBudget: s.cfg.RetryBudget,
		ResumePath:  s.cfg.ResumePath,
		CoverPath:   s.cfg.CoverPath,
	})

	var agent FormAgent
	if mode != models.ModeHardcodedOnly && s.cfg.Agent.GeminiAPIKey != "" {
		gemini, err := NewGeminiAgent(ctx, s.cfg.Agent.GeminiAPIKey, s.cfg.Agent.GeminiModel, page)
		if err != nil {
			log.Printf("Gemini agent unavailable: %v", err)
		} else {
			defer gemini.Close()
			agent = NewAIFormAgent(gemini, page, s.profile, s.cfg.Agent.Timeout)
		}
	}

	orch := NewApplicationOrchestrator(page, driver, agent, mode)
	if s.cfg.Artifacts.Bucket != "" {
		sink, err := NewS3ArtifactSink(s.cfg.Artifacts.Region, s.cfg.Artifacts.Bucket, s.cfg.Artifacts.Prefix)
		if err != nil {
			log.Printf("Artifact sink unavailable: %v", err)
		} else {
			orch.SetArtifactSink(sink)
		}
	}

	result := orch.Apply(ctx, jobURL, jobURL)
	s.merge(orch.Stats())
	return result, nil
}

// Stats returns the counters accumulated across all jobs.
func (s *EasyApplyService) Stats() OrchestratorStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// merge folds one job's counters into the service totals. Each job gets
// a fresh orchestrator, so per-job stats are deltas.
func (s *EasyApplyService) merge(delta OrchestratorStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Attempted += delta.Attempted
	s.stats.Submitted += delta.Submitted
	s.stats.Failed += delta.Failed
	s.stats.AgentRuns += delta.AgentRuns
	s.stats.AgentSuccess += delta.AgentSuccess
	s.stats.Fallbacks += delta.Fallbacks
	s.stats.TotalSteps += delta.TotalSteps
}

package controllers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"easyapply/models"
	"easyapply/services"
	"easyapply/utils"
)

// ApplyService is the application pipeline behind the API: open the job,
// drive the form, return the terminal result.
type ApplyService interface {
	Apply(ctx context.Context, jobURL string, mode models.ApplyMode) (models.ApplicationResult, error)
	Stats() services.OrchestratorStats
}

// ApplicationController exposes the application pipeline over HTTP.
// Applications run one at a time; the browser session is a singleton.
type ApplicationController struct {
	ApplicationModel *models.JobApplicationModel
	Service          ApplyService
	logger           *utils.Logger

	mu      sync.Mutex
	running bool
}

func NewApplicationController(db *sql.DB, service ApplyService) *ApplicationController {
	return &ApplicationController{
		ApplicationModel: models.NewJobApplicationModel(db),
		Service:          service,
		logger:           utils.NewLogger("application_controller"),
	}
}

type CreateApplicationRequest struct {
	JobURL string `json:"job_url" binding:"required"`
	Mode   string `json:"mode"`
}

// CreateApplication applies to one job synchronously.
func (ctrl *ApplicationController) CreateApplication(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(c, "Invalid request body", err)
		return
	}
	if !strings.Contains(req.JobURL, "linkedin.com/jobs") {
		utils.BadRequestError(c, "job_url must be a LinkedIn job posting", nil)
		return
	}

	ctrl.mu.Lock()
	if ctrl.running {
		ctrl.mu.Unlock()
		utils.ConflictError(c, "An application is already in progress", nil)
		return
	}
	ctrl.running = true
	ctrl.mu.Unlock()
	defer func() {
		ctrl.mu.Lock()
		ctrl.running = false
		ctrl.mu.Unlock()
	}()

	if applied, err := ctrl.ApplicationModel.HasApplied(req.JobURL); err != nil {
		ctrl.logger.Error("Duplicate check failed", err)
	} else if applied {
		utils.ConflictError(c, "Already applied to this job", nil)
		return
	}

	mode := models.ParseApplyMode(req.Mode)
	ctrl.logger.Info("Starting application", gin.H{"job_url": req.JobURL, "mode": mode})

	result, err := ctrl.Service.Apply(c.Request.Context(), req.JobURL, mode)
	if err != nil {
		utils.InternalServerError(c, "Application run failed", err)
		return
	}

	if record, err := ctrl.ApplicationModel.Create(req.JobURL, mode, result); err != nil {
		ctrl.logger.Error("Failed to persist application record", err)
	} else {
		ctrl.logger.Info("Application recorded", gin.H{"code": record.ApplicationCode, "status": record.Status})
	}

	if result.Submitted() {
		utils.SuccessResponse(c, http.StatusOK, "Application submitted", result)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Application not submitted: %s", result.Reason), result)
}

// ListApplications returns the recent application history.
func (ctrl *ApplicationController) ListApplications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	apps, err := ctrl.ApplicationModel.List(limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to load applications", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Applications retrieved", apps)
}

// GetStats returns the orchestrator's running counters.
func (ctrl *ApplicationController) GetStats(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Stats retrieved", ctrl.Service.Stats())
}

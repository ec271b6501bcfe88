package handler

import (
	app_errors "cheff-guio/internal/errors"
	"cheff-guio/internal/response"
	"cheff-guio/internal/services"

	"github.com/gin-gonic/gin"
)

// StartOnboardingRequest defines the payload for starting a session. A
// restaurant id resumes an existing configuration.
type StartOnboardingRequest struct {
	RestaurantID *uint `json:"restaurant_id"`
}

// StartOnboardingSession creates a new onboarding session.
// POST /api/onboarding/sessions
func (s *Server) StartOnboardingSession(c *gin.Context) {
	var req StartOnboardingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
			return
		}
	}

	session, err := s.OnboardingService.StartSession(req.RestaurantID)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "onboarding.session_started", session)
}

// GetOnboardingSession returns the current session state.
// GET /api/onboarding/sessions/:session_id
func (s *Server) GetOnboardingSession(c *gin.Context) {
	session, err := s.OnboardingService.GetSession(c.Param("session_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, session)
}

// UpdateDraftRequest defines the payload for merging draft data into a step.
type UpdateDraftRequest struct {
	Step  int                     `json:"step" binding:"required"`
	Patch services.StepDraftPatch `json:"patch"`
}

// UpdateOnboardingDraft merges partial draft data for a step.
// PUT /api/onboarding/sessions/:session_id/draft
func (s *Server) UpdateOnboardingDraft(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	session, err := s.OnboardingService.SetStepDraft(c.Param("session_id"), req.Step, req.Patch)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "onboarding.draft_updated", session)
}

// NextOnboardingStep checkpoints the draft and advances the workflow.
// POST /api/onboarding/sessions/:session_id/next
func (s *Server) NextOnboardingStep(c *gin.Context) {
	session, err := s.OnboardingService.NextStep(c.Param("session_id"))
	if HandleServiceError(c, err) {
		return
	}

	if session.Completed {
		response.SuccessI18n(c, "onboarding.completed", session)
		return
	}
	response.SuccessI18n(c, "onboarding.step_advanced", session)
}

// PreviousOnboardingStep moves the workflow one step back.
// POST /api/onboarding/sessions/:session_id/previous
func (s *Server) PreviousOnboardingStep(c *gin.Context) {
	session, err := s.OnboardingService.PreviousStep(c.Param("session_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, session)
}

// GoToStepRequest defines the payload for a direct step jump.
type GoToStepRequest struct {
	Step int `json:"step" binding:"required"`
}

// GoToOnboardingStep jumps to a specific step.
// POST /api/onboarding/sessions/:session_id/goto
func (s *Server) GoToOnboardingStep(c *gin.Context) {
	var req GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	session, err := s.OnboardingService.GoToStep(c.Param("session_id"), req.Step)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, session)
}

// SaveOnboardingProgress checkpoints the draft without advancing.
// POST /api/onboarding/sessions/:session_id/save
func (s *Server) SaveOnboardingProgress(c *gin.Context) {
	session, err := s.OnboardingService.SaveProgress(c.Param("session_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "onboarding.step_advanced", session)
}

// ResetOnboarding clears the draft and returns the workflow to step 1.
// POST /api/onboarding/sessions/:session_id/reset
func (s *Server) ResetOnboarding(c *gin.Context) {
	session, err := s.OnboardingService.ResetOnboarding(c.Param("session_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "onboarding.reset", session)
}

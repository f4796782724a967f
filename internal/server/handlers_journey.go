package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/orchestrator"
	"github.com/jonathan/career-coach/internal/types"
)

// ---------------------------------------------------------------------
// Journey Handlers
// ---------------------------------------------------------------------

// RunActionRequest carries the optional parameters of an action run. All
// fields are needed only by specific actions.
type RunActionRequest struct {
	Skill     string `json:"skill,omitempty"`
	ProjectID string `json:"project_id,omitempty" validate:"omitempty,uuid"`
	JobID     string `json:"job_id,omitempty" validate:"omitempty,uuid"`
}

// Validate checks the run action request fields.
func (r *RunActionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TermAchievedRequest marks one career horizon as achieved.
type TermAchievedRequest struct {
	Term string `json:"term" validate:"required,oneof=short_term mid_term long_term"`
}

// Validate checks the term achieved request fields.
func (r *TermAchievedRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (s *Server) handleGetJourney(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	state, err := s.svc.Journey(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, state)
}

func (s *Server) handleGetFlags(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	flags, err := s.db.GetJourneyState(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, flags)
}

func (s *Server) handleTermAchieved(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req TermAchievedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Term must be one of short_term, mid_term, long_term")
		return
	}

	if err := s.db.SetTermAchieved(r.Context(), userID, types.StageKey(req.Term)); err != nil {
		s.handleError(w, err)
		return
	}

	state, err := s.svc.Journey(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, state)
}

func (s *Server) handleRunAction(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	action := r.PathValue("action")

	// The body is optional; only some actions take parameters.
	var req RunActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid action parameters: "+err.Error())
		return
	}

	params := orchestrator.ActionParams{Skill: req.Skill}
	if req.ProjectID != "" {
		params.ProjectID = uuid.MustParse(req.ProjectID)
	}
	if req.JobID != "" {
		params.JobID = uuid.MustParse(req.JobID)
	}

	result, err := s.svc.Run(r.Context(), userID, action, params)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

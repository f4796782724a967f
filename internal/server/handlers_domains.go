package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/types"
)

// ---------------------------------------------------------------------
// Domain Record Handlers
// ---------------------------------------------------------------------

// UpdateGoalRequest sets or replaces the user's career goal.
type UpdateGoalRequest struct {
	TargetRole  string `json:"target_role" validate:"required"`
	Domain      string `json:"domain,omitempty"`
	CurrentRole string `json:"current_role,omitempty"`
	Experience  string `json:"experience,omitempty"`
	ResumeText  string `json:"resume_text,omitempty"`
}

// Validate checks the goal request fields.
func (r *UpdateGoalRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateStepsRequest replaces a learning journey's step completion state.
type UpdateStepsRequest struct {
	Steps []StepToggle `json:"steps" validate:"required,min=1,dive"`
}

// StepToggle is one step's done state in an update request.
type StepToggle struct {
	Title string `json:"title" validate:"required"`
	Done  bool   `json:"done"`
}

// Validate checks the steps request fields.
func (r *UpdateStepsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateProjectStatusRequest moves a project idea between statuses.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planned in_progress completed"`
}

// Validate checks the project status request fields.
func (r *UpdateProjectStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SetJobSavedRequest toggles a job recommendation's saved mark.
type SetJobSavedRequest struct {
	Saved bool `json:"saved"`
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	goal, err := s.db.GetUserGoal(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if goal == nil {
		s.errorResponse(w, http.StatusNotFound, "No goal set")
		return
	}

	s.jsonResponse(w, http.StatusOK, goal)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "target_role is required")
		return
	}

	goal := &types.UserGoal{
		UserID:      userID.String(),
		TargetRole:  req.TargetRole,
		Domain:      req.Domain,
		CurrentRole: req.CurrentRole,
		Experience:  req.Experience,
		ResumeText:  req.ResumeText,
	}
	if err := s.db.UpsertUserGoal(r.Context(), goal); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, goal)
}

func (s *Server) handleGetCareerAdvice(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	advice, err := s.db.GetCareerAdvice(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if advice == nil {
		s.errorResponse(w, http.StatusNotFound, "No career advice yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, advice)
}

func (s *Server) handleGetSkillValidation(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	v, err := s.db.GetSkillValidation(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if v == nil {
		s.errorResponse(w, http.StatusNotFound, "No skill validation yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, v)
}

func (s *Server) handleListLearningJourneys(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	journeys, err := s.db.ListLearningJourneys(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, journeys)
}

func (s *Server) handleUpdateLearningSteps(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	journeyID, err := uuid.Parse(r.PathValue("journey_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid journey ID")
		return
	}

	var req UpdateStepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "steps must be a non-empty list of titled entries")
		return
	}

	j, err := s.db.GetLearningJourney(r.Context(), userID, journeyID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if j == nil {
		s.errorResponse(w, http.StatusNotFound, "Learning journey not found")
		return
	}

	// Toggle by title; unknown titles are ignored rather than appended so
	// the plan's step list stays stable.
	done := make(map[string]bool, len(req.Steps))
	for _, t := range req.Steps {
		done[t.Title] = t.Done
	}
	for i := range j.Steps {
		if v, ok := done[j.Steps[i].Title]; ok {
			j.Steps[i].Done = v
		}
	}
	j.RecalcProgress()

	if err := s.db.UpdateLearningJourneySteps(r.Context(), j); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, j)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	projects, err := s.db.ListProjects(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, projects)
}

func (s *Server) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	projectID, err := uuid.Parse(r.PathValue("project_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req UpdateProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "status must be one of planned, in_progress, completed")
		return
	}

	if err := s.db.UpdateProjectStatus(r.Context(), userID, projectID, req.Status); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": projectID.String(), "status": req.Status})
}

func (s *Server) handleGetProjectPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	plan, err := s.db.GetProjectPlan(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if plan == nil {
		s.errorResponse(w, http.StatusNotFound, "No project plan yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, plan)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	resumes, err := s.db.ListResumeVersions(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	jobs, err := s.db.ListJobRecommendations(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

func (s *Server) handleSetJobSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req SetJobSavedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.db.SetJobSaved(r.Context(), userID, jobID, req.Saved); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"id": jobID.String(), "saved": req.Saved})
}

func (s *Server) handleListInterviewPreps(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	preps, err := s.db.ListInterviewPreps(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, preps)
}

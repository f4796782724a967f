package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/generate"
	"github.com/jonathan/career-coach/internal/orchestrator"
	"github.com/jonathan/career-coach/internal/types"
)

// memDB is an in-memory Database for handler tests. Saves flip the same
// flags the real transactional store does.
type memDB struct {
	flags      types.JourneyFlags
	term       types.TermAchievement
	goal       *types.UserGoal
	advice     *types.CareerAdvice
	validation *types.SkillValidation
	journeys   []types.LearningJourney
	projects   []types.ProjectIdea
	plan       *types.ProjectPlan
	resumes    []types.ResumeVersion
	jobs       []types.JobRecommendation
	preps      []types.InterviewPreparation
}

func (m *memDB) GetJourneyState(ctx context.Context, userID uuid.UUID) (types.JourneyFlags, error) {
	return m.flags, nil
}

func (m *memDB) GetTermAchievement(ctx context.Context, userID uuid.UUID) (types.TermAchievement, error) {
	return m.term, nil
}

func (m *memDB) GetUserGoal(ctx context.Context, userID uuid.UUID) (*types.UserGoal, error) {
	return m.goal, nil
}

func (m *memDB) GetCareerAdvice(ctx context.Context, userID uuid.UUID) (*types.CareerAdvice, error) {
	return m.advice, nil
}

func (m *memDB) GetSkillValidation(ctx context.Context, userID uuid.UUID) (*types.SkillValidation, error) {
	return m.validation, nil
}

func (m *memDB) ListLearningJourneys(ctx context.Context, userID uuid.UUID) ([]types.LearningJourney, error) {
	return m.journeys, nil
}

func (m *memDB) ListProjects(ctx context.Context, userID uuid.UUID) ([]types.ProjectIdea, error) {
	return m.projects, nil
}

func (m *memDB) GetProjectPlan(ctx context.Context, userID uuid.UUID) (*types.ProjectPlan, error) {
	return m.plan, nil
}

func (m *memDB) ListResumeVersions(ctx context.Context, userID uuid.UUID) ([]types.ResumeVersion, error) {
	return m.resumes, nil
}

func (m *memDB) ListJobRecommendations(ctx context.Context, userID uuid.UUID) ([]types.JobRecommendation, error) {
	return m.jobs, nil
}

func (m *memDB) ListInterviewPreps(ctx context.Context, userID uuid.UUID) ([]types.InterviewPreparation, error) {
	return m.preps, nil
}

func (m *memDB) SaveCareerAnalysis(ctx context.Context, userID uuid.UUID, advice *types.CareerAdvice) error {
	m.advice = advice
	m.flags.CareerAnalysisCompleted = true
	return nil
}

func (m *memDB) SaveSkillValidation(ctx context.Context, userID uuid.UUID, v *types.SkillValidation) error {
	m.validation = v
	m.flags.SkillValidationCompleted = true
	return nil
}

func (m *memDB) SaveLearningPlan(ctx context.Context, userID uuid.UUID, j *types.LearningJourney) error {
	m.journeys = append(m.journeys, *j)
	m.flags.LearningPlanCompleted = true
	return nil
}

func (m *memDB) SaveProjectIdeas(ctx context.Context, userID uuid.UUID, ideas []types.ProjectIdea) error {
	m.projects = ideas
	m.flags.ProjectGuidanceCompleted = true
	return nil
}

func (m *memDB) SaveProjectPlan(ctx context.Context, userID uuid.UUID, plan *types.ProjectPlan) error {
	m.plan = plan
	m.flags.ProjectPlanCompleted = true
	return nil
}

func (m *memDB) SaveBuildReview(ctx context.Context, userID uuid.UUID, review string) error {
	if m.plan != nil {
		m.plan.Review = review
	}
	m.flags.ProjectBuildCompleted = true
	return nil
}

func (m *memDB) SaveResumeUpgrade(ctx context.Context, userID uuid.UUID, v *types.ResumeVersion) error {
	m.resumes = append(m.resumes, *v)
	m.flags.ResumeCompleted = true
	return nil
}

func (m *memDB) SaveJobMatches(ctx context.Context, userID uuid.UUID, jobs []types.JobRecommendation) error {
	m.jobs = jobs
	m.flags.JobMatchingCompleted = true
	return nil
}

func (m *memDB) SaveInterviewPrep(ctx context.Context, userID uuid.UUID, prep *types.InterviewPreparation) error {
	m.preps = append(m.preps, *prep)
	m.flags.InterviewCompleted = true
	return nil
}

func (m *memDB) GetLearningJourney(ctx context.Context, userID, journeyID uuid.UUID) (*types.LearningJourney, error) {
	for i := range m.journeys {
		if m.journeys[i].ID == journeyID.String() {
			j := m.journeys[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (m *memDB) UpdateLearningJourneySteps(ctx context.Context, j *types.LearningJourney) error {
	for i := range m.journeys {
		if m.journeys[i].ID == j.ID {
			m.journeys[i] = *j
			return nil
		}
	}
	return fmt.Errorf("learning journey not found: %s", j.ID)
}

func (m *memDB) UpdateProjectStatus(ctx context.Context, userID, projectID uuid.UUID, status string) error {
	for i := range m.projects {
		if m.projects[i].ID == projectID.String() {
			m.projects[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("project not found: %s", projectID)
}

func (m *memDB) SetJobSaved(ctx context.Context, userID, jobID uuid.UUID, saved bool) error {
	for i := range m.jobs {
		if m.jobs[i].ID == jobID.String() {
			m.jobs[i].Saved = saved
			return nil
		}
	}
	return fmt.Errorf("job not found: %s", jobID)
}

func (m *memDB) SetTermAchieved(ctx context.Context, userID uuid.UUID, key types.StageKey) error {
	switch key {
	case types.StageShortTerm:
		m.term.ShortTerm = true
	case types.StageMidTerm:
		m.term.MidTerm = true
	case types.StageLongTerm:
		m.term.LongTerm = true
	}
	return nil
}

func (m *memDB) UpsertUserGoal(ctx context.Context, goal *types.UserGoal) error {
	m.goal = goal
	return nil
}

// stubGenerator returns minimal valid artifacts for every action.
type stubGenerator struct{}

func (stubGenerator) CareerAnalysis(ctx context.Context, in generate.CareerAnalysisInput) (*types.CareerAdvice, error) {
	return &types.CareerAdvice{Roles: types.TermRoles{Short: []types.Role{{Title: in.TargetRole}}}}, nil
}

func (stubGenerator) SkillValidation(ctx context.Context, in generate.SkillValidationInput) (*types.SkillValidation, error) {
	return &types.SkillValidation{TargetRole: in.TargetRole, ReadinessScore: 50}, nil
}

func (stubGenerator) LearningPlan(ctx context.Context, in generate.LearningPlanInput) (*types.LearningJourney, error) {
	return &types.LearningJourney{Skill: in.Skill, Steps: []types.LearningStep{{Title: "Basics"}}}, nil
}

func (stubGenerator) ProjectIdeas(ctx context.Context, in generate.ProjectIdeasInput) ([]types.ProjectIdea, error) {
	return []types.ProjectIdea{{Title: "Demo project", Status: "planned"}}, nil
}

func (stubGenerator) ProjectPlan(ctx context.Context, in generate.ProjectPlanInput) (*types.ProjectPlan, error) {
	return &types.ProjectPlan{ProjectTitle: in.ProjectTitle}, nil
}

func (stubGenerator) BuildReview(ctx context.Context, in generate.BuildReviewInput) (string, error) {
	return "review", nil
}

func (stubGenerator) ResumeUpgrade(ctx context.Context, in generate.ResumeUpgradeInput) (string, error) {
	return "resume", nil
}

func (stubGenerator) JobMatching(ctx context.Context, in generate.JobMatchingInput) ([]types.JobRecommendation, error) {
	return []types.JobRecommendation{{Title: in.TargetRole, Company: "Acme"}}, nil
}

func (stubGenerator) InterviewPrep(ctx context.Context, in generate.InterviewPrepInput) (*types.InterviewPreparation, error) {
	return &types.InterviewPreparation{Questions: []types.InterviewQuestion{{Question: "Tell me about yourself"}}}, nil
}

func newTestServer(t *testing.T, database *memDB) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	svc := orchestrator.New(database, stubGenerator{}, time.Second)
	return newServer(database, svc, 0)
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &memDB{})

	w := doRequest(s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetJourney(t *testing.T) {
	userID := uuid.New()

	t.Run("fresh user gets three locked-or-active stages", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodGet, "/users/"+userID.String()+"/journey", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var state types.JourneyState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		require.Len(t, state.Stages, 3)
		assert.Equal(t, types.StatusActive, state.Stages[0].Status)
		assert.Equal(t, types.StatusLocked, state.Stages[1].Status)
		assert.Equal(t, 0, state.OverallProgress)
	})

	t.Run("invalid user id", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodGet, "/users/not-a-uuid/journey", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunActionEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("runs career analysis and flips the flag", func(t *testing.T) {
		database := &memDB{goal: &types.UserGoal{TargetRole: "Backend Engineer"}}
		s := newTestServer(t, database)

		w := doRequest(s, http.MethodPost, "/users/"+userID.String()+"/actions/career_analysis", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result orchestrator.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, generate.ActionSkillValidation, result.NextStep)
		assert.True(t, database.flags.CareerAnalysisCompleted)
	})

	t.Run("missing precursor maps to conflict", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodPost, "/users/"+userID.String()+"/actions/skill_validation", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown action maps to not found", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodPost, "/users/"+userID.String()+"/actions/resume_polish", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed project id is rejected before dispatch", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodPost, "/users/"+userID.String()+"/actions/project_plan",
			map[string]string{"project_id": "not-a-uuid"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTermAchievedEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("completes the stage", func(t *testing.T) {
		database := &memDB{}
		s := newTestServer(t, database)

		w := doRequest(s, http.MethodPost, "/users/"+userID.String()+"/journey/term-achieved",
			map[string]string{"term": "short_term"})
		require.Equal(t, http.StatusOK, w.Code)

		var state types.JourneyState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, types.StatusCompleted, state.Stages[0].Status)
		assert.Equal(t, types.StatusActive, state.Stages[1].Status)
	})

	t.Run("rejects unknown terms", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodPost, "/users/"+userID.String()+"/journey/term-achieved",
			map[string]string{"term": "someday"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGoalEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("set then get", func(t *testing.T) {
		database := &memDB{}
		s := newTestServer(t, database)

		w := doRequest(s, http.MethodPut, "/users/"+userID.String()+"/goal",
			map[string]string{"target_role": "Backend Engineer", "domain": "fintech"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(s, http.MethodGet, "/users/"+userID.String()+"/goal", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Backend Engineer")
	})

	t.Run("target role is required", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodPut, "/users/"+userID.String()+"/goal",
			map[string]string{"domain": "fintech"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing goal is not found", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodGet, "/users/"+userID.String()+"/goal", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateLearningSteps(t *testing.T) {
	userID := uuid.New()
	journeyID := uuid.New()

	database := &memDB{journeys: []types.LearningJourney{{
		ID:     journeyID.String(),
		UserID: userID.String(),
		Skill:  "Go",
		Status: types.LearningStatusNotStarted,
		Steps:  []types.LearningStep{{Title: "Basics"}, {Title: "Concurrency"}},
	}}}
	s := newTestServer(t, database)

	w := doRequest(s, http.MethodPut,
		"/users/"+userID.String()+"/learning-journeys/"+journeyID.String()+"/steps",
		map[string]any{"steps": []map[string]any{{"title": "Basics", "done": true}}})
	require.Equal(t, http.StatusOK, w.Code)

	var j types.LearningJourney
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &j))
	assert.True(t, j.Steps[0].Done)
	assert.False(t, j.Steps[1].Done)
	assert.InDelta(t, 50, j.Progress, 0.01)
	assert.Equal(t, types.LearningStatusInProgress, j.Status)
}

func TestSetJobSaved(t *testing.T) {
	userID := uuid.New()
	jobID := uuid.New()

	database := &memDB{jobs: []types.JobRecommendation{{ID: jobID.String(), Title: "Backend Engineer"}}}
	s := newTestServer(t, database)

	w := doRequest(s, http.MethodPut,
		"/users/"+userID.String()+"/jobs/"+jobID.String()+"/saved",
		map[string]bool{"saved": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, database.jobs[0].Saved)
}

func TestDomainReads(t *testing.T) {
	userID := uuid.New()

	t.Run("career advice not found before analysis", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		w := doRequest(s, http.MethodGet, "/users/"+userID.String()+"/career-advice", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists are empty not missing", func(t *testing.T) {
		s := newTestServer(t, &memDB{})

		for _, path := range []string{"learning-journeys", "projects", "resumes", "jobs", "interview-preps"} {
			w := doRequest(s, http.MethodGet, "/users/"+userID.String()+"/"+path, nil)
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}

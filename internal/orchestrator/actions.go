package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/generate"
	"github.com/jonathan/career-coach/internal/journey"
	"github.com/jonathan/career-coach/internal/types"
)

// ActionParams carries the optional per-action parameters of a run request.
type ActionParams struct {
	Skill     string    `json:"skill,omitempty"`
	ProjectID uuid.UUID `json:"project_id,omitempty"`
	JobID     uuid.UUID `json:"job_id,omitempty"`
}

// Run dispatches one named action. Unknown names fail without touching
// state.
func (s *Service) Run(ctx context.Context, userID uuid.UUID, action string, p ActionParams) (*Result, error) {
	switch generate.Action(action) {
	case generate.ActionCareerAnalysis:
		return s.RunCareerAnalysis(ctx, userID)
	case generate.ActionSkillValidation:
		return s.RunSkillValidation(ctx, userID)
	case generate.ActionLearningPlan:
		return s.RunLearningPlan(ctx, userID, p.Skill)
	case generate.ActionProjectIdeas:
		return s.RunProjectIdeas(ctx, userID)
	case generate.ActionProjectPlan:
		return s.RunProjectPlan(ctx, userID, p.ProjectID)
	case generate.ActionProjectBuild:
		return s.RunProjectBuild(ctx, userID)
	case generate.ActionResumeUpgrade:
		return s.RunResumeUpgrade(ctx, userID)
	case generate.ActionJobMatching:
		return s.RunJobMatching(ctx, userID)
	case generate.ActionInterviewPrep:
		return s.RunInterviewPrep(ctx, userID, p.JobID)
	default:
		return nil, &UnknownActionError{Action: action}
	}
}

func isShapeError(err error) bool {
	var shape *generate.InvalidResponseShapeError
	return errors.As(err, &shape)
}

// RunCareerAnalysis recommends target roles per horizon from the user's
// stated goal and resume.
func (s *Service) RunCareerAnalysis(ctx context.Context, userID uuid.UUID) (*Result, error) {
	const action = generate.ActionCareerAnalysis
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap.Goal == nil {
		return nil, &PrecursorMissingError{Action: action, Required: "a stated career goal"}
	}

	in := generate.CareerAnalysisInput{
		Resume:      resumeText(snap),
		CurrentRole: snap.Goal.CurrentRole,
		TargetRole:  snap.Goal.TargetRole,
		Domain:      snap.Goal.Domain,
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	advice, err := s.gen.CareerAnalysis(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		advice = generate.FallbackCareerAdvice(in)
		fallback = true
	}
	advice.UserID = userID.String()

	if err := s.store.SaveCareerAnalysis(ctx, userID, advice); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, advice, fallback), nil
}

// RunSkillValidation assesses readiness for the target role.
func (s *Service) RunSkillValidation(ctx context.Context, userID uuid.UUID) (*Result, error) {
	const action = generate.ActionSkillValidation
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !snap.Flags.CareerAnalysisCompleted {
		return nil, &PrecursorMissingError{Action: action, Required: "completed career analysis"}
	}

	in := generate.SkillValidationInput{
		Resume:     resumeText(snap),
		TargetRole: targetRole(snap),
		Domain:     goalDomain(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	v, err := s.gen.SkillValidation(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		v = generate.FallbackSkillValidation(in)
		fallback = true
	}
	v.UserID = userID.String()

	if err := s.store.SaveSkillValidation(ctx, userID, v); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, v, fallback), nil
}

// RunLearningPlan builds a step-by-step learning journey for one skill.
func (s *Service) RunLearningPlan(ctx context.Context, userID uuid.UUID, skill string) (*Result, error) {
	const action = generate.ActionLearningPlan
	if skill == "" {
		return nil, &InvalidArgumentError{Action: action, Field: "skill"}
	}
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !snap.Flags.SkillValidationCompleted {
		return nil, &PrecursorMissingError{Action: action, Required: "completed skill validation"}
	}

	in := generate.LearningPlanInput{
		Skill:      skill,
		TargetRole: targetRole(snap),
		Resume:     resumeText(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	j, err := s.gen.LearningPlan(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		j = generate.FallbackLearningJourney(in)
		fallback = true
	}
	j.UserID = userID.String()

	if err := s.store.SaveLearningPlan(ctx, userID, j); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, j, fallback), nil
}

// RunProjectIdeas suggests portfolio projects matched to the skill gaps.
func (s *Service) RunProjectIdeas(ctx context.Context, userID uuid.UUID) (*Result, error) {
	const action = generate.ActionProjectIdeas
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !snap.Flags.LearningPlanCompleted {
		return nil, &PrecursorMissingError{Action: action, Required: "a completed learning plan"}
	}

	in := generate.ProjectIdeasInput{
		TargetRole: targetRole(snap),
		Domain:     goalDomain(snap),
		Skills:     collectSkills(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ideas, err := s.gen.ProjectIdeas(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		ideas = generate.FallbackProjectIdeas(in)
		fallback = true
	}
	for i := range ideas {
		ideas[i].UserID = userID.String()
	}

	if err := s.store.SaveProjectIdeas(ctx, userID, ideas); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, ideas, fallback), nil
}

// RunProjectPlan expands one selected project idea into a phased build
// plan.
func (s *Service) RunProjectPlan(ctx context.Context, userID uuid.UUID, projectID uuid.UUID) (*Result, error) {
	const action = generate.ActionProjectPlan
	if projectID == uuid.Nil {
		return nil, &InvalidArgumentError{Action: action, Field: "project_id"}
	}
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	var idea *types.ProjectIdea
	for i := range snap.Projects {
		if snap.Projects[i].ID == projectID.String() {
			idea = &snap.Projects[i]
			break
		}
	}
	if idea == nil {
		return nil, &PrecursorMissingError{Action: action, Required: "a selected project idea"}
	}

	in := generate.ProjectPlanInput{
		ProjectTitle:       idea.Title,
		ProjectDescription: idea.Description,
		TargetRole:         targetRole(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plan, err := s.gen.ProjectPlan(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		plan = generate.FallbackProjectPlan(in)
		fallback = true
	}
	plan.UserID = userID.String()
	plan.ProjectID = idea.ID
	plan.ProjectTitle = idea.Title

	if err := s.store.SaveProjectPlan(ctx, userID, plan); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, plan, fallback), nil
}

// RunProjectBuild reviews the finished build against its plan and closes
// out the project step.
func (s *Service) RunProjectBuild(ctx context.Context, userID uuid.UUID) (*Result, error) {
	const action = generate.ActionProjectBuild
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap.ProjectPlan == nil {
		return nil, &PrecursorMissingError{Action: action, Required: "a project build plan"}
	}

	phasesJSON, err := json.Marshal(snap.ProjectPlan.Phases)
	if err != nil {
		return nil, fmt.Errorf("failed to encode build phases: %w", err)
	}
	in := generate.BuildReviewInput{
		ProjectTitle: snap.ProjectPlan.ProjectTitle,
		Phases:       string(phasesJSON),
		TargetRole:   targetRole(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	review, err := s.gen.BuildReview(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		review = generate.FallbackBuildReview(in)
		fallback = true
	}

	if err := s.store.SaveBuildReview(ctx, userID, review); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, review, fallback), nil
}

// RunResumeUpgrade rewrites the resume around the validated skills and the
// finished project.
func (s *Service) RunResumeUpgrade(ctx context.Context, userID uuid.UUID) (*Result, error) {
	const action = generate.ActionResumeUpgrade
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !snap.Flags.ProjectBuildCompleted {
		return nil, &PrecursorMissingError{Action: action, Required: "a completed project build"}
	}

	in := generate.ResumeUpgradeInput{
		Resume:     resumeText(snap),
		TargetRole: targetRole(snap),
		Skills:     collectSkills(snap),
		Projects:   projectSummary(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.gen.ResumeUpgrade(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		content = generate.FallbackResumeUpgrade(in)
		fallback = true
	}
	version := &types.ResumeVersion{
		UserID:     userID.String(),
		TargetRole: targetRole(snap),
		Content:    content,
		Active:     true,
	}

	if err := s.store.SaveResumeUpgrade(ctx, userID, version); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, version, fallback), nil
}

// RunJobMatching proposes job openings scored against the upgraded resume.
func (s *Service) RunJobMatching(ctx context.Context, userID uuid.UUID) (*Result, error) {
	const action = generate.ActionJobMatching
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !snap.Flags.ResumeCompleted {
		return nil, &PrecursorMissingError{Action: action, Required: "an upgraded resume"}
	}

	in := generate.JobMatchingInput{
		Resume:     resumeText(snap),
		TargetRole: targetRole(snap),
		Domain:     goalDomain(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	jobs, err := s.gen.JobMatching(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		jobs = generate.FallbackJobMatching(in)
		fallback = true
	}
	for i := range jobs {
		jobs[i].UserID = userID.String()
	}

	if err := s.store.SaveJobMatches(ctx, userID, jobs); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, jobs, fallback), nil
}

// RunInterviewPrep prepares a question set for one matched job.
func (s *Service) RunInterviewPrep(ctx context.Context, userID uuid.UUID, jobID uuid.UUID) (*Result, error) {
	const action = generate.ActionInterviewPrep
	if jobID == uuid.Nil {
		return nil, &InvalidArgumentError{Action: action, Field: "job_id"}
	}
	if err := s.acquire(userID, action); err != nil {
		return nil, err
	}
	defer s.release(userID, action)

	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !snap.Flags.JobMatchingCompleted {
		return nil, &PrecursorMissingError{Action: action, Required: "completed job matching"}
	}

	var job *types.JobRecommendation
	for i := range snap.Jobs {
		if snap.Jobs[i].ID == jobID.String() {
			job = &snap.Jobs[i]
			break
		}
	}
	if job == nil {
		return nil, &PrecursorMissingError{Action: action, Required: "a matched job"}
	}

	in := generate.InterviewPrepInput{
		Resume:     resumeText(snap),
		JobTitle:   job.Title,
		Company:    job.Company,
		TargetRole: targetRole(snap),
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prep, err := s.gen.InterviewPrep(gctx, in)
	fallback := false
	if err != nil {
		if !isShapeError(err) {
			return nil, &GenerationFailedError{Action: action, Err: err}
		}
		prep = generate.FallbackInterviewPrep(in)
		fallback = true
	}
	prep.UserID = userID.String()
	prep.JobTitle = job.Title
	prep.Company = job.Company

	if err := s.store.SaveInterviewPrep(ctx, userID, prep); err != nil {
		return nil, &PersistenceFailedError{Action: action, Err: err}
	}
	return success(action, prep, fallback), nil
}

// collectSkills gathers the skills known for the user: validated matches,
// identified gaps, and skills already under study.
func collectSkills(snap journey.Snapshot) []string {
	seen := make(map[string]bool)
	var skills []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			skills = append(skills, s)
		}
	}
	if snap.SkillValidation != nil {
		for _, s := range snap.SkillValidation.MatchedSkills {
			add(s)
		}
		for _, m := range snap.SkillValidation.MissingSkills {
			add(m.Skill)
		}
	}
	for _, j := range snap.LearningJourneys {
		add(j.Skill)
	}
	return skills
}

// projectSummary describes the user's project work for resume context.
func projectSummary(snap journey.Snapshot) string {
	if snap.ProjectPlan == nil {
		return ""
	}
	summary := snap.ProjectPlan.ProjectTitle
	if snap.ProjectPlan.Review != "" {
		summary += ": " + snap.ProjectPlan.Review
	}
	return summary
}

package generate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
)

// Generator produces typed domain artifacts, one variant per orchestrator
// action. Implementations must return InvalidResponseShapeError (not partial
// data) when output fails validation, so callers can substitute fallbacks.
type Generator interface {
	CareerAnalysis(ctx context.Context, in CareerAnalysisInput) (*types.CareerAdvice, error)
	SkillValidation(ctx context.Context, in SkillValidationInput) (*types.SkillValidation, error)
	LearningPlan(ctx context.Context, in LearningPlanInput) (*types.LearningJourney, error)
	ProjectIdeas(ctx context.Context, in ProjectIdeasInput) ([]types.ProjectIdea, error)
	ProjectPlan(ctx context.Context, in ProjectPlanInput) (*types.ProjectPlan, error)
	BuildReview(ctx context.Context, in BuildReviewInput) (string, error)
	ResumeUpgrade(ctx context.Context, in ResumeUpgradeInput) (string, error)
	JobMatching(ctx context.Context, in JobMatchingInput) ([]types.JobRecommendation, error)
	InterviewPrep(ctx context.Context, in InterviewPrepInput) (*types.InterviewPreparation, error)
}

// LLMGenerator implements Generator on top of an llm.Client.
type LLMGenerator struct {
	client llm.Client
}

// NewLLMGenerator creates a Generator backed by the given LLM client.
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// generateValidated runs one prompt, classifies transport failures, and
// validates the raw response against the action's schema.
func (g *LLMGenerator) generateValidated(ctx context.Context, action Action, file, key string, data map[string]string, tier llm.ModelTier) (string, error) {
	template, err := prompts.Get(file, key)
	if err != nil {
		return "", err
	}
	raw, err := g.client.GenerateJSON(ctx, prompts.Format(template, data), tier)
	if err != nil {
		return "", classifyTransportError(action, err)
	}
	if err := validateShape(action, raw); err != nil {
		return "", err
	}
	return raw, nil
}

// CareerAnalysis recommends target roles per career horizon.
func (g *LLMGenerator) CareerAnalysis(ctx context.Context, in CareerAnalysisInput) (*types.CareerAdvice, error) {
	raw, err := g.generateValidated(ctx, ActionCareerAnalysis, "career.json", "analyze", map[string]string{
		"Resume":      in.Resume,
		"CurrentRole": in.CurrentRole,
		"TargetRole":  in.TargetRole,
		"Domain":      in.Domain,
	}, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Roles        types.TermRoles `json:"roles"`
		Summary      string          `json:"summary"`
		CurrentLevel string          `json:"current_level"`
	}
	if err := unmarshalResponse(ActionCareerAnalysis, raw, &parsed); err != nil {
		return nil, err
	}
	return &types.CareerAdvice{
		Roles:        parsed.Roles,
		Summary:      parsed.Summary,
		CurrentLevel: parsed.CurrentLevel,
		ResumeText:   in.Resume,
	}, nil
}

// SkillValidation scores readiness for a target role.
func (g *LLMGenerator) SkillValidation(ctx context.Context, in SkillValidationInput) (*types.SkillValidation, error) {
	raw, err := g.generateValidated(ctx, ActionSkillValidation, "skills.json", "validate", map[string]string{
		"Resume":     in.Resume,
		"TargetRole": in.TargetRole,
		"Domain":     in.Domain,
	}, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ReadinessScore float64              `json:"readiness_score"`
		MatchedSkills  []string             `json:"matched_skills"`
		MissingSkills  []types.MissingSkill `json:"missing_skills"`
		Summary        string               `json:"summary"`
	}
	if err := unmarshalResponse(ActionSkillValidation, raw, &parsed); err != nil {
		return nil, err
	}
	return &types.SkillValidation{
		TargetRole:     in.TargetRole,
		ReadinessScore: parsed.ReadinessScore,
		MatchedSkills:  parsed.MatchedSkills,
		MissingSkills:  parsed.MissingSkills,
		Summary:        parsed.Summary,
	}, nil
}

// LearningPlan designs the sub-steps for one skill's journey.
func (g *LLMGenerator) LearningPlan(ctx context.Context, in LearningPlanInput) (*types.LearningJourney, error) {
	raw, err := g.generateValidated(ctx, ActionLearningPlan, "learning.json", "plan", map[string]string{
		"Skill":      in.Skill,
		"TargetRole": in.TargetRole,
		"Resume":     in.Resume,
	}, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Steps []types.LearningStep `json:"steps"`
	}
	if err := unmarshalResponse(ActionLearningPlan, raw, &parsed); err != nil {
		return nil, err
	}
	return &types.LearningJourney{
		Skill:  in.Skill,
		Status: types.LearningStatusNotStarted,
		Steps:  parsed.Steps,
	}, nil
}

// ProjectIdeas suggests portfolio projects for the learned skills.
func (g *LLMGenerator) ProjectIdeas(ctx context.Context, in ProjectIdeasInput) ([]types.ProjectIdea, error) {
	raw, err := g.generateValidated(ctx, ActionProjectIdeas, "projects.json", "ideas", map[string]string{
		"TargetRole": in.TargetRole,
		"Domain":     in.Domain,
		"Skills":     strings.Join(in.Skills, ", "),
	}, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Projects []types.ProjectIdea `json:"projects"`
	}
	if err := unmarshalResponse(ActionProjectIdeas, raw, &parsed); err != nil {
		return nil, err
	}
	for i := range parsed.Projects {
		parsed.Projects[i].Status = "planned"
	}
	return parsed.Projects, nil
}

// ProjectPlan breaks a selected project into phased build tasks.
func (g *LLMGenerator) ProjectPlan(ctx context.Context, in ProjectPlanInput) (*types.ProjectPlan, error) {
	raw, err := g.generateValidated(ctx, ActionProjectPlan, "projects.json", "plan", map[string]string{
		"ProjectTitle":       in.ProjectTitle,
		"ProjectDescription": in.ProjectDescription,
		"TargetRole":         in.TargetRole,
	}, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Phases []types.BuildPhase `json:"phases"`
	}
	if err := unmarshalResponse(ActionProjectPlan, raw, &parsed); err != nil {
		return nil, err
	}
	return &types.ProjectPlan{
		ProjectTitle: in.ProjectTitle,
		Phases:       parsed.Phases,
	}, nil
}

// BuildReview writes a short review of a finished project build.
func (g *LLMGenerator) BuildReview(ctx context.Context, in BuildReviewInput) (string, error) {
	raw, err := g.generateValidated(ctx, ActionProjectBuild, "projects.json", "review", map[string]string{
		"ProjectTitle": in.ProjectTitle,
		"Phases":       in.Phases,
		"TargetRole":   in.TargetRole,
	}, llm.TierLite)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Review string `json:"review"`
	}
	if err := unmarshalResponse(ActionProjectBuild, raw, &parsed); err != nil {
		return "", err
	}
	return parsed.Review, nil
}

// ResumeUpgrade rewrites the resume for the target role.
func (g *LLMGenerator) ResumeUpgrade(ctx context.Context, in ResumeUpgradeInput) (string, error) {
	raw, err := g.generateValidated(ctx, ActionResumeUpgrade, "resume.json", "upgrade", map[string]string{
		"Resume":     in.Resume,
		"TargetRole": in.TargetRole,
		"Skills":     strings.Join(in.Skills, ", "),
		"Projects":   in.Projects,
	}, llm.TierAdvanced)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Content string `json:"content"`
	}
	if err := unmarshalResponse(ActionResumeUpgrade, raw, &parsed); err != nil {
		return "", err
	}
	return parsed.Content, nil
}

// JobMatching proposes openings the candidate is competitive for.
func (g *LLMGenerator) JobMatching(ctx context.Context, in JobMatchingInput) ([]types.JobRecommendation, error) {
	raw, err := g.generateValidated(ctx, ActionJobMatching, "jobs.json", "match", map[string]string{
		"Resume":     in.Resume,
		"TargetRole": in.TargetRole,
		"Domain":     in.Domain,
	}, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Jobs []types.JobRecommendation `json:"jobs"`
	}
	if err := unmarshalResponse(ActionJobMatching, raw, &parsed); err != nil {
		return nil, err
	}
	return parsed.Jobs, nil
}

// InterviewPrep builds a question set for one saved job.
func (g *LLMGenerator) InterviewPrep(ctx context.Context, in InterviewPrepInput) (*types.InterviewPreparation, error) {
	raw, err := g.generateValidated(ctx, ActionInterviewPrep, "interview.json", "prep", map[string]string{
		"Resume":     in.Resume,
		"JobTitle":   in.JobTitle,
		"Company":    in.Company,
		"TargetRole": in.TargetRole,
	}, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions      []types.InterviewQuestion `json:"questions"`
		ReadinessScore float64                   `json:"readiness_score"`
	}
	if err := unmarshalResponse(ActionInterviewPrep, raw, &parsed); err != nil {
		return nil, err
	}
	return &types.InterviewPreparation{
		JobTitle:       in.JobTitle,
		Company:        in.Company,
		Questions:      parsed.Questions,
		ReadinessScore: parsed.ReadinessScore,
	}, nil
}

// unmarshalResponse decodes a schema-validated response. A decode failure
// after validation still maps to InvalidResponseShapeError: the shape said
// one thing and the bytes said another.
func unmarshalResponse(action Action, raw string, dst any) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &InvalidResponseShapeError{Action: action, Reason: err.Error()}
	}
	return nil
}

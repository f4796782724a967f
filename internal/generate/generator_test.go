package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/career-coach/internal/llm"
)

// fakeClient returns a canned response (or error) for every call.
type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestSkillValidationParsesResponse(t *testing.T) {
	client := &fakeClient{response: `{
		"readiness_score": 72,
		"matched_skills": ["go", "sql"],
		"missing_skills": [{"skill": "kubernetes", "category": "devops", "priority": "high", "learning_time": "1-3 months"}],
		"summary": "Solid backend base."
	}`}
	g := NewLLMGenerator(client)

	v, err := g.SkillValidation(context.Background(), SkillValidationInput{
		Resume:     "ten years of Go",
		TargetRole: "Platform Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(72), v.ReadinessScore)
	assert.Equal(t, []string{"go", "sql"}, v.MatchedSkills)
	require.Len(t, v.MissingSkills, 1)
	assert.Equal(t, "kubernetes", v.MissingSkills[0].Skill)
	assert.Equal(t, "Platform Engineer", v.TargetRole)

	// The prompt the client saw carries the interpolated context.
	assert.Contains(t, client.prompt, "ten years of Go")
	assert.Contains(t, client.prompt, "Platform Engineer")
}

func TestInvalidShapeSurfacesTypedError(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"not json", "here are the roles you asked for"},
		{"wrong structure", `{"totally": "unrelated"}`},
		{"missing required field", `{"matched_skills": [], "missing_skills": []}`},
		{"score out of range", `{"readiness_score": 900, "matched_skills": [], "missing_skills": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewLLMGenerator(&fakeClient{response: tc.response})
			_, err := g.SkillValidation(context.Background(), SkillValidationInput{TargetRole: "x"})
			var shapeErr *InvalidResponseShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, ActionSkillValidation, shapeErr.Action)
		})
	}
}

func TestTransportErrorClassification(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		g := NewLLMGenerator(&fakeClient{err: &googleapi.Error{Code: 429, Message: "resource exhausted"}})
		_, err := g.LearningPlan(context.Background(), LearningPlanInput{Skill: "go"})
		var rateErr *RateLimitedError
		assert.ErrorAs(t, err, &rateErr)
	})

	t.Run("quota exhausted", func(t *testing.T) {
		g := NewLLMGenerator(&fakeClient{err: &googleapi.Error{Code: 429, Message: "Quota exceeded for requests"}})
		_, err := g.LearningPlan(context.Background(), LearningPlanInput{Skill: "go"})
		var quotaErr *QuotaExhaustedError
		assert.ErrorAs(t, err, &quotaErr)
	})

	t.Run("other errors pass through wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		g := NewLLMGenerator(&fakeClient{err: cause})
		_, err := g.LearningPlan(context.Background(), LearningPlanInput{Skill: "go"})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})
}

func TestCareerAnalysisParsesRoles(t *testing.T) {
	g := NewLLMGenerator(&fakeClient{response: `{
		"roles": {
			"short": [{"title": "Backend Engineer", "domain": "saas", "salary_range": "$120k-$150k", "match_score": 0.8}],
			"mid": [{"title": "Senior Backend Engineer", "domain": "saas", "match_score": 0.6}],
			"long": [{"title": "Staff Engineer", "domain": "saas", "match_score": 0.4}]
		},
		"summary": "Strong trajectory.",
		"current_level": "mid"
	}`})

	advice, err := g.CareerAnalysis(context.Background(), CareerAnalysisInput{Resume: "resume text"})
	require.NoError(t, err)
	require.Len(t, advice.Roles.Short, 1)
	assert.Equal(t, "Backend Engineer", advice.Roles.Short[0].Title)
	assert.Equal(t, "mid", advice.CurrentLevel)
	assert.Equal(t, "resume text", advice.ResumeText)
}

func TestLearningPlanParsesSteps(t *testing.T) {
	g := NewLLMGenerator(&fakeClient{response: `{"steps": [{"title": "Read the docs"}, {"title": "Build a demo"}]}`})

	j, err := g.LearningPlan(context.Background(), LearningPlanInput{Skill: "kubernetes"})
	require.NoError(t, err)
	assert.Equal(t, "kubernetes", j.Skill)
	require.Len(t, j.Steps, 2)
	assert.False(t, j.Steps[0].Done)

	t.Run("empty steps rejected by schema", func(t *testing.T) {
		g := NewLLMGenerator(&fakeClient{response: `{"steps": []}`})
		_, err := g.LearningPlan(context.Background(), LearningPlanInput{Skill: "kubernetes"})
		var shapeErr *InvalidResponseShapeError
		assert.ErrorAs(t, err, &shapeErr)
	})
}

func TestProjectIdeasDefaultStatus(t *testing.T) {
	g := NewLLMGenerator(&fakeClient{response: `{"projects": [{"title": "Job board crawler", "domain": "data"}]}`})

	ideas, err := g.ProjectIdeas(context.Background(), ProjectIdeasInput{TargetRole: "Data Engineer"})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "planned", ideas[0].Status)
}

func TestFallbacksAreDeterministic(t *testing.T) {
	t.Run("learning fallback", func(t *testing.T) {
		a := FallbackLearningJourney(LearningPlanInput{Skill: "rust"})
		b := FallbackLearningJourney(LearningPlanInput{Skill: "rust"})
		assert.Equal(t, a, b)
		assert.NotEmpty(t, a.Steps)
	})

	t.Run("interview fallback", func(t *testing.T) {
		prep := FallbackInterviewPrep(InterviewPrepInput{JobTitle: "SRE", Company: "Acme"})
		assert.Equal(t, "SRE", prep.JobTitle)
		assert.NotEmpty(t, prep.Questions)
		assert.Equal(t, float64(0), prep.ReadinessScore)
	})

	t.Run("resume fallback keeps existing resume", func(t *testing.T) {
		assert.Equal(t, "original", FallbackResumeUpgrade(ResumeUpgradeInput{Resume: "original"}))
	})
}

package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-coach/internal/types"
)

func TestPrintJourney(t *testing.T) {
	t.Run("renders stages and steps", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf)

		p.PrintJourney(&types.JourneyState{
			CurrentStage:    types.StageShortTerm,
			OverallProgress: 15,
			Stages: []types.Stage{
				{
					Key:             types.StageShortTerm,
					Label:           "Short-Term Goals",
					Timeline:        "0-6 months",
					Status:          types.StatusActive,
					OverallProgress: 50,
					TargetRole:      &types.Role{Title: "Backend Engineer"},
					Steps: []types.Step{
						{Number: 1, Name: "Career Analysis", Status: types.StatusCompleted, Progress: 100},
						{Number: 2, Name: "Skill Validation", Status: types.StatusActive, Progress: 0},
					},
				},
				{
					Key:      types.StageMidTerm,
					Label:    "Mid-Term Goals",
					Timeline: "6-18 months",
					Status:   types.StatusLocked,
				},
			},
		})

		out := buf.String()
		assert.Contains(t, out, "CAREER JOURNEY")
		assert.Contains(t, out, "Overall progress: 15%")
		assert.Contains(t, out, "Short-Term Goals")
		assert.Contains(t, out, "Backend Engineer")
		assert.Contains(t, out, "[x] 1. Career Analysis")
		assert.Contains(t, out, "[>] 2. Skill Validation")
		assert.Contains(t, out, "[ ] Mid-Term Goals")
	})

	t.Run("nil state prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintJourney(nil)
		assert.Empty(t, buf.String())
	})
}

func TestPrintCareerAdvice(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCareerAdvice(&types.CareerAdvice{
		CurrentLevel: "mid",
		Roles: types.TermRoles{
			Short: []types.Role{{Title: "Backend Engineer", SalaryRange: "$120k-$150k"}},
			Long:  []types.Role{{Title: "Staff Engineer"}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "CAREER ADVICE")
	assert.Contains(t, out, "Short-term:")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Staff Engineer")
	assert.NotContains(t, out, "Mid-term:")
}

func TestPrintSkillValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillValidation(&types.SkillValidation{
		TargetRole:     "Backend Engineer",
		ReadinessScore: 60,
		MatchedSkills:  []string{"Go", "SQL"},
		MissingSkills: []types.MissingSkill{
			{Skill: "Kubernetes", Priority: "high"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "SKILL VALIDATION")
	assert.Contains(t, out, "Readiness:   60%")
	assert.Contains(t, out, "Kubernetes (high)")
}

func TestPrintJobMatchesTruncation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobs := make([]types.JobRecommendation, 8)
	for i := range jobs {
		jobs[i] = types.JobRecommendation{Title: "Backend Engineer", Company: "Acme", RelevanceScore: 0.8}
	}
	p.PrintJobMatches(jobs)

	assert.Contains(t, buf.String(), "... and 3 more")
}

package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/types"
)

func stepByID(t *testing.T, stage types.Stage, id string) types.Step {
	t.Helper()
	for _, s := range stage.Steps {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("step %q not found in stage %s", id, stage.Key)
	return types.Step{}
}

func TestComputeStagesFreshUser(t *testing.T) {
	state := ComputeStages(Snapshot{})

	require.Len(t, state.Stages, 3)
	assert.Equal(t, types.StageShortTerm, state.CurrentStage)
	assert.Equal(t, 0, state.OverallProgress)

	short := state.Stages[0]
	assert.Equal(t, types.StatusActive, short.Status)
	require.NotEmpty(t, short.Steps)
	assert.Equal(t, types.StatusActive, short.Steps[0].Status)
	for _, step := range short.Steps[1:] {
		assert.Equal(t, types.StatusLocked, step.Status, "step %s", step.ID)
	}

	assert.Equal(t, types.StatusLocked, state.Stages[1].Status)
	assert.Equal(t, types.StatusLocked, state.Stages[2].Status)
}

func TestComputeStagesMidJourney(t *testing.T) {
	snap := Snapshot{
		Flags: types.JourneyFlags{
			CareerAnalysisCompleted:  true,
			SkillValidationCompleted: true,
		},
		LearningJourneys: []types.LearningJourney{
			{Skill: "kubernetes", Status: types.LearningStatusInProgress, Progress: 40},
		},
	}
	state := ComputeStages(snap)

	short := state.Stages[0]
	assert.Equal(t, types.StatusCompleted, stepByID(t, short, "career_analysis").Status)
	assert.Equal(t, types.StatusCompleted, stepByID(t, short, "skill_validation").Status)

	learning := stepByID(t, short, "learning_plan")
	assert.Equal(t, types.StatusActive, learning.Status)
	assert.Equal(t, 40, learning.Progress, "progress derives from the partial journey")
	assert.Equal(t, "0/1 courses completed", learning.CompletionText)

	assert.Equal(t, types.StatusLocked, stepByID(t, short, "project_building").Status)
}

func TestComputeStagesMonotonicUnlock(t *testing.T) {
	// Once a flag is true its step is never locked again under the same or
	// additional true flags.
	flagSets := []types.JourneyFlags{
		{CareerAnalysisCompleted: true},
		{CareerAnalysisCompleted: true, SkillValidationCompleted: true},
		{CareerAnalysisCompleted: true, SkillValidationCompleted: true, LearningPlanCompleted: true},
		{
			CareerAnalysisCompleted: true, SkillValidationCompleted: true,
			LearningPlanCompleted: true, ProjectBuildCompleted: true,
			ResumeCompleted: true, JobMatchingCompleted: true, InterviewCompleted: true,
		},
	}
	for _, flags := range flagSets {
		state := ComputeStages(Snapshot{Flags: flags})
		short := state.Stages[0]
		for _, step := range short.Steps {
			if flags.Flag(flagForStep(t, step.ID)) {
				assert.NotEqual(t, types.StatusLocked, step.Status, "step %s", step.ID)
				assert.Equal(t, types.StatusCompleted, step.Status, "step %s", step.ID)
			}
		}
	}
}

// flagForStep maps a step id to its gating flag for test assertions.
func flagForStep(t *testing.T, id string) string {
	t.Helper()
	m := map[string]string{
		"career_analysis":  types.FlagCareerAnalysis,
		"skill_validation": types.FlagSkillValidation,
		"learning_plan":    types.FlagLearningPlan,
		"project_building": types.FlagProjectBuild,
		"portfolio_resume": types.FlagResume,
		"job_matching":     types.FlagJobMatching,
		"interview_prep":   types.FlagInterview,
	}
	flag, ok := m[id]
	require.True(t, ok, "unknown step id %s", id)
	return flag
}

func TestComputeStagesSingleActiveStage(t *testing.T) {
	cases := []struct {
		name string
		term types.TermAchievement
	}{
		{"nothing achieved", types.TermAchievement{}},
		{"short achieved", types.TermAchievement{ShortTerm: true}},
		{"short and mid achieved", types.TermAchievement{ShortTerm: true, MidTerm: true}},
		{"all achieved", types.TermAchievement{ShortTerm: true, MidTerm: true, LongTerm: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := ComputeStages(Snapshot{TermAchievement: tc.term})
			active := 0
			for _, stage := range state.Stages {
				if stage.Status == types.StatusActive {
					active++
				}
			}
			allAchieved := tc.term.ShortTerm && tc.term.MidTerm && tc.term.LongTerm
			if allAchieved {
				assert.Equal(t, 0, active)
				// Defensive fallback: current stage still resolves.
				assert.Equal(t, types.StageShortTerm, state.CurrentStage)
			} else {
				assert.Equal(t, 1, active)
			}
		})
	}
}

func TestComputeStagesStageUnlockChain(t *testing.T) {
	t.Run("mid locked until short term achieved", func(t *testing.T) {
		state := ComputeStages(Snapshot{})
		assert.Equal(t, types.StatusLocked, state.Stages[1].Status)

		state = ComputeStages(Snapshot{TermAchievement: types.TermAchievement{ShortTerm: true}})
		assert.Equal(t, types.StatusCompleted, state.Stages[0].Status)
		assert.Equal(t, types.StatusActive, state.Stages[1].Status)
		assert.Equal(t, types.StageMidTerm, state.CurrentStage)
		assert.Equal(t, types.StatusLocked, state.Stages[2].Status)
	})

	t.Run("full progress does not complete a stage by itself", func(t *testing.T) {
		snap := Snapshot{
			Flags: types.JourneyFlags{
				CareerAnalysisCompleted: true, SkillValidationCompleted: true,
				LearningPlanCompleted: true, ProjectBuildCompleted: true,
				ResumeCompleted: true, JobMatchingCompleted: true, InterviewCompleted: true,
			},
		}
		state := ComputeStages(snap)
		short := state.Stages[0]
		assert.Equal(t, 100, short.OverallProgress)
		// Placement has not been confirmed: the stage stays active.
		assert.Equal(t, types.StatusActive, short.Status)
	})
}

func TestComputeStagesTargetRole(t *testing.T) {
	snap := Snapshot{
		CareerAdvice: &types.CareerAdvice{
			Roles: types.TermRoles{
				Short: []types.Role{{Title: "Backend Engineer", Domain: "infrastructure", MatchScore: 0.81}},
			},
		},
	}
	state := ComputeStages(snap)
	require.NotNil(t, state.Stages[0].TargetRole)
	assert.Equal(t, "Backend Engineer", state.Stages[0].TargetRole.Title)
	assert.Nil(t, state.Stages[1].TargetRole)
}

func TestComputeStagesLockedStageShowsNoProgress(t *testing.T) {
	// The flag record is shared across stages, but a locked stage must not
	// leak progress through it.
	snap := Snapshot{
		Flags: types.JourneyFlags{CareerAnalysisCompleted: true},
	}
	state := ComputeStages(snap)
	mid := state.Stages[1]
	assert.Equal(t, types.StatusLocked, mid.Status)
	assert.Equal(t, 0, mid.OverallProgress)
	for _, step := range mid.Steps {
		assert.Equal(t, types.StatusLocked, step.Status)
		assert.Equal(t, 0, step.Progress)
	}
}

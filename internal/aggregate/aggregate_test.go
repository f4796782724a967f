package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/types"
)

type fakeStore struct {
	flags    types.JourneyFlags
	flagsErr error

	term    types.TermAchievement
	termErr error

	goal    *types.UserGoal
	goalErr error

	advice    *types.CareerAdvice
	adviceErr error

	validation    *types.SkillValidation
	validationErr error

	journeys    []types.LearningJourney
	journeysErr error

	projects    []types.ProjectIdea
	projectsErr error

	plan    *types.ProjectPlan
	planErr error

	resumes    []types.ResumeVersion
	resumesErr error

	jobs    []types.JobRecommendation
	jobsErr error

	preps    []types.InterviewPreparation
	prepsErr error
}

func (f *fakeStore) GetJourneyState(ctx context.Context, userID uuid.UUID) (types.JourneyFlags, error) {
	return f.flags, f.flagsErr
}

func (f *fakeStore) GetTermAchievement(ctx context.Context, userID uuid.UUID) (types.TermAchievement, error) {
	return f.term, f.termErr
}

func (f *fakeStore) GetUserGoal(ctx context.Context, userID uuid.UUID) (*types.UserGoal, error) {
	return f.goal, f.goalErr
}

func (f *fakeStore) GetCareerAdvice(ctx context.Context, userID uuid.UUID) (*types.CareerAdvice, error) {
	return f.advice, f.adviceErr
}

func (f *fakeStore) GetSkillValidation(ctx context.Context, userID uuid.UUID) (*types.SkillValidation, error) {
	return f.validation, f.validationErr
}

func (f *fakeStore) ListLearningJourneys(ctx context.Context, userID uuid.UUID) ([]types.LearningJourney, error) {
	return f.journeys, f.journeysErr
}

func (f *fakeStore) ListProjects(ctx context.Context, userID uuid.UUID) ([]types.ProjectIdea, error) {
	return f.projects, f.projectsErr
}

func (f *fakeStore) GetProjectPlan(ctx context.Context, userID uuid.UUID) (*types.ProjectPlan, error) {
	return f.plan, f.planErr
}

func (f *fakeStore) ListResumeVersions(ctx context.Context, userID uuid.UUID) ([]types.ResumeVersion, error) {
	return f.resumes, f.resumesErr
}

func (f *fakeStore) ListJobRecommendations(ctx context.Context, userID uuid.UUID) ([]types.JobRecommendation, error) {
	return f.jobs, f.jobsErr
}

func (f *fakeStore) ListInterviewPreps(ctx context.Context, userID uuid.UUID) ([]types.InterviewPreparation, error) {
	return f.preps, f.prepsErr
}

func TestFetchAll(t *testing.T) {
	userID := uuid.New()

	t.Run("joins all domains into one snapshot", func(t *testing.T) {
		store := &fakeStore{
			flags: types.JourneyFlags{CareerAnalysisCompleted: true},
			term:  types.TermAchievement{ShortTerm: true},
			advice: &types.CareerAdvice{
				UserID: userID.String(),
				Roles:  types.TermRoles{Short: []types.Role{{Title: "Backend Engineer"}}},
			},
			journeys: []types.LearningJourney{{UserID: userID.String(), Skill: "Go"}},
			jobs:     []types.JobRecommendation{{UserID: userID.String(), Title: "Backend Engineer"}},
		}

		snap, err := New(store).FetchAll(context.Background(), userID)
		require.NoError(t, err)

		assert.True(t, snap.Flags.CareerAnalysisCompleted)
		assert.True(t, snap.TermAchievement.ShortTerm)
		require.NotNil(t, snap.CareerAdvice)
		assert.Equal(t, "Backend Engineer", snap.CareerAdvice.Roles.Short[0].Title)
		assert.Len(t, snap.LearningJourneys, 1)
		assert.Len(t, snap.Jobs, 1)
	})

	t.Run("flags read failure aborts aggregation", func(t *testing.T) {
		store := &fakeStore{flagsErr: errors.New("connection refused")}

		_, err := New(store).FetchAll(context.Background(), userID)
		require.Error(t, err)

		var aggErr *AggregationFailedError
		require.ErrorAs(t, err, &aggErr)
		assert.Equal(t, userID, aggErr.UserID)
	})

	t.Run("domain read failures degrade to empty defaults", func(t *testing.T) {
		store := &fakeStore{
			flags:       types.JourneyFlags{SkillValidationCompleted: true},
			adviceErr:   errors.New("timeout"),
			journeysErr: errors.New("timeout"),
			jobsErr:     errors.New("timeout"),
			planErr:     errors.New("timeout"),
		}

		snap, err := New(store).FetchAll(context.Background(), userID)
		require.NoError(t, err)

		// The failed domains come back empty, the flags survive.
		assert.True(t, snap.Flags.SkillValidationCompleted)
		assert.Nil(t, snap.CareerAdvice)
		assert.Empty(t, snap.LearningJourneys)
		assert.Empty(t, snap.Jobs)
		assert.Nil(t, snap.ProjectPlan)
	})

	t.Run("fresh user aggregates to an empty snapshot", func(t *testing.T) {
		store := &fakeStore{}

		snap, err := New(store).FetchAll(context.Background(), userID)
		require.NoError(t, err)

		assert.False(t, snap.Flags.CareerAnalysisCompleted)
		assert.Nil(t, snap.Goal)
		assert.Empty(t, snap.Projects)
		assert.Empty(t, snap.Resumes)
	})
}

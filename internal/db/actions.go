package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/types"
)

// The Save methods below persist one action's artifact and flip its
// completion flag in a single transaction, so a crash between the two
// writes can never leave an artifact without its flag or vice versa.

// SaveCareerAnalysis stores career advice and marks career analysis done.
func (db *DB) SaveCareerAnalysis(ctx context.Context, userID uuid.UUID, advice *types.CareerAdvice) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertCareerAdvice(ctx, q, advice); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagCareerAnalysis)
	})
}

// SaveSkillValidation stores a readiness assessment and marks skill
// validation done.
func (db *DB) SaveSkillValidation(ctx context.Context, userID uuid.UUID, v *types.SkillValidation) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertSkillValidation(ctx, q, v); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagSkillValidation)
	})
}

// SaveLearningPlan stores one skill's learning journey and marks learning
// planning done.
func (db *DB) SaveLearningPlan(ctx context.Context, userID uuid.UUID, j *types.LearningJourney) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertLearningJourney(ctx, q, j); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagLearningPlan)
	})
}

// SaveProjectIdeas stores project suggestions and marks project guidance
// done.
func (db *DB) SaveProjectIdeas(ctx context.Context, userID uuid.UUID, ideas []types.ProjectIdea) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertProjectIdeas(ctx, q, userID, ideas); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagProjectGuidance)
	})
}

// SaveProjectPlan stores the phased build plan and marks project planning
// done.
func (db *DB) SaveProjectPlan(ctx context.Context, userID uuid.UUID, plan *types.ProjectPlan) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertProjectPlan(ctx, q, plan); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagProjectPlan)
	})
}

// SaveBuildReview stores the build review on the plan and marks the project
// build done.
func (db *DB) SaveBuildReview(ctx context.Context, userID uuid.UUID, review string) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := SetProjectPlanReview(ctx, q, userID, review); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagProjectBuild)
	})
}

// SaveResumeUpgrade stores a new resume version and marks the resume done.
func (db *DB) SaveResumeUpgrade(ctx context.Context, userID uuid.UUID, v *types.ResumeVersion) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertResumeVersion(ctx, q, v); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagResume)
	})
}

// SaveJobMatches stores job recommendations and marks job matching done.
func (db *DB) SaveJobMatches(ctx context.Context, userID uuid.UUID, jobs []types.JobRecommendation) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertJobRecommendations(ctx, q, userID, jobs); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagJobMatching)
	})
}

// SaveInterviewPrep stores an interview question set and marks interview
// preparation done.
func (db *DB) SaveInterviewPrep(ctx context.Context, userID uuid.UUID, prep *types.InterviewPreparation) error {
	return db.InTx(ctx, func(q Querier) error {
		if err := UpsertInterviewPrep(ctx, q, prep); err != nil {
			return err
		}
		return SetJourneyFlag(ctx, q, userID, types.FlagInterview)
	})
}

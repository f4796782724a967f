package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-coach/internal/types"
)

// validFlags guards SetJourneyFlag against interpolating an arbitrary
// column name into SQL.
var validFlags = map[string]bool{
	types.FlagCareerAnalysis:  true,
	types.FlagSkillValidation: true,
	types.FlagLearningPlan:    true,
	types.FlagProjectGuidance: true,
	types.FlagProjectPlan:     true,
	types.FlagProjectBuild:    true,
	types.FlagResume:          true,
	types.FlagJobMatching:     true,
	types.FlagInterview:       true,
}

// GetJourneyState returns the flag record for a user. Reads have no side
// effects: a missing row means an all-false record, and SetJourneyFlag
// creates the row when the first flag flips.
func (db *DB) GetJourneyState(ctx context.Context, userID uuid.UUID) (types.JourneyFlags, error) {
	var flags types.JourneyFlags
	err := db.pool.QueryRow(ctx,
		`SELECT career_analysis_completed, skill_validation_completed,
		        learning_plan_completed, project_guidance_completed,
		        project_plan_completed, project_build_completed,
		        resume_completed, job_matching_completed, interview_completed
		 FROM journey_state WHERE user_id = $1`,
		userID,
	).Scan(
		&flags.CareerAnalysisCompleted, &flags.SkillValidationCompleted,
		&flags.LearningPlanCompleted, &flags.ProjectGuidanceCompleted,
		&flags.ProjectPlanCompleted, &flags.ProjectBuildCompleted,
		&flags.ResumeCompleted, &flags.JobMatchingCompleted, &flags.InterviewCompleted,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.JourneyFlags{}, nil
		}
		return types.JourneyFlags{}, fmt.Errorf("failed to get journey state: %w", err)
	}
	return flags, nil
}

// SetJourneyFlag idempotently sets a completion flag to true. Flags are
// monotonic: there is no code path here to revert one.
func SetJourneyFlag(ctx context.Context, q Querier, userID uuid.UUID, flag string) error {
	if !validFlags[flag] {
		return fmt.Errorf("unknown journey flag: %s", flag)
	}
	_, err := q.Exec(ctx,
		fmt.Sprintf(`INSERT INTO journey_state (user_id, %[1]s) VALUES ($1, TRUE)
		 ON CONFLICT (user_id) DO UPDATE SET %[1]s = TRUE, updated_at = NOW()`, flag),
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set journey flag %s: %w", flag, err)
	}
	return nil
}

// GetTermAchievement returns the confirmed-placement record for a user.
// A missing row means nothing has been achieved yet.
func (db *DB) GetTermAchievement(ctx context.Context, userID uuid.UUID) (types.TermAchievement, error) {
	var t types.TermAchievement
	err := db.pool.QueryRow(ctx,
		`SELECT short_term, mid_term, long_term
		 FROM term_achievements WHERE user_id = $1`,
		userID,
	).Scan(&t.ShortTerm, &t.MidTerm, &t.LongTerm)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.TermAchievement{}, nil
		}
		return types.TermAchievement{}, fmt.Errorf("failed to get term achievement: %w", err)
	}
	return t, nil
}

// SetTermAchieved records externally confirmed job placement for a term.
func (db *DB) SetTermAchieved(ctx context.Context, userID uuid.UUID, key types.StageKey) error {
	var column string
	switch key {
	case types.StageShortTerm:
		column = "short_term"
	case types.StageMidTerm:
		column = "mid_term"
	case types.StageLongTerm:
		column = "long_term"
	default:
		return fmt.Errorf("unknown stage key: %s", key)
	}
	_, err := db.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO term_achievements (user_id, %[1]s) VALUES ($1, TRUE)
		 ON CONFLICT (user_id) DO UPDATE SET %[1]s = TRUE, updated_at = NOW()`, column),
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set term achieved: %w", err)
	}
	return nil
}

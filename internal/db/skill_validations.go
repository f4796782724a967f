package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertSkillValidation stores the skill validation artifact, keyed by
// user id.
func UpsertSkillValidation(ctx context.Context, q Querier, v *types.SkillValidation) error {
	matchedJSON, err := json.Marshal(v.MatchedSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missingJSON, err := json.Marshal(v.MissingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal missing skills: %w", err)
	}
	_, err = q.Exec(ctx,
		`INSERT INTO skill_validations (user_id, target_role, readiness_score, matched_skills, missing_skills, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE
		 SET target_role = $2, readiness_score = $3, matched_skills = $4,
		     missing_skills = $5, summary = $6, created_at = NOW()`,
		v.UserID, v.TargetRole, v.ReadinessScore, matchedJSON, missingJSON, v.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill validation: %w", err)
	}
	return nil
}

// GetSkillValidation retrieves the latest skill validation for a user.
// Returns nil with no error when none exists.
func (db *DB) GetSkillValidation(ctx context.Context, userID uuid.UUID) (*types.SkillValidation, error) {
	var v types.SkillValidation
	var matchedJSON, missingJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, target_role, readiness_score, matched_skills, missing_skills, summary, created_at
		 FROM skill_validations WHERE user_id = $1`,
		userID,
	).Scan(&v.UserID, &v.TargetRole, &v.ReadinessScore, &matchedJSON, &missingJSON,
		&v.Summary, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill validation: %w", err)
	}
	if err := json.Unmarshal(matchedJSON, &v.MatchedSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
	}
	if err := json.Unmarshal(missingJSON, &v.MissingSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing skills: %w", err)
	}
	return &v, nil
}

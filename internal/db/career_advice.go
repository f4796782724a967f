package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertCareerAdvice stores the career analysis artifact for a user, keyed
// by user id so a retried action overwrites instead of duplicating.
func UpsertCareerAdvice(ctx context.Context, q Querier, advice *types.CareerAdvice) error {
	rolesJSON, err := json.Marshal(advice.Roles)
	if err != nil {
		return fmt.Errorf("failed to marshal roles: %w", err)
	}
	_, err = q.Exec(ctx,
		`INSERT INTO career_advice (user_id, roles, summary, resume_text, current_level)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET roles = $2, summary = $3, resume_text = $4, current_level = $5, created_at = NOW()`,
		advice.UserID, rolesJSON, advice.Summary, advice.ResumeText, advice.CurrentLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert career advice: %w", err)
	}
	return nil
}

// GetCareerAdvice retrieves the latest career analysis for a user.
// Returns nil with no error when none exists.
func (db *DB) GetCareerAdvice(ctx context.Context, userID uuid.UUID) (*types.CareerAdvice, error) {
	var advice types.CareerAdvice
	var rolesJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, roles, summary, resume_text, current_level, created_at
		 FROM career_advice WHERE user_id = $1`,
		userID,
	).Scan(&advice.UserID, &rolesJSON, &advice.Summary, &advice.ResumeText,
		&advice.CurrentLevel, &advice.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get career advice: %w", err)
	}
	if err := json.Unmarshal(rolesJSON, &advice.Roles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roles: %w", err)
	}
	return &advice, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertUserGoal stores the user's target role and profile context.
func (db *DB) UpsertUserGoal(ctx context.Context, goal *types.UserGoal) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_goals (user_id, target_role, domain, resume_text, experience, current_role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE
		 SET target_role = $2, domain = $3, resume_text = $4,
		     experience = $5, current_role = $6, updated_at = NOW()`,
		goal.UserID, goal.TargetRole, goal.Domain, goal.ResumeText, goal.Experience, goal.CurrentRole,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user goal: %w", err)
	}
	return nil
}

// GetUserGoal retrieves a user's goal. Returns nil with no error when none
// exists.
func (db *DB) GetUserGoal(ctx context.Context, userID uuid.UUID) (*types.UserGoal, error) {
	var goal types.UserGoal
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, target_role, domain, resume_text, experience, current_role, updated_at
		 FROM user_goals WHERE user_id = $1`,
		userID,
	).Scan(&goal.UserID, &goal.TargetRole, &goal.Domain, &goal.ResumeText,
		&goal.Experience, &goal.CurrentRole, &goal.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user goal: %w", err)
	}
	return &goal, nil
}

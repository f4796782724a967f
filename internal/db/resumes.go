package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertResumeVersion stores a resume targeted at a role, keyed by
// (user_id, target_role), and makes it the user's single active version.
func UpsertResumeVersion(ctx context.Context, q Querier, v *types.ResumeVersion) error {
	// Deactivate the previous active version first; the new upsert below
	// becomes the only active one.
	_, err := q.Exec(ctx,
		`UPDATE resume_versions SET active = FALSE WHERE user_id = $1 AND active`,
		v.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate resume versions: %w", err)
	}

	_, err = q.Exec(ctx,
		`INSERT INTO resume_versions (user_id, target_role, content, active)
		 VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (user_id, target_role) DO UPDATE
		 SET content = $3, active = TRUE, created_at = NOW()`,
		v.UserID, v.TargetRole, v.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert resume version: %w", err)
	}
	return nil
}

// ListResumeVersions returns all resume versions for a user, newest first.
func (db *DB) ListResumeVersions(ctx context.Context, userID uuid.UUID) ([]types.ResumeVersion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, target_role, content, active, created_at
		 FROM resume_versions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume versions: %w", err)
	}
	defer rows.Close()

	var versions []types.ResumeVersion
	for rows.Next() {
		var v types.ResumeVersion
		if err := rows.Scan(&v.ID, &v.UserID, &v.TargetRole, &v.Content, &v.Active, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

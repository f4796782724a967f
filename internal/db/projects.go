package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertProjectIdeas stores project suggestions, keyed by (user_id, title)
// so a retried generation refreshes the set without duplicating rows.
func UpsertProjectIdeas(ctx context.Context, q Querier, userID uuid.UUID, ideas []types.ProjectIdea) error {
	for i := range ideas {
		_, err := q.Exec(ctx,
			`INSERT INTO project_ideas (user_id, title, domain, description, status)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (user_id, title) DO UPDATE
			 SET domain = $3, description = $4`,
			userID, ideas[i].Title, ideas[i].Domain, ideas[i].Description, ideas[i].Status,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert project idea %q: %w", ideas[i].Title, err)
		}
	}
	return nil
}

// ListProjects returns all project ideas for a user, oldest first.
func (db *DB) ListProjects(ctx context.Context, userID uuid.UUID) ([]types.ProjectIdea, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, domain, description, status, created_at
		 FROM project_ideas WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []types.ProjectIdea
	for rows.Next() {
		var p types.ProjectIdea
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Domain, &p.Description, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// UpdateProjectStatus sets the status of one project idea.
func (db *DB) UpdateProjectStatus(ctx context.Context, userID, projectID uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE project_ideas SET status = $1 WHERE user_id = $2 AND id = $3`,
		status, userID, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %s", projectID)
	}
	return nil
}

// UpsertProjectPlan stores the phased build plan for a user's selected
// project, keyed by user id.
func UpsertProjectPlan(ctx context.Context, q Querier, plan *types.ProjectPlan) error {
	phasesJSON, err := json.Marshal(plan.Phases)
	if err != nil {
		return fmt.Errorf("failed to marshal build phases: %w", err)
	}
	_, err = q.Exec(ctx,
		`INSERT INTO project_plans (user_id, project_id, project_title, phases)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET project_id = $2, project_title = $3, phases = $4, created_at = NOW()`,
		plan.UserID, plan.ProjectID, plan.ProjectTitle, phasesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project plan: %w", err)
	}
	return nil
}

// SetProjectPlanReview attaches the build review text to the stored plan.
func SetProjectPlanReview(ctx context.Context, q Querier, userID uuid.UUID, review string) error {
	tag, err := q.Exec(ctx,
		`UPDATE project_plans SET review = $1 WHERE user_id = $2`,
		review, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to store build review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no project plan to review for user %s", userID)
	}
	return nil
}

// GetProjectPlan retrieves the build plan for a user. Returns nil with no
// error when none exists.
func (db *DB) GetProjectPlan(ctx context.Context, userID uuid.UUID) (*types.ProjectPlan, error) {
	var plan types.ProjectPlan
	var phasesJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, project_id, project_title, phases, COALESCE(review, ''), created_at
		 FROM project_plans WHERE user_id = $1`,
		userID,
	).Scan(&plan.UserID, &plan.ProjectID, &plan.ProjectTitle, &phasesJSON, &plan.Review, &plan.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project plan: %w", err)
	}
	if err := json.Unmarshal(phasesJSON, &plan.Phases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal build phases: %w", err)
	}
	return &plan, nil
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertLearningJourney stores a per-skill learning journey, keyed by
// (user_id, skill).
func UpsertLearningJourney(ctx context.Context, q Querier, j *types.LearningJourney) error {
	stepsJSON, err := json.Marshal(j.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal learning steps: %w", err)
	}
	_, err = q.Exec(ctx,
		`INSERT INTO learning_journeys (user_id, skill, status, steps, progress)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, skill) DO UPDATE
		 SET status = $3, steps = $4, progress = $5`,
		j.UserID, j.Skill, j.Status, stepsJSON, j.Progress,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert learning journey: %w", err)
	}
	return nil
}

// ListLearningJourneys returns all learning journeys for a user, oldest
// first.
func (db *DB) ListLearningJourneys(ctx context.Context, userID uuid.UUID) ([]types.LearningJourney, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, skill, status, steps, COALESCE(progress, -1), created_at
		 FROM learning_journeys WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning journeys: %w", err)
	}
	defer rows.Close()

	var journeys []types.LearningJourney
	for rows.Next() {
		j, err := scanLearningJourney(rows)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, j)
	}
	return journeys, nil
}

// GetLearningJourney retrieves a single journey by id, scoped to its user.
// Returns nil with no error when it does not exist.
func (db *DB) GetLearningJourney(ctx context.Context, userID, journeyID uuid.UUID) (*types.LearningJourney, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, user_id, skill, status, steps, COALESCE(progress, -1), created_at
		 FROM learning_journeys WHERE user_id = $1 AND id = $2`,
		userID, journeyID,
	)
	j, err := scanLearningJourney(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}

// UpdateLearningJourneySteps replaces a journey's sub-steps and derived
// status and progress, used by the step-toggle endpoint.
func (db *DB) UpdateLearningJourneySteps(ctx context.Context, j *types.LearningJourney) error {
	stepsJSON, err := json.Marshal(j.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal learning steps: %w", err)
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE learning_journeys SET steps = $1, status = $2, progress = $3
		 WHERE user_id = $4 AND id = $5`,
		stepsJSON, j.Status, j.Progress, j.UserID, j.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update learning journey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("learning journey not found: %s", j.ID)
	}
	return nil
}

func scanLearningJourney(row pgx.Row) (types.LearningJourney, error) {
	var j types.LearningJourney
	var stepsJSON []byte
	err := row.Scan(&j.ID, &j.UserID, &j.Skill, &j.Status, &stepsJSON, &j.Progress, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return j, err
		}
		return j, fmt.Errorf("failed to scan learning journey: %w", err)
	}
	if err := json.Unmarshal(stepsJSON, &j.Steps); err != nil {
		return j, fmt.Errorf("failed to unmarshal learning steps: %w", err)
	}
	return j, nil
}

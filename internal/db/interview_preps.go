package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertInterviewPrep stores an interview preparation, keyed by
// (user_id, job_title, company).
func UpsertInterviewPrep(ctx context.Context, q Querier, prep *types.InterviewPreparation) error {
	questionsJSON, err := json.Marshal(prep.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	_, err = q.Exec(ctx,
		`INSERT INTO interview_preps (user_id, job_title, company, questions, readiness_score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, job_title, company) DO UPDATE
		 SET questions = $4, readiness_score = $5, created_at = NOW()`,
		prep.UserID, prep.JobTitle, prep.Company, questionsJSON, prep.ReadinessScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert interview prep: %w", err)
	}
	return nil
}

// ListInterviewPreps returns all interview preparations for a user, newest
// first.
func (db *DB) ListInterviewPreps(ctx context.Context, userID uuid.UUID) ([]types.InterviewPreparation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, job_title, company, questions, readiness_score, created_at
		 FROM interview_preps WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interview preps: %w", err)
	}
	defer rows.Close()

	var preps []types.InterviewPreparation
	for rows.Next() {
		var p types.InterviewPreparation
		var questionsJSON []byte
		if err := rows.Scan(&p.ID, &p.UserID, &p.JobTitle, &p.Company, &questionsJSON,
			&p.ReadinessScore, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview prep: %w", err)
		}
		if err := json.Unmarshal(questionsJSON, &p.Questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}
		preps = append(preps, p)
	}
	return preps, nil
}

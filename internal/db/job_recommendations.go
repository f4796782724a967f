package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/types"
)

// UpsertJobRecommendations stores matched jobs, keyed by
// (user_id, title, company) so regenerating the match list refreshes scores
// without duplicating rows or losing saved flags.
func UpsertJobRecommendations(ctx context.Context, q Querier, userID uuid.UUID, jobs []types.JobRecommendation) error {
	for i := range jobs {
		_, err := q.Exec(ctx,
			`INSERT INTO job_recommendations (user_id, title, company, location, url, relevance_score, saved)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (user_id, title, company) DO UPDATE
			 SET location = $4, url = $5, relevance_score = $6`,
			userID, jobs[i].Title, jobs[i].Company, jobs[i].Location,
			jobs[i].URL, jobs[i].RelevanceScore, jobs[i].Saved,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert job recommendation %q: %w", jobs[i].Title, err)
		}
	}
	return nil
}

// ListJobRecommendations returns matched jobs for a user, best match first.
func (db *DB) ListJobRecommendations(ctx context.Context, userID uuid.UUID) ([]types.JobRecommendation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, company, location, url, relevance_score, saved, created_at
		 FROM job_recommendations WHERE user_id = $1 ORDER BY relevance_score DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job recommendations: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRecommendation
	for rows.Next() {
		var j types.JobRecommendation
		if err := rows.Scan(&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location, &j.URL,
			&j.RelevanceScore, &j.Saved, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job recommendation: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// SetJobSaved toggles the saved flag on one recommendation.
func (db *DB) SetJobSaved(ctx context.Context, userID, jobID uuid.UUID, saved bool) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE job_recommendations SET saved = $1 WHERE user_id = $2 AND id = $3`,
		saved, userID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to set job saved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job recommendation not found: %s", jobID)
	}
	return nil
}

package types

import "time"

// JobRecommendation is a matched job posting with a relevance score.
type JobRecommendation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location,omitempty"`
	URL            string    `json:"url,omitempty"`
	RelevanceScore float64   `json:"relevance_score"`
	Saved          bool      `json:"saved"`
	CreatedAt      time.Time `json:"created_at"`
}

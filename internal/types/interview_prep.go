package types

import "time"

// InterviewQuestion is a single practice question with a model answer.
type InterviewQuestion struct {
	Category    string `json:"category"` // behavioral, technical, system_design
	Question    string `json:"question"`
	ModelAnswer string `json:"model_answer,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// InterviewPreparation is the artifact produced by the interview prep
// action: a question set for a target job plus a readiness score.
type InterviewPreparation struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	JobTitle       string              `json:"job_title"`
	Company        string              `json:"company,omitempty"`
	Questions      []InterviewQuestion `json:"questions"`
	ReadinessScore float64             `json:"readiness_score"`
	CreatedAt      time.Time           `json:"created_at"`
}

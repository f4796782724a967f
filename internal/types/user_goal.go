package types

import "time"

// UserGoal captures the target role and domain a user set at onboarding.
// It is part of the aggregate snapshot and seeds generation context.
type UserGoal struct {
	UserID      string    `json:"user_id"`
	TargetRole  string    `json:"target_role"`
	Domain      string    `json:"domain,omitempty"`
	ResumeText  string    `json:"resume_text,omitempty"`
	Experience  string    `json:"experience,omitempty"`
	CurrentRole string    `json:"current_role,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

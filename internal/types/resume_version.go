package types

import "time"

// ResumeVersion is one generated resume targeted at a role. At most one
// version per user is active at a time.
type ResumeVersion struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TargetRole string    `json:"target_role"`
	Content    string    `json:"content,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

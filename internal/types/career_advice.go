package types

import "time"

// TermRoles groups recommended roles by career horizon.
type TermRoles struct {
	Short []Role `json:"short"`
	Mid   []Role `json:"mid"`
	Long  []Role `json:"long"`
}

// CareerAdvice is the artifact produced by the career analysis action:
// role recommendations per term plus a summary of the user's position.
type CareerAdvice struct {
	UserID       string    `json:"user_id"`
	Roles        TermRoles `json:"roles"`
	Summary      string    `json:"summary,omitempty"`
	ResumeText   string    `json:"resume_text,omitempty"`
	CurrentLevel string    `json:"current_level,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RolesForTerm returns the recommended roles for a stage key.
func (c *CareerAdvice) RolesForTerm(key StageKey) []Role {
	switch key {
	case StageShortTerm:
		return c.Roles.Short
	case StageMidTerm:
		return c.Roles.Mid
	case StageLongTerm:
		return c.Roles.Long
	}
	return nil
}

// PrimaryRole returns the top recommendation for a term, or nil when the
// advice has no roles for that term.
func (c *CareerAdvice) PrimaryRole(key StageKey) *Role {
	roles := c.RolesForTerm(key)
	if len(roles) == 0 {
		return nil
	}
	return &roles[0]
}

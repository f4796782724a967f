package types

import "time"

// SkillValidation is the artifact produced by the skill validation action:
// a readiness score for a target role plus matched and missing skills.
type SkillValidation struct {
	UserID         string         `json:"user_id"`
	TargetRole     string         `json:"target_role"`
	ReadinessScore float64        `json:"readiness_score"`
	MatchedSkills  []string       `json:"matched_skills"`
	MissingSkills  []MissingSkill `json:"missing_skills"`
	Summary        string         `json:"summary,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MissingSkill describes a single skill gap with learning guidance.
type MissingSkill struct {
	Skill        string `json:"skill"`
	Category     string `json:"category,omitempty"`
	Priority     string `json:"priority,omitempty"`
	LearningTime string `json:"learning_time,omitempty"`
}

// Package types provides type definitions for structured data used throughout the career-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Status is the lifecycle state of a Stage or Step.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// StageKey identifies one of the three career-horizon stages.
type StageKey string

const (
	StageShortTerm StageKey = "short_term"
	StageMidTerm   StageKey = "mid_term"
	StageLongTerm  StageKey = "long_term"
)

// StageKeys is the fixed evaluation order of the three stages.
var StageKeys = []StageKey{StageShortTerm, StageMidTerm, StageLongTerm}

// Flag names for the journey completion record. These match the column
// names in the journey_state table.
const (
	FlagCareerAnalysis  = "career_analysis_completed"
	FlagSkillValidation = "skill_validation_completed"
	FlagLearningPlan    = "learning_plan_completed"
	FlagProjectGuidance = "project_guidance_completed"
	FlagProjectPlan     = "project_plan_completed"
	FlagProjectBuild    = "project_build_completed"
	FlagResume          = "resume_completed"
	FlagJobMatching     = "job_matching_completed"
	FlagInterview       = "interview_completed"
)

// JourneyFlags is the authoritative boolean completion record for a user's
// journey. Flags are monotonic: once true, the orchestrator never reverts
// them.
type JourneyFlags struct {
	CareerAnalysisCompleted  bool `json:"career_analysis_completed"`
	SkillValidationCompleted bool `json:"skill_validation_completed"`
	LearningPlanCompleted    bool `json:"learning_plan_completed"`
	ProjectGuidanceCompleted bool `json:"project_guidance_completed"`
	ProjectPlanCompleted     bool `json:"project_plan_completed"`
	ProjectBuildCompleted    bool `json:"project_build_completed"`
	ResumeCompleted          bool `json:"resume_completed"`
	JobMatchingCompleted     bool `json:"job_matching_completed"`
	InterviewCompleted       bool `json:"interview_completed"`
}

// Flag returns the value of a flag by its column name. Unknown names
// return false.
func (f JourneyFlags) Flag(name string) bool {
	switch name {
	case FlagCareerAnalysis:
		return f.CareerAnalysisCompleted
	case FlagSkillValidation:
		return f.SkillValidationCompleted
	case FlagLearningPlan:
		return f.LearningPlanCompleted
	case FlagProjectGuidance:
		return f.ProjectGuidanceCompleted
	case FlagProjectPlan:
		return f.ProjectPlanCompleted
	case FlagProjectBuild:
		return f.ProjectBuildCompleted
	case FlagResume:
		return f.ResumeCompleted
	case FlagJobMatching:
		return f.JobMatchingCompleted
	case FlagInterview:
		return f.InterviewCompleted
	}
	return false
}

// TermAchievement records externally confirmed job placement per term.
// A term achievement completes its stage regardless of numeric progress.
type TermAchievement struct {
	ShortTerm bool `json:"short_term"`
	MidTerm   bool `json:"mid_term"`
	LongTerm  bool `json:"long_term"`
}

// Achieved returns the achievement signal for a stage key.
func (t TermAchievement) Achieved(key StageKey) bool {
	switch key {
	case StageShortTerm:
		return t.ShortTerm
	case StageMidTerm:
		return t.MidTerm
	case StageLongTerm:
		return t.LongTerm
	}
	return false
}

// Role is a recommended target role attached to a stage.
type Role struct {
	Title       string  `json:"title"`
	Domain      string  `json:"domain"`
	SalaryRange string  `json:"salary_range,omitempty"`
	MatchScore  float64 `json:"match_score,omitempty"`
}

// Step is an ordered unit of work within a Stage. Steps are derived fresh on
// every recomputation and never persisted; completion is inferred from
// JourneyFlags, not from a separate step record.
type Step struct {
	ID             string     `json:"id"`
	Number         int        `json:"number"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         Status     `json:"status"`
	Progress       int        `json:"progress"`
	Route          string     `json:"route"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	Duration       string     `json:"duration,omitempty"`
	Records        any        `json:"records,omitempty"`
	CompletionText string     `json:"completion_text,omitempty"`
}

// Stage is one of the three top-level career-horizon phases.
type Stage struct {
	Key             StageKey `json:"key"`
	Ordinal         int      `json:"ordinal"`
	Label           string   `json:"label"`
	Timeline        string   `json:"timeline"`
	Status          Status   `json:"status"`
	OverallProgress int      `json:"overall_progress"`
	Steps           []Step   `json:"steps"`
	TargetRole      *Role    `json:"target_role,omitempty"`
}

// JourneyState is the full derived journey for one user: the ordered stages,
// the currently active stage, and the weighted overall progress.
type JourneyState struct {
	Stages          []Stage  `json:"stages"`
	CurrentStage    StageKey `json:"current_stage"`
	OverallProgress int      `json:"overall_progress"`
}

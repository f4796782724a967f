// Package journey derives a user's career journey state: per-domain progress
// values, the ordered three-stage roadmap, and step unlock statuses. All
// derivation is pure and stateless; stages are recomputed from the flag
// record and domain records on every call and never persisted.
package journey

import "github.com/jonathan/career-coach/internal/types"

// Snapshot holds the per-domain records a journey computation reads. It is
// assembled by the aggregate package; every field degrades to its zero value
// when the underlying fetch fails, and the state machine must tolerate that.
type Snapshot struct {
	Flags            types.JourneyFlags
	TermAchievement  types.TermAchievement
	Goal             *types.UserGoal
	CareerAdvice     *types.CareerAdvice
	SkillValidation  *types.SkillValidation
	LearningJourneys []types.LearningJourney
	Projects         []types.ProjectIdea
	ProjectPlan      *types.ProjectPlan
	Resumes          []types.ResumeVersion
	Jobs             []types.JobRecommendation
	InterviewPreps   []types.InterviewPreparation
}

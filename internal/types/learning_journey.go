package types

import "time"

// Learning journey status values. StatusCompletedLearning is matched exactly
// (case-sensitive) when deriving progress.
const (
	LearningStatusNotStarted = "not_started"
	LearningStatusInProgress = "in_progress"
	LearningStatusCompleted  = "completed"
)

// LearningStep is a single sub-step within a journey, toggled by the user
// as they work through the material.
type LearningStep struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// LearningJourney is a per-skill learning plan with ordered sub-steps.
// Progress is the journey's own completion percentage; journeys persisted
// before percentages were tracked carry -1 and fall back to status.
type LearningJourney struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Skill     string         `json:"skill"`
	Status    string         `json:"status"`
	Steps     []LearningStep `json:"steps"`
	Progress  float64        `json:"progress"`
	CreatedAt time.Time      `json:"created_at"`
}

// CompletionPct returns the journey's completion percentage. When no
// explicit percentage is present, a completed journey counts as 100 and
// anything else as 0.
func (j *LearningJourney) CompletionPct() float64 {
	if j.Progress >= 0 {
		return j.Progress
	}
	if j.Status == LearningStatusCompleted {
		return 100
	}
	return 0
}

// RecalcProgress recomputes Progress from the done sub-steps and updates
// Status to completed when every step is done.
func (j *LearningJourney) RecalcProgress() {
	if len(j.Steps) == 0 {
		j.Progress = 0
		return
	}
	done := 0
	for _, s := range j.Steps {
		if s.Done {
			done++
		}
	}
	j.Progress = float64(done) / float64(len(j.Steps)) * 100
	if done == len(j.Steps) {
		j.Status = LearningStatusCompleted
	} else if done > 0 && j.Status == LearningStatusNotStarted {
		j.Status = LearningStatusInProgress
	}
}

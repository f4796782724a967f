package types

import "time"

// ProjectStatusCompleted is the exact status string counted as completed
// when deriving project progress. The match is case-sensitive.
const ProjectStatusCompleted = "completed"

// ProjectIdea is a portfolio project suggestion produced by the project
// guidance action.
type ProjectIdea struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Domain      string    `json:"domain"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// BuildTask is a single task within a build phase.
type BuildTask struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// BuildPhase groups the tasks for one phase of a project build.
type BuildPhase struct {
	Name     string      `json:"name"`
	Duration string      `json:"duration,omitempty"`
	Tasks    []BuildTask `json:"tasks"`
}

// ProjectPlan is the artifact produced by the project planning action:
// the phased build plan for a selected project idea.
type ProjectPlan struct {
	UserID       string       `json:"user_id"`
	ProjectID    string       `json:"project_id"`
	ProjectTitle string       `json:"project_title"`
	Phases       []BuildPhase `json:"phases"`
	Review       string       `json:"review,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

package generate

// Action identifies one generation variant. Actions match the orchestrator
// step actions one to one.
type Action string

const (
	ActionCareerAnalysis  Action = "career_analysis"
	ActionSkillValidation Action = "skill_validation"
	ActionLearningPlan    Action = "learning_plan"
	ActionProjectIdeas    Action = "project_ideas"
	ActionProjectPlan     Action = "project_plan"
	ActionProjectBuild    Action = "project_build"
	ActionResumeUpgrade   Action = "resume_upgrade"
	ActionJobMatching     Action = "job_matching"
	ActionInterviewPrep   Action = "interview_prep"
)

// CareerAnalysisInput is the prior-stage context for career analysis.
type CareerAnalysisInput struct {
	Resume      string
	CurrentRole string
	TargetRole  string
	Domain      string
}

// SkillValidationInput is the context for validating readiness for a role.
type SkillValidationInput struct {
	Resume     string
	TargetRole string
	Domain     string
}

// LearningPlanInput is the context for planning one skill's journey.
type LearningPlanInput struct {
	Skill      string
	TargetRole string
	Resume     string
}

// ProjectIdeasInput is the context for suggesting portfolio projects.
type ProjectIdeasInput struct {
	TargetRole string
	Domain     string
	Skills     []string
}

// ProjectPlanInput is the context for planning a selected project.
type ProjectPlanInput struct {
	ProjectTitle       string
	ProjectDescription string
	TargetRole         string
}

// BuildReviewInput is the context for reviewing a finished project build.
type BuildReviewInput struct {
	ProjectTitle string
	Phases       string
	TargetRole   string
}

// ResumeUpgradeInput is the context for rewriting the resume.
type ResumeUpgradeInput struct {
	Resume     string
	TargetRole string
	Skills     []string
	Projects   string
}

// JobMatchingInput is the context for proposing job openings.
type JobMatchingInput struct {
	Resume     string
	TargetRole string
	Domain     string
}

// InterviewPrepInput is the context for preparing for one saved job.
type InterviewPrepInput struct {
	Resume     string
	JobTitle   string
	Company    string
	TargetRole string
}

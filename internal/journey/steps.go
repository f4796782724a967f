package journey

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/types"
)

// stepDef is the static definition of one step in the journey chain. The
// seven steps are gated by an ordered chain of completion flags; the project
// guidance/plan/build sub-flags collapse into the single project step, which
// completes on the final build flag.
type stepDef struct {
	ID          string
	Name        string
	Description string
	Route       string
	Flag        string
}

// stepChain is the ordered step chain. The evaluator resolves all statuses
// in a single pass over this table so the unlock rules live in one place.
var stepChain = []stepDef{
	{
		ID:          "career_analysis",
		Name:        "Career Analysis",
		Description: "Analyze your resume and recommend target roles per career horizon.",
		Route:       "/career",
		Flag:        types.FlagCareerAnalysis,
	},
	{
		ID:          "skill_validation",
		Name:        "Skill Validation",
		Description: "Score your readiness for the target role and surface skill gaps.",
		Route:       "/skills",
		Flag:        types.FlagSkillValidation,
	},
	{
		ID:          "learning_plan",
		Name:        "Learning Plan",
		Description: "Work through a learning journey for each missing skill.",
		Route:       "/learning",
		Flag:        types.FlagLearningPlan,
	},
	{
		ID:          "project_building",
		Name:        "Project Building",
		Description: "Build portfolio projects that demonstrate the new skills.",
		Route:       "/projects",
		Flag:        types.FlagProjectBuild,
	},
	{
		ID:          "portfolio_resume",
		Name:        "Portfolio & Resume",
		Description: "Upgrade your resume around the target role and new projects.",
		Route:       "/resume",
		Flag:        types.FlagResume,
	},
	{
		ID:          "job_matching",
		Name:        "Job Application",
		Description: "Match and save job openings that fit the target role.",
		Route:       "/jobs",
		Flag:        types.FlagJobMatching,
	},
	{
		ID:          "interview_prep",
		Name:        "Interview Prep",
		Description: "Practice interview questions for the jobs you saved.",
		Route:       "/interview",
		Flag:        types.FlagInterview,
	},
}

// chainStatuses resolves the status of every step in the chain in one pass.
// Step i is completed iff its flag is true; active iff the prior flag is
// true and its own is false (the first step is active with no flags set);
// locked otherwise. When the stage itself is locked every step is locked.
func chainStatuses(flag func(name string) bool, stageUnlocked bool) []types.Status {
	statuses := make([]types.Status, len(stepChain))
	for i, def := range stepChain {
		if !stageUnlocked {
			statuses[i] = types.StatusLocked
			continue
		}
		switch {
		case flag(def.Flag):
			statuses[i] = types.StatusCompleted
		case i == 0 || flag(stepChain[i-1].Flag):
			statuses[i] = types.StatusActive
		default:
			statuses[i] = types.StatusLocked
		}
	}
	return statuses
}

// stepProgress derives the numeric progress and completion text for one
// step from the snapshot. Completed steps are overridden to 100 by
// StageProgress; the raw value here still feeds the step payload.
func stepProgress(def stepDef, snap *Snapshot) (int, string) {
	switch def.ID {
	case "career_analysis":
		if snap.Flags.CareerAnalysisCompleted {
			return 100, ""
		}
		if snap.CareerAdvice != nil {
			return 50, "Role recommendations ready"
		}
		return 0, ""
	case "skill_validation":
		if snap.Flags.SkillValidationCompleted {
			return 100, ""
		}
		if snap.SkillValidation != nil {
			pct := clampPct(snap.SkillValidation.ReadinessScore)
			return pct, fmt.Sprintf("Readiness %d%%", pct)
		}
		return 0, ""
	case "learning_plan":
		pct := clampPct(LearningProgress(snap.LearningJourneys))
		if snap.Flags.LearningPlanCompleted {
			pct = 100
		}
		return pct, learningCompletionText(snap.LearningJourneys)
	case "project_building":
		pct := clampPct(ProjectProgress(snap.Projects))
		if snap.Flags.ProjectBuildCompleted {
			pct = 100
		}
		return pct, projectCompletionText(snap.Projects)
	case "portfolio_resume":
		return clampPct(ResumeProgress(snap.Flags.ResumeCompleted, snap.Resumes)), ""
	case "job_matching":
		return clampPct(JobMatchingProgress(snap.Flags.JobMatchingCompleted, snap.Jobs)), ""
	case "interview_prep":
		pct := clampPct(InterviewProgress(snap.InterviewPreps))
		if snap.Flags.InterviewCompleted {
			pct = 100
		}
		return pct, ""
	}
	return 0, ""
}

// stepRecords returns the domain records carried on a step for the
// presentation layer.
func stepRecords(def stepDef, snap *Snapshot) any {
	switch def.ID {
	case "career_analysis":
		if snap.CareerAdvice != nil {
			return snap.CareerAdvice.Roles
		}
	case "skill_validation":
		if snap.SkillValidation != nil {
			return snap.SkillValidation
		}
	case "learning_plan":
		if len(snap.LearningJourneys) > 0 {
			return snap.LearningJourneys
		}
	case "project_building":
		if len(snap.Projects) > 0 {
			return snap.Projects
		}
	case "portfolio_resume":
		if len(snap.Resumes) > 0 {
			return snap.Resumes
		}
	case "job_matching":
		if len(snap.Jobs) > 0 {
			return snap.Jobs
		}
	case "interview_prep":
		if len(snap.InterviewPreps) > 0 {
			return snap.InterviewPreps
		}
	}
	return nil
}

func learningCompletionText(journeys []types.LearningJourney) string {
	if len(journeys) == 0 {
		return ""
	}
	done := 0
	for i := range journeys {
		if journeys[i].Status == types.LearningStatusCompleted {
			done++
		}
	}
	return fmt.Sprintf("%d/%d courses completed", done, len(journeys))
}

func projectCompletionText(projects []types.ProjectIdea) string {
	if len(projects) == 0 {
		return ""
	}
	done := 0
	for i := range projects {
		if projects[i].Status == types.ProjectStatusCompleted {
			done++
		}
	}
	return fmt.Sprintf("%d/%d projects completed", done, len(projects))
}

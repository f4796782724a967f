package generate

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/types"
)

// Deterministic fallback artifacts, substituted when the generator returns
// an unusable shape. They are intentionally modest: enough for the journey
// to proceed, clearly generic, and regenerable later.

// FallbackLearningJourney returns a generic learning plan for a skill.
func FallbackLearningJourney(in LearningPlanInput) *types.LearningJourney {
	return &types.LearningJourney{
		Skill:  in.Skill,
		Status: types.LearningStatusNotStarted,
		Steps: []types.LearningStep{
			{Title: fmt.Sprintf("Learn the fundamentals of %s", in.Skill)},
			{Title: fmt.Sprintf("Complete an introductory course on %s", in.Skill)},
			{Title: fmt.Sprintf("Build a small practice exercise using %s", in.Skill)},
			{Title: fmt.Sprintf("Apply %s in a realistic project", in.Skill)},
			{Title: fmt.Sprintf("Review and document what you learned about %s", in.Skill)},
		},
	}
}

// FallbackInterviewPrep returns a generic question set for a job.
func FallbackInterviewPrep(in InterviewPrepInput) *types.InterviewPreparation {
	return &types.InterviewPreparation{
		JobTitle: in.JobTitle,
		Company:  in.Company,
		Questions: []types.InterviewQuestion{
			{Category: "behavioral", Question: "Tell me about yourself and why you are interested in this role."},
			{Category: "behavioral", Question: "Describe a challenging project you worked on and how you handled it."},
			{Category: "behavioral", Question: "Tell me about a time you disagreed with a teammate. How was it resolved?"},
			{Category: "technical", Question: fmt.Sprintf("What experience do you have that is most relevant to a %s position?", in.JobTitle)},
			{Category: "technical", Question: "Walk me through the architecture of a system you built recently."},
			{Category: "technical", Question: "How do you approach debugging a problem you have never seen before?"},
		},
		ReadinessScore: 0,
	}
}

// FallbackCareerAdvice returns a minimal advice record built from the
// user's own stated goal.
func FallbackCareerAdvice(in CareerAnalysisInput) *types.CareerAdvice {
	role := types.Role{Title: in.TargetRole, Domain: in.Domain}
	if role.Title == "" {
		role.Title = "Individual Contributor"
	}
	return &types.CareerAdvice{
		Roles:      types.TermRoles{Short: []types.Role{role}, Mid: []types.Role{role}, Long: []types.Role{role}},
		Summary:    "Automatic analysis was unavailable; showing your stated goal. Re-run the analysis to get tailored recommendations.",
		ResumeText: in.Resume,
	}
}

// FallbackSkillValidation returns a neutral validation so the journey can
// proceed to learning.
func FallbackSkillValidation(in SkillValidationInput) *types.SkillValidation {
	return &types.SkillValidation{
		TargetRole:     in.TargetRole,
		ReadinessScore: 0,
		MatchedSkills:  []string{},
		MissingSkills: []types.MissingSkill{
			{Skill: fmt.Sprintf("Core skills for %s", in.TargetRole), Priority: "high"},
		},
		Summary: "Automatic validation was unavailable; re-run to get a detailed gap analysis.",
	}
}

// FallbackProjectIdeas returns one generic portfolio project.
func FallbackProjectIdeas(in ProjectIdeasInput) []types.ProjectIdea {
	return []types.ProjectIdea{
		{
			Title:       fmt.Sprintf("Portfolio project for %s", in.TargetRole),
			Domain:      in.Domain,
			Description: "A self-scoped project demonstrating the skills from your learning plan. Re-run project guidance for tailored ideas.",
			Status:      "planned",
		},
	}
}

// FallbackProjectPlan returns a generic three-phase build plan.
func FallbackProjectPlan(in ProjectPlanInput) *types.ProjectPlan {
	return &types.ProjectPlan{
		ProjectTitle: in.ProjectTitle,
		Phases: []types.BuildPhase{
			{Name: "Design", Duration: "1 week", Tasks: []types.BuildTask{
				{Title: "Define scope and success criteria"},
				{Title: "Sketch the architecture"},
			}},
			{Name: "Build", Duration: "2-3 weeks", Tasks: []types.BuildTask{
				{Title: "Implement the core functionality"},
				{Title: "Add tests"},
			}},
			{Name: "Ship", Duration: "1 week", Tasks: []types.BuildTask{
				{Title: "Deploy a public demo"},
				{Title: "Write the README"},
			}},
		},
	}
}

// FallbackBuildReview returns a generic review line.
func FallbackBuildReview(in BuildReviewInput) string {
	return fmt.Sprintf("%s is complete. Present it with a clear README and a short demo focused on what matters for a %s role.",
		in.ProjectTitle, in.TargetRole)
}

// FallbackJobMatching returns no recommendations. Unlike content artifacts
// there is no honest deterministic stand-in for real openings, so the list
// stays empty and the caller's completion text reflects that.
func FallbackJobMatching(JobMatchingInput) []types.JobRecommendation {
	return []types.JobRecommendation{}
}

// FallbackResumeUpgrade returns the user's existing resume unchanged.
func FallbackResumeUpgrade(in ResumeUpgradeInput) string {
	return in.Resume
}

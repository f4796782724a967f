package journey

import (
	"math"

	"github.com/jonathan/career-coach/internal/types"
)

// StageWeights is the contribution of each stage to the overall journey
// progress. A policy constant, not derived; adjust here if product weighting
// changes.
var StageWeights = map[types.StageKey]float64{
	types.StageShortTerm: 0.3,
	types.StageMidTerm:   0.3,
	types.StageLongTerm:  0.4,
}

// LearningProgress is the mean of each journey's own completion percentage.
// Journeys without an explicit percentage count 100 when completed, else 0.
// Empty input returns 0.
func LearningProgress(journeys []types.LearningJourney) float64 {
	if len(journeys) == 0 {
		return 0
	}
	var sum float64
	for i := range journeys {
		sum += journeys[i].CompletionPct()
	}
	return sum / float64(len(journeys))
}

// ProjectProgress is completed/total*100 over project ideas, where completed
// is an exact case-sensitive status match. Empty input returns 0.
func ProjectProgress(projects []types.ProjectIdea) float64 {
	if len(projects) == 0 {
		return 0
	}
	completed := 0
	for i := range projects {
		if projects[i].Status == types.ProjectStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(projects)) * 100
}

// InterviewProgress is the mean readiness score across preparations.
// Empty input returns 0.
func InterviewProgress(preps []types.InterviewPreparation) float64 {
	if len(preps) == 0 {
		return 0
	}
	var sum float64
	for i := range preps {
		sum += preps[i].ReadinessScore
	}
	return sum / float64(len(preps))
}

// ResumeProgress is 100 when the resume flag is set, 50 when at least one
// resume version exists, else 0. The 50 is a deliberate partial-credit
// heuristic: having any draft is meaningful progress toward the step.
func ResumeProgress(resumeDone bool, versions []types.ResumeVersion) float64 {
	if resumeDone {
		return 100
	}
	if len(versions) > 0 {
		return 50
	}
	return 0
}

// JobMatchingProgress is 100 when the matching flag is set; otherwise each
// saved recommendation earns 20 points of partial credit, capped at 100.
func JobMatchingProgress(done bool, jobs []types.JobRecommendation) float64 {
	if done {
		return 100
	}
	saved := 0
	for i := range jobs {
		if jobs[i].Saved {
			saved++
		}
	}
	return math.Min(100, float64(saved)*20)
}

// StageProgress is the arithmetic mean across step progress values, where a
// completed step always contributes 100 regardless of its stored number.
// The flag wins over the numeric value because a step can be flagged
// complete before its last progress update lands.
func StageProgress(steps []types.Step) int {
	if len(steps) == 0 {
		return 0
	}
	var sum float64
	for i := range steps {
		if steps[i].Status == types.StatusCompleted {
			sum += 100
		} else {
			sum += float64(steps[i].Progress)
		}
	}
	return int(math.Round(sum / float64(len(steps))))
}

// OverallProgress is the weighted sum of stage progress values, rounded to
// the nearest integer.
func OverallProgress(short, mid, long int) int {
	total := StageWeights[types.StageShortTerm]*float64(short) +
		StageWeights[types.StageMidTerm]*float64(mid) +
		StageWeights[types.StageLongTerm]*float64(long)
	return int(math.Round(total))
}

// clampPct rounds a 0-100 float to an int and clamps it into range, so a
// bad readiness score from a generator can never push a step past 100.
func clampPct(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

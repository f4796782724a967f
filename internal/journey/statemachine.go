package journey

import "github.com/jonathan/career-coach/internal/types"

// stageDef is the static definition of one career-horizon stage.
type stageDef struct {
	Key      types.StageKey
	Label    string
	Timeline string
}

var stageDefs = []stageDef{
	{Key: types.StageShortTerm, Label: "Short-Term Goals", Timeline: "0-6 months"},
	{Key: types.StageMidTerm, Label: "Mid-Term Goals", Timeline: "6-18 months"},
	{Key: types.StageLongTerm, Label: "Long-Term Goals", Timeline: "18+ months"},
}

// ComputeStages derives the full journey state from a snapshot. It never
// fails: missing or partial domain data resolves to zero progress and locked
// or default-active statuses, so callers can render the result
// unconditionally.
//
// Stage rules: short_term starts active and is never locked. A stage is
// completed only by its term-achieved signal; progress reaching 100 does not
// complete a stage on its own. The next stage unlocks exactly when the prior
// stage's term is achieved. All three stages share the same step chain; the
// flag record drives step statuses wherever the stage is unlocked.
func ComputeStages(snap Snapshot) types.JourneyState {
	stages := make([]types.Stage, 0, len(stageDefs))
	progressByKey := make(map[types.StageKey]int, len(stageDefs))

	priorAchieved := true // short_term has no prior stage
	for ordinal, def := range stageDefs {
		achieved := snap.TermAchievement.Achieved(def.Key)

		var status types.Status
		switch {
		case achieved:
			status = types.StatusCompleted
		case priorAchieved:
			status = types.StatusActive
		default:
			status = types.StatusLocked
		}

		steps := buildSteps(&snap, status != types.StatusLocked)
		progress := StageProgress(steps)
		progressByKey[def.Key] = progress

		stage := types.Stage{
			Key:             def.Key,
			Ordinal:         ordinal + 1,
			Label:           def.Label,
			Timeline:        def.Timeline,
			Status:          status,
			OverallProgress: progress,
			Steps:           steps,
		}
		if snap.CareerAdvice != nil {
			stage.TargetRole = snap.CareerAdvice.PrimaryRole(def.Key)
		}
		stages = append(stages, stage)

		priorAchieved = achieved
	}

	return types.JourneyState{
		Stages:       stages,
		CurrentStage: currentStage(stages),
		OverallProgress: OverallProgress(
			progressByKey[types.StageShortTerm],
			progressByKey[types.StageMidTerm],
			progressByKey[types.StageLongTerm],
		),
	}
}

// buildSteps instantiates the step chain for one stage, resolving statuses,
// progress, records and completion text from the snapshot.
func buildSteps(snap *Snapshot, unlocked bool) []types.Step {
	statuses := chainStatuses(snap.Flags.Flag, unlocked)
	steps := make([]types.Step, len(stepChain))
	for i, def := range stepChain {
		progress, completionText := stepProgress(def, snap)
		if statuses[i] == types.StatusLocked && !unlocked {
			// A locked stage shows no progress even when the shared
			// flag record would imply some.
			progress = 0
			completionText = ""
		}
		steps[i] = types.Step{
			ID:             def.ID,
			Number:         i + 1,
			Name:           def.Name,
			Description:    def.Description,
			Status:         statuses[i],
			Progress:       progress,
			Route:          def.Route,
			Records:        stepRecords(def, snap),
			CompletionText: completionText,
		}
	}
	return steps
}

// currentStage returns the first active stage in fixed order, defaulting to
// short_term so the result is never empty even in the terminal
// all-achieved case.
func currentStage(stages []types.Stage) types.StageKey {
	for _, s := range stages {
		if s.Status == types.StatusActive {
			return s.Key
		}
	}
	return types.StageShortTerm
}

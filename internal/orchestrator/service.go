// Package orchestrator runs journey step actions end to end: it validates
// the action's precursors against the aggregated snapshot, generates the
// artifact, and persists the artifact together with its completion flag in
// one transaction. Flags only ever flip after a successful persist, and a
// malformed generation is replaced with a deterministic fallback artifact
// rather than failing the step.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-coach/internal/aggregate"
	"github.com/jonathan/career-coach/internal/generate"
	"github.com/jonathan/career-coach/internal/journey"
	"github.com/jonathan/career-coach/internal/types"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 60 * time.Second

// Store is the persistence surface the orchestrator needs: the aggregate
// read side plus one transactional save per action. *db.DB satisfies it.
type Store interface {
	aggregate.Store

	SaveCareerAnalysis(ctx context.Context, userID uuid.UUID, advice *types.CareerAdvice) error
	SaveSkillValidation(ctx context.Context, userID uuid.UUID, v *types.SkillValidation) error
	SaveLearningPlan(ctx context.Context, userID uuid.UUID, j *types.LearningJourney) error
	SaveProjectIdeas(ctx context.Context, userID uuid.UUID, ideas []types.ProjectIdea) error
	SaveProjectPlan(ctx context.Context, userID uuid.UUID, plan *types.ProjectPlan) error
	SaveBuildReview(ctx context.Context, userID uuid.UUID, review string) error
	SaveResumeUpgrade(ctx context.Context, userID uuid.UUID, v *types.ResumeVersion) error
	SaveJobMatches(ctx context.Context, userID uuid.UUID, jobs []types.JobRecommendation) error
	SaveInterviewPrep(ctx context.Context, userID uuid.UUID, prep *types.InterviewPreparation) error
}

// Result is the outcome of one action run. Data holds the persisted
// artifact; Fallback marks an artifact substituted after a malformed
// generation, which still counts as success.
type Result struct {
	Action   generate.Action `json:"action"`
	Success  bool            `json:"success"`
	Fallback bool            `json:"fallback,omitempty"`
	Data     any             `json:"data,omitempty"`
	NextStep generate.Action `json:"next_step,omitempty"`
}

// Service coordinates aggregation, generation, and persistence for all
// journey actions.
type Service struct {
	store   Store
	gen     generate.Generator
	agg     *aggregate.Aggregator
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New creates a Service. A zero timeout selects DefaultTimeout.
func New(store Store, gen generate.Generator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		store:    store,
		gen:      gen,
		agg:      aggregate.New(store),
		timeout:  timeout,
		inflight: make(map[string]struct{}),
	}
}

// Journey returns the freshly computed journey state for a user.
func (s *Service) Journey(ctx context.Context, userID uuid.UUID) (types.JourneyState, error) {
	snap, err := s.agg.FetchAll(ctx, userID)
	if err != nil {
		return types.JourneyState{}, err
	}
	return journey.ComputeStages(snap), nil
}

// acquire reserves the (user, action) slot. A second concurrent run of the
// same action for the same user is rejected rather than queued.
func (s *Service) acquire(userID uuid.UUID, action generate.Action) error {
	key := userID.String() + ":" + string(action)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return &InFlightError{Action: action}
	}
	s.inflight[key] = struct{}{}
	return nil
}

func (s *Service) release(userID uuid.UUID, action generate.Action) {
	key := userID.String() + ":" + string(action)
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// nextAction maps each action to the one that unlocks after it.
var nextAction = map[generate.Action]generate.Action{
	generate.ActionCareerAnalysis:  generate.ActionSkillValidation,
	generate.ActionSkillValidation: generate.ActionLearningPlan,
	generate.ActionLearningPlan:    generate.ActionProjectIdeas,
	generate.ActionProjectIdeas:    generate.ActionProjectPlan,
	generate.ActionProjectPlan:     generate.ActionProjectBuild,
	generate.ActionProjectBuild:    generate.ActionResumeUpgrade,
	generate.ActionResumeUpgrade:   generate.ActionJobMatching,
	generate.ActionJobMatching:     generate.ActionInterviewPrep,
}

func success(action generate.Action, data any, fallback bool) *Result {
	return &Result{
		Action:   action,
		Success:  true,
		Fallback: fallback,
		Data:     data,
		NextStep: nextAction[action],
	}
}

// resumeText picks the freshest resume text available in the snapshot.
func resumeText(snap journey.Snapshot) string {
	for _, v := range snap.Resumes {
		if v.Active && v.Content != "" {
			return v.Content
		}
	}
	if snap.CareerAdvice != nil && snap.CareerAdvice.ResumeText != "" {
		return snap.CareerAdvice.ResumeText
	}
	if snap.Goal != nil {
		return snap.Goal.ResumeText
	}
	return ""
}

// targetRole resolves the role generations aim at, preferring the stated
// goal over the short-term recommendation.
func targetRole(snap journey.Snapshot) string {
	if snap.Goal != nil && snap.Goal.TargetRole != "" {
		return snap.Goal.TargetRole
	}
	if snap.CareerAdvice != nil {
		if r := snap.CareerAdvice.PrimaryRole(types.StageShortTerm); r != nil {
			return r.Title
		}
	}
	return ""
}

func goalDomain(snap journey.Snapshot) string {
	if snap.Goal != nil {
		return snap.Goal.Domain
	}
	return ""
}

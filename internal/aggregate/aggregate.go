// Package aggregate assembles the per-domain snapshot a journey computation
// reads. Reads are independent and issued concurrently; an unavailable
// domain degrades to its empty default so a stage can still render as "not
// started" rather than erroring. Only the flags read is fail-fast.
package aggregate

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-coach/internal/journey"
	"github.com/jonathan/career-coach/internal/types"
)

// Store is the read surface the aggregator needs. *db.DB satisfies it.
type Store interface {
	GetJourneyState(ctx context.Context, userID uuid.UUID) (types.JourneyFlags, error)
	GetTermAchievement(ctx context.Context, userID uuid.UUID) (types.TermAchievement, error)
	GetUserGoal(ctx context.Context, userID uuid.UUID) (*types.UserGoal, error)
	GetCareerAdvice(ctx context.Context, userID uuid.UUID) (*types.CareerAdvice, error)
	GetSkillValidation(ctx context.Context, userID uuid.UUID) (*types.SkillValidation, error)
	ListLearningJourneys(ctx context.Context, userID uuid.UUID) ([]types.LearningJourney, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]types.ProjectIdea, error)
	GetProjectPlan(ctx context.Context, userID uuid.UUID) (*types.ProjectPlan, error)
	ListResumeVersions(ctx context.Context, userID uuid.UUID) ([]types.ResumeVersion, error)
	ListJobRecommendations(ctx context.Context, userID uuid.UUID) ([]types.JobRecommendation, error)
	ListInterviewPreps(ctx context.Context, userID uuid.UUID) ([]types.InterviewPreparation, error)
}

// AggregationFailedError indicates the flags read itself failed; without the
// base flag record there is no valid state to compute from.
type AggregationFailedError struct {
	UserID uuid.UUID
	Err    error
}

func (e *AggregationFailedError) Error() string {
	return fmt.Sprintf("failed to aggregate journey state for user %s: %v", e.UserID, e.Err)
}

func (e *AggregationFailedError) Unwrap() error { return e.Err }

// Aggregator fetches a full journey snapshot for a user.
type Aggregator struct {
	store Store
}

// New creates an Aggregator over the given store.
func New(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// FetchAll issues all domain reads concurrently and joins them into a
// snapshot. Domain-read failures are logged and degrade to empty values;
// a flags-read failure aborts with AggregationFailedError.
func (a *Aggregator) FetchAll(ctx context.Context, userID uuid.UUID) (journey.Snapshot, error) {
	var snap journey.Snapshot

	g, gCtx := errgroup.WithContext(ctx)

	// The flags read is the only fail-fast one: returning its error
	// cancels the siblings and fails the whole aggregation.
	g.Go(func() error {
		flags, err := a.store.GetJourneyState(gCtx, userID)
		if err != nil {
			return &AggregationFailedError{UserID: userID, Err: err}
		}
		snap.Flags = flags
		return nil
	})

	g.Go(func() error {
		snap.TermAchievement = warnOn(gCtx, userID, "term achievement", func(c context.Context) (types.TermAchievement, error) {
			return a.store.GetTermAchievement(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.Goal = warnOn(gCtx, userID, "user goal", func(c context.Context) (*types.UserGoal, error) {
			return a.store.GetUserGoal(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.CareerAdvice = warnOn(gCtx, userID, "career advice", func(c context.Context) (*types.CareerAdvice, error) {
			return a.store.GetCareerAdvice(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.SkillValidation = warnOn(gCtx, userID, "skill validation", func(c context.Context) (*types.SkillValidation, error) {
			return a.store.GetSkillValidation(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.LearningJourneys = warnOn(gCtx, userID, "learning journeys", func(c context.Context) ([]types.LearningJourney, error) {
			return a.store.ListLearningJourneys(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.Projects = warnOn(gCtx, userID, "projects", func(c context.Context) ([]types.ProjectIdea, error) {
			return a.store.ListProjects(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.ProjectPlan = warnOn(gCtx, userID, "project plan", func(c context.Context) (*types.ProjectPlan, error) {
			return a.store.GetProjectPlan(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.Resumes = warnOn(gCtx, userID, "resume versions", func(c context.Context) ([]types.ResumeVersion, error) {
			return a.store.ListResumeVersions(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.Jobs = warnOn(gCtx, userID, "job recommendations", func(c context.Context) ([]types.JobRecommendation, error) {
			return a.store.ListJobRecommendations(c, userID)
		})
		return nil
	})
	g.Go(func() error {
		snap.InterviewPreps = warnOn(gCtx, userID, "interview preps", func(c context.Context) ([]types.InterviewPreparation, error) {
			return a.store.ListInterviewPreps(c, userID)
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return journey.Snapshot{}, err
	}
	return snap, nil
}

// warnOn runs one non-critical read, logging and returning the zero value
// on failure so one unavailable domain never aborts the aggregation.
func warnOn[T any](ctx context.Context, userID uuid.UUID, domain string, fetch func(context.Context) (T, error)) T {
	v, err := fetch(ctx)
	if err != nil {
		log.Printf("Warning: failed to fetch %s for user %s: %v", domain, userID, err)
		var zero T
		return zero
	}
	return v
}

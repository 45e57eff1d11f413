// Package engine wires storage to the ranking and analytics core.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobboard/internal/analytics"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/ranking"
	"github.com/jonathan/jobboard/internal/types"
)

// Store is the data-access contract the engine reads from. Lookups of
// absent rows return nil with a nil error.
type Store interface {
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	ListJobPool(ctx context.Context, filter types.JobFilter) ([]types.JobPosting, error)
	ListApplications(ctx context.Context, scope types.AnalyticsScope, since time.Time) ([]types.ApplicationRecord, error)
	CountPopulation(ctx context.Context, scope types.AnalyticsScope) (types.Population, error)
}

// Options configures an Engine.
type Options struct {
	CampusLimit  int
	GeneralLimit int
	Strategy     string // default score strategy name
	WindowMonths int
	RecentLimit  int
	Now          func() time.Time
}

// Engine answers opportunity, match and analytics queries.
type Engine struct {
	store  Store
	ranker *ranking.Ranker
	opts   Options
	logger *zap.Logger
}

// New creates an Engine. It fails when the default strategy is unknown.
func New(store Store, opts Options, log *zap.Logger) (*Engine, error) {
	strategy, err := ranking.StrategyByName(opts.Strategy)
	if err != nil {
		return nil, err
	}
	if opts.WindowMonths <= 0 {
		opts.WindowMonths = analytics.DefaultWindowMonths
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = analytics.DefaultRecentLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ranker := ranking.NewRanker(ranking.Options{
		CampusLimit:  opts.CampusLimit,
		GeneralLimit: opts.GeneralLimit,
		Strategy:     strategy,
	})
	return &Engine{
		store:  store,
		ranker: ranker,
		opts:   opts,
		logger: logger.WithFields(log, zap.String("component", "engine")),
	}, nil
}

// Opportunities builds the ranked feed for a candidate.
//
// The three tier pools are fetched concurrently and merged before ranking:
// company jobs requiring any of the candidate's skills, the newest on-campus
// jobs of the candidate's college, and the newest company jobs as fallback.
func (e *Engine) Opportunities(ctx context.Context, candidateID uuid.UUID) (*types.RankedFeed, error) {
	profile, err := e.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &types.NotFoundError{Kind: "candidate", ID: candidateID.String()}
	}

	candidate := ranking.NewCandidate(profile)
	filters := e.poolFilters(candidate)
	pools := make([][]types.JobPosting, len(filters))

	g, gCtx := errgroup.WithContext(ctx)
	for i, filter := range filters {
		g.Go(func() error {
			jobs, err := e.store.ListJobPool(gCtx, filter)
			if err != nil {
				return fmt.Errorf("failed to fetch %s job pool: %w", filter.Type, err)
			}
			pools[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pool []types.JobPosting
	for _, jobs := range pools {
		pool = append(pool, jobs...)
	}

	feed, err := e.ranker.Rank(profile, pool)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("ranked opportunities",
		zap.String(logger.FieldCandidateID, candidateID.String()),
		zap.Int("pool", len(pool)),
		zap.String("strategy", string(feed.SearchStrategy)),
		zap.Int("skills_based", feed.Breakdown.SkillsBased),
		zap.Int("on_campus", feed.Breakdown.OnCampus),
		zap.Int("general", feed.Breakdown.General),
	)
	return feed, nil
}

func (e *Engine) poolFilters(candidate *ranking.Candidate) []types.JobFilter {
	campusLimit, generalLimit := e.ranker.Limits()

	filters := []types.JobFilter{{Type: types.JobTypeCompany, Limit: generalLimit}}
	if keys := candidate.SkillSet.Keys(); len(keys) > 0 {
		filters = append(filters, types.JobFilter{Type: types.JobTypeCompany, Skills: keys})
	}
	if candidate.CollegeAffiliation != "" {
		filters = append(filters, types.JobFilter{
			Type:    types.JobTypeOnCampus,
			College: candidate.CollegeAffiliation,
			Limit:   campusLimit,
		})
	}
	return filters
}

// Score evaluates one job against one candidate. An empty strategy name
// selects the engine default.
func (e *Engine) Score(ctx context.Context, jobID, candidateID uuid.UUID, strategyName string) (*types.MatchResult, error) {
	strategy := e.ranker.Strategy()
	if strategyName != "" {
		var err error
		if strategy, err = ranking.StrategyByName(strategyName); err != nil {
			return nil, err
		}
	}

	var job *types.JobPosting
	var profile *types.CandidateProfile

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = e.store.GetJobPosting(gCtx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = e.store.GetCandidate(gCtx, candidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if job == nil {
		return nil, &types.NotFoundError{Kind: "job", ID: jobID.String()}
	}
	if profile == nil {
		return nil, &types.NotFoundError{Kind: "candidate", ID: candidateID.String()}
	}

	result, err := ranking.Evaluate(strategy, job, profile)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("scored match",
		zap.String(logger.FieldJobID, jobID.String()),
		zap.String(logger.FieldCandidateID, candidateID.String()),
		zap.String("strategy", result.Strategy),
		zap.Float64("score", result.Score),
	)
	return result, nil
}

// Analytics summarizes the application history of a scope. Months of zero
// selects the configured window. Since bounds the history fetch; the zero
// time means all history.
func (e *Engine) Analytics(ctx context.Context, scope types.AnalyticsScope, months int, since time.Time) (*types.AnalyticsSummary, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if months < 0 {
		return nil, &types.InvalidInputError{Field: "months", Message: "must not be negative"}
	}
	if months == 0 {
		months = e.opts.WindowMonths
	}

	var apps []types.ApplicationRecord
	var population types.Population

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		apps, err = e.store.ListApplications(gCtx, scope, since)
		return err
	})
	g.Go(func() error {
		var err error
		population, err = e.store.CountPopulation(gCtx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := analytics.Aggregate(apps,
		analytics.Window{Months: months, Now: e.opts.Now()},
		analytics.Options{
			RecentLimit:      e.opts.RecentLimit,
			Population:       population,
			IncludePlacement: scope.Kind == types.ScopeCollege,
		},
	)

	e.logger.Debug("aggregated analytics",
		zap.String(logger.FieldScope, string(scope.Kind)),
		zap.String(logger.FieldScopeID, scope.ID),
		zap.Int("applications", summary.TotalApplications),
		zap.Int("months", months),
	)
	return summary, nil
}

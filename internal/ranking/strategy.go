package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// Strategy names
const (
	StrategySkills    = "skills"
	StrategyComposite = "composite"
)

// ScoreStrategy computes a 0-100 compatibility score for one job and one candidate.
type ScoreStrategy interface {
	Name() string
	Score(job *types.JobPosting, candidate *Candidate) float64
}

// SkillStrategy scores by proficiency-weighted skill overlap only.
type SkillStrategy struct{}

// Name implements ScoreStrategy.
func (SkillStrategy) Name() string { return StrategySkills }

// Score implements ScoreStrategy.
func (SkillStrategy) Score(job *types.JobPosting, candidate *Candidate) float64 {
	return ScoreSkills(job.RequiredSkills, candidate.SkillSet)
}

// CompositeStrategy scores skills, experience and location as equal point buckets.
type CompositeStrategy struct{}

// Name implements ScoreStrategy.
func (CompositeStrategy) Name() string { return StrategyComposite }

// Score implements ScoreStrategy.
func (CompositeStrategy) Score(job *types.JobPosting, candidate *Candidate) float64 {
	return ScoreMatch(job, candidate)
}

// StrategyNames lists the registered strategy names.
func StrategyNames() []string {
	return []string{StrategySkills, StrategyComposite}
}

// StrategyByName resolves a strategy. An empty name selects the skill strategy.
func StrategyByName(name string) (ScoreStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategySkills:
		return SkillStrategy{}, nil
	case StrategyComposite:
		return CompositeStrategy{}, nil
	default:
		return nil, &types.InvalidInputError{
			Field:   "strategy",
			Message: fmt.Sprintf("unknown strategy %q (expected one of %s)", name, strings.Join(StrategyNames(), ", ")),
		}
	}
}

// Evaluate scores one job for one candidate and reports the matched skills
// and the composite breakdown alongside the strategy's score.
func Evaluate(strategy ScoreStrategy, job *types.JobPosting, profile *types.CandidateProfile) (*types.MatchResult, error) {
	if job == nil {
		return nil, &types.NotFoundError{Kind: "job", ID: "(nil)"}
	}
	if profile == nil {
		return nil, &types.NotFoundError{Kind: "candidate", ID: "(nil)"}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if job.MinExperience != nil && *job.MinExperience < 0 {
		return nil, &types.InvalidInputError{Field: "min_experience", Message: "must be non-negative"}
	}
	if strategy == nil {
		strategy = SkillStrategy{}
	}

	candidate := NewCandidate(profile)
	_, breakdown := compositeScore(job, candidate)

	return &types.MatchResult{
		JobID:          job.ID,
		CandidateID:    profile.ID,
		Strategy:       strategy.Name(),
		Score:          strategy.Score(job, candidate),
		MatchingSkills: candidate.SkillSet.Matching(job.RequiredSkills),
		Breakdown:      breakdown,
	}, nil
}

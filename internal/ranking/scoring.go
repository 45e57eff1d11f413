// Package ranking scores candidates against job postings and builds the tiered opportunity feed.
package ranking

import (
	"math"

	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/types"
)

// Candidate pairs a profile with its canonical skill set so that the set is
// built once per request rather than once per job.
type Candidate struct {
	*types.CandidateProfile
	SkillSet skills.Set
}

// NewCandidate builds the canonical skill set for a profile.
func NewCandidate(profile *types.CandidateProfile) *Candidate {
	return &Candidate{
		CandidateProfile: profile,
		SkillSet:         skills.NewSet(profile.Skills),
	}
}

// ScoreSkills computes the proficiency-weighted skill score in [0, 100].
//
// Each required skill held by the candidate earns its level weight; the
// maximum is every required skill held at the top level. A job without
// required skills scores 0.
func ScoreSkills(requiredSkills []string, candidateSkills skills.Set) float64 {
	maxAttainable := float64(len(requiredSkills)) * types.MaxSkillWeight
	if maxAttainable <= 0 {
		return 0
	}

	earned := 0.0
	for _, name := range requiredSkills {
		if level, ok := candidateSkills.Level(name); ok {
			earned += level.Weight()
		}
	}

	return math.Round(earned / maxAttainable * 100)
}

// ScoreMatch computes the composite skills/experience/location score in [0, 100].
func ScoreMatch(job *types.JobPosting, candidate *Candidate) float64 {
	score, _ := compositeScore(job, candidate)
	return score
}

// compositeScore awards one point per matched required skill, one for
// meeting the experience threshold and one for a location match. The
// experience and location slots always count toward the total, so the
// denominator is never below 2.
func compositeScore(job *types.JobPosting, candidate *Candidate) (float64, types.MatchBreakdown) {
	var b types.MatchBreakdown

	for _, name := range job.RequiredSkills {
		if candidate.SkillSet.Has(name) {
			b.SkillsEarned++
		}
	}
	b.SkillsNeeded = len(job.RequiredSkills)

	b.ExperienceMet = candidate.ExperienceYears >= job.MinExperienceYears()
	b.LocationMet = candidate.Location.Matches(job.PreferredLocation)

	earned := b.SkillsEarned
	if b.ExperienceMet {
		earned++
	}
	if b.LocationMet {
		earned++
	}
	needed := b.SkillsNeeded + 2

	return float64(earned) / float64(needed) * 100, b
}

package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/types"
)

// Default tier caps
const (
	DefaultCampusLimit  = 5
	DefaultGeneralLimit = 10
)

// Options configures a Ranker.
type Options struct {
	CampusLimit  int           // maximum on-campus opportunities (default 5)
	GeneralLimit int           // maximum general fallback opportunities (default 10)
	Strategy     ScoreStrategy // per-opportunity match score (default SkillStrategy)
}

// Ranker builds tiered opportunity feeds. It holds no mutable state and is
// safe for concurrent use.
type Ranker struct {
	opts Options
}

// NewRanker creates a Ranker, filling unset options with defaults.
func NewRanker(opts Options) *Ranker {
	if opts.CampusLimit <= 0 {
		opts.CampusLimit = DefaultCampusLimit
	}
	if opts.GeneralLimit <= 0 {
		opts.GeneralLimit = DefaultGeneralLimit
	}
	if opts.Strategy == nil {
		opts.Strategy = SkillStrategy{}
	}
	return &Ranker{opts: opts}
}

// Strategy returns the score strategy used for match scores.
func (r *Ranker) Strategy() ScoreStrategy {
	return r.opts.Strategy
}

// Limits returns the effective campus and general tier caps.
func (r *Ranker) Limits() (campus, general int) {
	return r.opts.CampusLimit, r.opts.GeneralLimit
}

// Rank builds the feed for a candidate over a job pool.
//
// Tiers are filled in priority order and concatenated without re-sorting:
// skills-based company jobs (most matching skills first, then newest),
// on-campus jobs of the candidate's college (newest, capped), and, only when
// no skills-based job matched, the newest company jobs (capped).
func (r *Ranker) Rank(profile *types.CandidateProfile, pool []types.JobPosting) (*types.RankedFeed, error) {
	if profile == nil {
		return nil, &types.NotFoundError{Kind: "candidate", ID: "(nil)"}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	candidate := NewCandidate(profile)
	jobs := uniqueJobs(pool)

	skillsTier := r.skillsTier(candidate, jobs)
	campusTier := r.campusTier(candidate, jobs)
	var generalTier []types.ScoredOpportunity
	if len(skillsTier) == 0 {
		generalTier = r.generalTier(candidate, jobs)
	}

	opportunities := make([]types.ScoredOpportunity, 0, len(skillsTier)+len(campusTier)+len(generalTier))
	opportunities = append(opportunities, skillsTier...)
	opportunities = append(opportunities, campusTier...)
	opportunities = append(opportunities, generalTier...)

	breakdown := types.TierBreakdown{
		SkillsBased: len(skillsTier),
		OnCampus:    len(campusTier),
		General:     len(generalTier),
	}

	feed := &types.RankedFeed{
		Opportunities:  opportunities,
		TotalCount:     len(opportunities),
		SearchStrategy: searchStrategy(breakdown),
		ScoreStrategy:  r.opts.Strategy.Name(),
		UserSkills:     candidate.SkillSet.Keys(),
		HasUserSkills:  candidate.SkillSet.Len() > 0,
		Breakdown:      breakdown,
		Message:        feedMessage(len(opportunities), breakdown),
	}

	for _, opp := range skillsTier {
		feed.SkillMatchDetails = append(feed.SkillMatchDetails, types.SkillMatchDetail{
			JobID:               opp.ID,
			Title:               opp.Title,
			MatchingSkills:      opp.MatchingSkills,
			MatchingSkillsCount: opp.MatchingSkillsCount,
			TotalRequiredSkills: len(opp.RequiredSkills),
		})
	}

	return feed, nil
}

func (r *Ranker) skillsTier(candidate *Candidate, jobs []types.JobPosting) []types.ScoredOpportunity {
	if candidate.SkillSet.Len() == 0 {
		return nil
	}

	var tier []types.ScoredOpportunity
	for i := range jobs {
		job := &jobs[i]
		if job.Type != types.JobTypeCompany {
			continue
		}
		matching := candidate.SkillSet.Matching(job.RequiredSkills)
		if len(matching) == 0 {
			continue
		}
		tier = append(tier, r.score(job, candidate, matching, types.TierSkillsBased))
	}

	sort.SliceStable(tier, func(i, j int) bool {
		if tier[i].MatchingSkillsCount != tier[j].MatchingSkillsCount {
			return tier[i].MatchingSkillsCount > tier[j].MatchingSkillsCount
		}
		return newerFirst(&tier[i].JobPosting, &tier[j].JobPosting)
	})
	return tier
}

func (r *Ranker) campusTier(candidate *Candidate, jobs []types.JobPosting) []types.ScoredOpportunity {
	college := candidate.CollegeAffiliation
	if strings.TrimSpace(college) == "" {
		return nil
	}

	var tier []types.ScoredOpportunity
	for i := range jobs {
		job := &jobs[i]
		if job.Type != types.JobTypeOnCampus || job.CollegeAffiliation != college {
			continue
		}
		tier = append(tier, r.score(job, candidate, candidate.SkillSet.Matching(job.RequiredSkills), types.TierOnCampus))
	}

	sortNewestFirst(tier)
	if len(tier) > r.opts.CampusLimit {
		tier = tier[:r.opts.CampusLimit]
	}
	return tier
}

func (r *Ranker) generalTier(candidate *Candidate, jobs []types.JobPosting) []types.ScoredOpportunity {
	var tier []types.ScoredOpportunity
	for i := range jobs {
		job := &jobs[i]
		if job.Type != types.JobTypeCompany {
			continue
		}
		tier = append(tier, r.score(job, candidate, candidate.SkillSet.Matching(job.RequiredSkills), types.TierGeneral))
	}

	sortNewestFirst(tier)
	if len(tier) > r.opts.GeneralLimit {
		tier = tier[:r.opts.GeneralLimit]
	}
	return tier
}

func (r *Ranker) score(job *types.JobPosting, candidate *Candidate, matching []string, tier types.Tier) types.ScoredOpportunity {
	if matching == nil {
		matching = []string{}
	}
	return types.ScoredOpportunity{
		JobPosting:          *job,
		MatchScore:          r.opts.Strategy.Score(job, candidate),
		MatchingSkills:      matching,
		MatchingSkillsCount: len(matching),
		Tier:                tier,
	}
}

// uniqueJobs drops repeated postings, keeping the first occurrence.
// Postings without an ID are always kept.
func uniqueJobs(pool []types.JobPosting) []types.JobPosting {
	out := make([]types.JobPosting, 0, len(pool))
	seen := make(map[uuid.UUID]bool, len(pool))
	for _, job := range pool {
		if job.ID != uuid.Nil {
			if seen[job.ID] {
				continue
			}
			seen[job.ID] = true
		}
		out = append(out, job)
	}
	return out
}

// newerFirst orders by creation time descending, then by ID for a total order.
func newerFirst(a, b *types.JobPosting) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

func sortNewestFirst(tier []types.ScoredOpportunity) {
	sort.SliceStable(tier, func(i, j int) bool {
		return newerFirst(&tier[i].JobPosting, &tier[j].JobPosting)
	})
}

func searchStrategy(b types.TierBreakdown) types.Tier {
	switch {
	case b.SkillsBased > 0:
		return types.TierSkillsBased
	case b.OnCampus > 0:
		return types.TierOnCampus
	default:
		return types.TierGeneral
	}
}

func feedMessage(total int, b types.TierBreakdown) string {
	var parts []string
	if b.SkillsBased > 0 {
		parts = append(parts, fmt.Sprintf("%d skills-matched", b.SkillsBased))
	}
	if b.OnCampus > 0 {
		parts = append(parts, fmt.Sprintf("%d on-campus", b.OnCampus))
	}
	if b.General > 0 {
		parts = append(parts, fmt.Sprintf("%d general", b.General))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Found %d opportunities", total)
	}
	return fmt.Sprintf("Found %d opportunities: %s", total, strings.Join(parts, ", "))
}

package ranking

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func job(title string, jobType types.JobType, daysAgo int, required ...string) types.JobPosting {
	return types.JobPosting{
		ID:             uuid.NewSHA1(uuid.NameSpaceOID, []byte(title)),
		Title:          title,
		Type:           jobType,
		RequiredSkills: required,
		CreatedAt:      baseTime.AddDate(0, 0, -daysAgo),
	}
}

func campusJob(title, college string, daysAgo int) types.JobPosting {
	j := job(title, types.JobTypeOnCampus, daysAgo)
	j.CollegeAffiliation = college
	return j
}

func titles(opps []types.ScoredOpportunity) []string {
	out := make([]string, 0, len(opps))
	for _, o := range opps {
		out = append(out, o.Title)
	}
	return out
}

func TestRank_SkillsTierOrdering(t *testing.T) {
	candidate := &types.CandidateProfile{
		Skills: types.SkillList{
			{Name: "React", Level: types.LevelAdvance},
			{Name: "Node.js", Level: types.LevelMid},
			{Name: "SQL", Level: types.LevelBeginner},
		},
	}
	pool := []types.JobPosting{
		job("one-match-old", types.JobTypeCompany, 10, "react"),
		job("two-match", types.JobTypeCompany, 5, "REACT", "node.js", "Go"),
		job("one-match-new", types.JobTypeCompany, 1, " sql "),
		job("no-match", types.JobTypeCompany, 0, "Rust"),
		job("external-match", types.JobTypeExternal, 0, "React"),
	}

	feed, err := NewRanker(Options{}).Rank(candidate, pool)
	require.NoError(t, err)

	assert.Equal(t, []string{"two-match", "one-match-new", "one-match-old"}, titles(feed.Opportunities))
	assert.Equal(t, types.TierSkillsBased, feed.SearchStrategy)
	assert.Equal(t, types.TierBreakdown{SkillsBased: 3}, feed.Breakdown)
	assert.Equal(t, []string{"REACT", "node.js"}, feed.Opportunities[0].MatchingSkills)
	assert.Equal(t, 2, feed.Opportunities[0].MatchingSkillsCount)
	for _, o := range feed.Opportunities {
		assert.Equal(t, types.TierSkillsBased, o.Tier)
	}

	require.Len(t, feed.SkillMatchDetails, 3)
	assert.Equal(t, "two-match", feed.SkillMatchDetails[0].Title)
	assert.Equal(t, 3, feed.SkillMatchDetails[0].TotalRequiredSkills)
	assert.Equal(t, "Found 3 opportunities: 3 skills-matched", feed.Message)
}

func TestRank_NoGeneralTierWhenSkillsMatch(t *testing.T) {
	candidate := &types.CandidateProfile{Skills: types.SkillList{{Name: "Go", Level: types.LevelMid}}}
	pool := []types.JobPosting{job("go-job", types.JobTypeCompany, 3, "Go")}
	for i := 0; i < 15; i++ {
		pool = append(pool, job(fmt.Sprintf("filler-%d", i), types.JobTypeCompany, i, "COBOL"))
	}

	feed, err := NewRanker(Options{}).Rank(candidate, pool)
	require.NoError(t, err)

	assert.Equal(t, 0, feed.Breakdown.General)
	assert.Equal(t, []string{"go-job"}, titles(feed.Opportunities))
}

func TestRank_GeneralFallback(t *testing.T) {
	pool := []types.JobPosting{campusJob("campus", "COEP", 0), job("external", types.JobTypeExternal, 0)}
	for i := 0; i < 12; i++ {
		pool = append(pool, job(fmt.Sprintf("company-%02d", i), types.JobTypeCompany, i, "COBOL"))
	}

	t.Run("candidate without skills", func(t *testing.T) {
		feed, err := NewRanker(Options{}).Rank(&types.CandidateProfile{}, pool)
		require.NoError(t, err)

		assert.Equal(t, types.TierGeneral, feed.SearchStrategy)
		assert.False(t, feed.HasUserSkills)
		require.Len(t, feed.Opportunities, DefaultGeneralLimit)
		assert.Equal(t, "company-00", feed.Opportunities[0].Title)
		assert.Equal(t, "company-09", feed.Opportunities[9].Title)
		for _, o := range feed.Opportunities {
			assert.Equal(t, types.TierGeneral, o.Tier)
			assert.NotNil(t, o.MatchingSkills)
		}
		assert.Empty(t, feed.SkillMatchDetails)
	})

	t.Run("candidate whose skills match nothing", func(t *testing.T) {
		candidate := &types.CandidateProfile{Skills: types.SkillList{{Name: "Haskell", Level: types.LevelAdvance}}}
		feed, err := NewRanker(Options{GeneralLimit: 3}).Rank(candidate, pool)
		require.NoError(t, err)

		assert.True(t, feed.HasUserSkills)
		assert.Equal(t, []string{"haskell"}, feed.UserSkills)
		assert.Equal(t, []string{"company-00", "company-01", "company-02"}, titles(feed.Opportunities))
		assert.Equal(t, "Found 3 opportunities: 3 general", feed.Message)
	})
}

func TestRank_OnCampusTier(t *testing.T) {
	candidate := &types.CandidateProfile{
		Skills:             types.SkillList{{Name: "Go", Level: types.LevelMid}},
		CollegeAffiliation: "COEP",
	}
	pool := []types.JobPosting{
		job("go-job", types.JobTypeCompany, 20, "Go"),
		campusJob("other-college", "VJTI", 0),
		campusJob("coep-lowercase", "coep", 0),
	}
	for i := 0; i < 7; i++ {
		pool = append(pool, campusJob(fmt.Sprintf("coep-%d", i), "COEP", i))
	}

	feed, err := NewRanker(Options{}).Rank(candidate, pool)
	require.NoError(t, err)

	assert.Equal(t, []string{"go-job", "coep-0", "coep-1", "coep-2", "coep-3", "coep-4"}, titles(feed.Opportunities))
	assert.Equal(t, types.TierBreakdown{SkillsBased: 1, OnCampus: DefaultCampusLimit}, feed.Breakdown)
	assert.Equal(t, types.TierSkillsBased, feed.SearchStrategy)
	assert.Equal(t, types.TierOnCampus, feed.Opportunities[1].Tier)
	assert.Equal(t, "Found 6 opportunities: 1 skills-matched, 5 on-campus", feed.Message)
}

func TestRank_OnCampusStrategyLabel(t *testing.T) {
	candidate := &types.CandidateProfile{CollegeAffiliation: "COEP"}
	pool := []types.JobPosting{
		campusJob("campus", "COEP", 1),
		job("company", types.JobTypeCompany, 0),
	}

	feed, err := NewRanker(Options{}).Rank(candidate, pool)
	require.NoError(t, err)

	// campus tier comes before the fallback tier in the output
	assert.Equal(t, []string{"campus", "company"}, titles(feed.Opportunities))
	assert.Equal(t, types.TierOnCampus, feed.SearchStrategy)
}

func TestRank_EmptyPool(t *testing.T) {
	candidate := &types.CandidateProfile{
		Skills:             types.SkillList{{Name: "Go"}},
		CollegeAffiliation: "COEP",
	}

	feed, err := NewRanker(Options{}).Rank(candidate, nil)
	require.NoError(t, err)
	assert.Empty(t, feed.Opportunities)
	assert.NotNil(t, feed.Opportunities)
	assert.Equal(t, 0, feed.TotalCount)
	assert.Equal(t, types.TierGeneral, feed.SearchStrategy)
	assert.Equal(t, "Found 0 opportunities", feed.Message)
}

func TestRank_UnverifiedSkillCountsForMembership(t *testing.T) {
	candidate := &types.CandidateProfile{Skills: types.SkillList{{Name: "Go", Level: types.LevelUnverified}}}
	pool := []types.JobPosting{job("go-job", types.JobTypeCompany, 0, "Go")}

	feed, err := NewRanker(Options{}).Rank(candidate, pool)
	require.NoError(t, err)
	require.Len(t, feed.Opportunities, 1)
	assert.Equal(t, types.TierSkillsBased, feed.Opportunities[0].Tier)
	assert.Equal(t, 0.0, feed.Opportunities[0].MatchScore)
}

func TestRank_MatchScoreUsesStrategy(t *testing.T) {
	candidate := &types.CandidateProfile{Skills: types.SkillList{{Name: "Go", Level: types.LevelAdvance}}}
	pool := []types.JobPosting{job("go-job", types.JobTypeCompany, 0, "Go")}

	skillFeed, err := NewRanker(Options{}).Rank(candidate, pool)
	require.NoError(t, err)
	assert.Equal(t, 100.0, skillFeed.Opportunities[0].MatchScore)
	assert.Equal(t, StrategySkills, skillFeed.ScoreStrategy)

	compositeFeed, err := NewRanker(Options{Strategy: CompositeStrategy{}}).Rank(candidate, pool)
	require.NoError(t, err)
	assert.InDelta(t, 200.0/3.0, compositeFeed.Opportunities[0].MatchScore, 1e-9)
	assert.Equal(t, StrategyComposite, compositeFeed.ScoreStrategy)
}

func TestRank_DeduplicatesPool(t *testing.T) {
	candidate := &types.CandidateProfile{Skills: types.SkillList{{Name: "Go"}}}
	j := job("go-job", types.JobTypeCompany, 0, "Go")

	feed, err := NewRanker(Options{}).Rank(candidate, []types.JobPosting{j, j, j})
	require.NoError(t, err)
	assert.Len(t, feed.Opportunities, 1)
}

func TestRank_Errors(t *testing.T) {
	_, err := NewRanker(Options{}).Rank(nil, nil)
	assert.True(t, types.IsNotFound(err))

	_, err = NewRanker(Options{}).Rank(&types.CandidateProfile{ExperienceYears: -1}, nil)
	assert.True(t, types.IsInvalidInput(err))
}

func TestRank_Idempotent(t *testing.T) {
	candidate := &types.CandidateProfile{
		Skills:             types.SkillList{{Name: "Go", Level: types.LevelMid}, {Name: "SQL"}},
		CollegeAffiliation: "COEP",
	}
	// identical timestamps force the ID tie-break
	pool := []types.JobPosting{
		job("a", types.JobTypeCompany, 0, "Go"),
		job("b", types.JobTypeCompany, 0, "SQL"),
		job("c", types.JobTypeCompany, 0, "Go", "SQL"),
		campusJob("d", "COEP", 0),
		campusJob("e", "COEP", 0),
	}

	ranker := NewRanker(Options{})
	first, err := ranker.Rank(candidate, pool)
	require.NoError(t, err)
	second, err := ranker.Rank(candidate, pool)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, "c", first.Opportunities[0].Title)
}

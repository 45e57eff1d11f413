package types

import "github.com/google/uuid"

// Tier identifies which retrieval strategy produced an opportunity.
type Tier string

// Tier constants, in priority order
const (
	TierSkillsBased Tier = "skills-based"
	TierOnCampus    Tier = "on-campus"
	TierGeneral     Tier = "general"
)

// ScoredOpportunity is a job posting enriched with match metadata.
// It is derived per request and never persisted.
type ScoredOpportunity struct {
	JobPosting
	MatchScore          float64  `json:"match_score"`
	MatchingSkills      []string `json:"matching_skills"`
	MatchingSkillsCount int      `json:"matching_skills_count"`
	Tier                Tier     `json:"tier"`
}

// TierBreakdown counts opportunities per tier.
type TierBreakdown struct {
	SkillsBased int `json:"skills_based"`
	OnCampus    int `json:"on_campus"`
	General     int `json:"general"`
}

// SkillMatchDetail summarizes the skill overlap of one skills-based opportunity.
type SkillMatchDetail struct {
	JobID               uuid.UUID `json:"job_id"`
	Title               string    `json:"title,omitempty"`
	MatchingSkills      []string  `json:"matching_skills"`
	MatchingSkillsCount int       `json:"matching_skills_count"`
	TotalRequiredSkills int       `json:"total_required_skills"`
}

// RankedFeed is the prioritized opportunity feed for one candidate.
type RankedFeed struct {
	Opportunities     []ScoredOpportunity `json:"opportunities"`
	TotalCount        int                 `json:"total_count"`
	SearchStrategy    Tier                `json:"search_strategy"`
	ScoreStrategy     string              `json:"score_strategy"`
	UserSkills        []string            `json:"user_skills"`
	HasUserSkills     bool                `json:"has_user_skills"`
	Breakdown         TierBreakdown       `json:"breakdown"`
	SkillMatchDetails []SkillMatchDetail  `json:"skill_match_details,omitempty"`
	Message           string              `json:"message"`
}

// MatchBreakdown shows how a composite score was assembled.
type MatchBreakdown struct {
	SkillsEarned  int  `json:"skills_earned"`
	SkillsNeeded  int  `json:"skills_needed"`
	ExperienceMet bool `json:"experience_met"`
	LocationMet   bool `json:"location_met"`
}

// MatchResult is the score of one job against one candidate.
type MatchResult struct {
	JobID          uuid.UUID      `json:"job_id"`
	CandidateID    uuid.UUID      `json:"candidate_id"`
	Strategy       string         `json:"strategy"`
	Score          float64        `json:"score"`
	MatchingSkills []string       `json:"matching_skills"`
	Breakdown      MatchBreakdown `json:"breakdown"`
}

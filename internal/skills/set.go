package skills

import (
	"sort"

	"github.com/jonathan/jobboard/internal/types"
)

// Set maps canonical skill keys to proficiency levels.
// The zero value is an empty set.
type Set struct {
	levels map[string]types.SkillLevel
}

// NewSet builds a Set from skill records. Records with empty names are
// dropped; duplicate keys keep the highest-weighted level.
func NewSet(records []types.SkillRecord) Set {
	levels := make(map[string]types.SkillLevel, len(records))
	for _, rec := range records {
		key := Normalize(rec.Name)
		if key == "" {
			continue
		}
		level := rec.Level
		if level == "" {
			level = types.LevelUnverified
		}
		if existing, ok := levels[key]; ok && existing.Weight() >= level.Weight() {
			continue
		}
		levels[key] = level
	}
	return Set{levels: levels}
}

// Level returns the level recorded for a skill name, in any spelling.
func (s Set) Level(name string) (types.SkillLevel, bool) {
	level, ok := s.levels[Normalize(name)]
	return level, ok
}

// Has reports whether the skill is recorded, regardless of level.
func (s Set) Has(name string) bool {
	_, ok := s.Level(name)
	return ok
}

// Len returns the number of distinct skills.
func (s Set) Len() int {
	return len(s.levels)
}

// Keys returns the canonical keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.levels))
	for k := range s.levels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Matching returns the required skills present in the set, keeping the
// caller's order and spelling and dropping canonical duplicates.
func (s Set) Matching(required []string) []string {
	matched := make([]string, 0, len(required))
	seen := make(map[string]bool, len(required))
	for _, name := range required {
		key := Normalize(name)
		if key == "" || seen[key] {
			continue
		}
		if _, ok := s.levels[key]; ok {
			seen[key] = true
			matched = append(matched, name)
		}
	}
	return matched
}

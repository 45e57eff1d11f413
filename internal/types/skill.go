// Package types provides type definitions for structured data used throughout the job board matching engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SkillLevel is the verified proficiency of a candidate skill.
type SkillLevel string

// Skill level constants
const (
	LevelUnverified SkillLevel = "unverified"
	LevelBeginner   SkillLevel = "beginner"
	LevelMid        SkillLevel = "mid"
	LevelAdvance    SkillLevel = "advance"
)

// MaxSkillWeight is the weight of the highest proficiency level.
const MaxSkillWeight = 1.5

// levelAliases maps accepted spellings to canonical levels
var levelAliases = map[string]SkillLevel{
	"unverified":   LevelUnverified,
	"beginner":     LevelBeginner,
	"mid":          LevelMid,
	"intermediate": LevelMid,
	"advance":      LevelAdvance,
	"advanced":     LevelAdvance,
	"adv":          LevelAdvance,
}

// ParseSkillLevel converts a level string to a SkillLevel.
// Unknown or empty values are treated as unverified.
func ParseSkillLevel(s string) SkillLevel {
	if level, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return LevelUnverified
}

// Weight returns the scoring weight of the level.
func (l SkillLevel) Weight() float64 {
	switch l {
	case LevelBeginner:
		return 0.5
	case LevelMid:
		return 1.0
	case LevelAdvance:
		return MaxSkillWeight
	default:
		return 0
	}
}

// UnmarshalJSON decodes a level string through ParseSkillLevel.
func (l *SkillLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("skill level must be a string: %w", err)
	}
	*l = ParseSkillLevel(s)
	return nil
}

// SkillRecord is a single skill held by a candidate.
type SkillRecord struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// SkillList is the decoded form of a candidate's skills.
//
// It accepts either a JSON array of SkillRecord or an object keyed by skill
// name whose values are a level string or an object with a "level" field.
type SkillList []SkillRecord

// UnmarshalJSON decodes both the array and the keyed-object representations.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var records []SkillRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to decode skill list: %w", err)
		}
		*s = records
		return nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return fmt.Errorf("skills must be an array or an object: %w", err)
	}

	records := make([]SkillRecord, 0, len(keyed))
	for name, raw := range keyed {
		var level string
		if err := json.Unmarshal(raw, &level); err != nil {
			var entry struct {
				Level string `json:"level"`
			}
			if err := json.Unmarshal(raw, &entry); err != nil {
				return fmt.Errorf("invalid entry for skill %q: %w", name, err)
			}
			level = entry.Level
		}
		records = append(records, SkillRecord{Name: name, Level: ParseSkillLevel(level)})
	}

	// map iteration order is random
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	*s = records
	return nil
}

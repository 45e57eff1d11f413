package skills

import (
	"testing"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNewSet_NormalizesAndDeduplicates(t *testing.T) {
	s := NewSet([]types.SkillRecord{
		{Name: " React ", Level: types.LevelBeginner},
		{Name: "react", Level: types.LevelAdvance},
		{Name: "REACT", Level: types.LevelMid},
		{Name: "", Level: types.LevelAdvance},
		{Name: "Go"},
	})

	assert.Equal(t, 2, s.Len())

	level, ok := s.Level("React")
	assert.True(t, ok)
	assert.Equal(t, types.LevelAdvance, level, "highest level wins")

	level, ok = s.Level("go")
	assert.True(t, ok)
	assert.Equal(t, types.LevelUnverified, level, "missing level is unverified")

	assert.False(t, s.Has(""))
	assert.Equal(t, []string{"go", "react"}, s.Keys())
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("go"))
	assert.Empty(t, s.Keys())
	assert.Empty(t, s.Matching([]string{"go"}))
}

func TestSet_Matching(t *testing.T) {
	s := NewSet([]types.SkillRecord{
		{Name: "react", Level: types.LevelAdvance},
		{Name: "node.js", Level: types.LevelBeginner},
	})

	got := s.Matching([]string{"Node.js", "Go", "React", " react", ""})
	assert.Equal(t, []string{"Node.js", "React"}, got, "job order and spelling kept, duplicates dropped")
}

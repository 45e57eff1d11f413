package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"React", "react"},
		{"  Node.js ", "node.js"},
		{"GO", "go"},
		{"Machine Learning", "machine learning"},
		{"\tSQL\n", "sql"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("React", " react "))
	assert.True(t, Equal("NODE.JS", "node.js"))
	assert.False(t, Equal("React", "ReactJS"))
	assert.False(t, Equal("", ""), "empty names never match")
	assert.False(t, Equal(" ", "Go"))
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Go", " go", "", "Rust", "RUST ", "Python"})
	assert.Equal(t, []string{"go", "rust", "python"}, got)
}

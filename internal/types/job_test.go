package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPosting_MinExperienceYears(t *testing.T) {
	j := &JobPosting{}
	assert.Equal(t, 0.0, j.MinExperienceYears())

	two := 2.0
	j.MinExperience = &two
	assert.Equal(t, 2.0, j.MinExperienceYears())
}

func TestJobPosting_Validate(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name      string
		job       JobPosting
		wantField string
	}{
		{"valid company job", JobPosting{Type: JobTypeCompany}, ""},
		{"valid on-campus job", JobPosting{Type: JobTypeOnCampus, CollegeAffiliation: "COEP"}, ""},
		{"missing type", JobPosting{}, "type"},
		{"unknown type", JobPosting{Type: "freelance"}, "type"},
		{"negative experience", JobPosting{Type: JobTypeCompany, MinExperience: &negative}, "min_experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ii *InvalidInputError
			require.ErrorAs(t, err, &ii)
			assert.Equal(t, tt.wantField, ii.Field)
		})
	}
}

func TestApplicationRecord_Validate(t *testing.T) {
	valid := &ApplicationRecord{Status: StatusHired}
	assert.NoError(t, valid.Validate())

	unknown := &ApplicationRecord{Status: "ghosted"}
	assert.True(t, IsInvalidInput(unknown.Validate()))

	tooHigh := 120.0
	outOfRange := &ApplicationRecord{Status: StatusApplied, MatchScore: &tooHigh}
	assert.True(t, IsInvalidInput(outOfRange.Validate()))
}

func TestStatusCounts_Add(t *testing.T) {
	var c StatusCounts
	for _, s := range AllStatuses {
		c.Add(s)
	}
	c.Add(StatusHired)
	c.Add("unknown")

	assert.Equal(t, StatusCounts{Applied: 1, Shortlisted: 1, Rejected: 1, Hired: 2}, c)
}

func TestErrors(t *testing.T) {
	nf := &NotFoundError{Kind: "candidate", ID: "abc"}
	assert.Equal(t, "candidate not found: abc", nf.Error())
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsInvalidInput(nf))

	ii := &InvalidInputError{Message: "bad"}
	assert.Equal(t, "invalid input: bad", ii.Error())
	ii.Field = "x"
	assert.Equal(t, "invalid input in x: bad", ii.Error())
}

package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/repository/common"
)

func TestBuildProfileWhere_Empty(t *testing.T) {
	where, args, err := buildProfileWhere(nil)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildProfileWhere_NumbersArguments(t *testing.T) {
	where, args, err := buildProfileWhere([]models.Condition{
		{Field: "location", Op: models.OpEq, Value: "Chicago, IL"},
		{Field: "skills", Op: models.OpContains, Values: []string{"Go", "SQL"}},
		{Field: "experience", Op: models.OpRange, From: 3, To: 5},
		{Field: "id", Op: models.OpIn, Values: []string{"1", "2"}},
	})
	require.NoError(t, err)

	assert.Equal(t, ` WHERE location = $1 AND skills && $2 AND jsonb_array_length(work_experiences) BETWEEN $3 AND $4 AND id = ANY($5)`, where)
	require.Len(t, args, 5)
	assert.Equal(t, "Chicago, IL", args[0])
	assert.Equal(t, pq.Array([]string{"Go", "SQL"}), args[1])
	assert.Equal(t, 3, args[2])
	assert.Equal(t, 5, args[3])
}

func TestBuildProfileWhere_RejectsUnknown(t *testing.T) {
	tests := []models.Condition{
		{Field: "password", Op: models.OpEq, Value: "x"},
		{Field: "skills", Op: models.OpEq, Value: "Go"},
		{Field: "name", Op: models.OpContains, Values: []string{"a"}},
		{Field: "availability", Op: models.OpIn, Values: []string{"a"}},
		{Field: "name", Op: "like", Value: "a"},
	}
	for _, cond := range tests {
		_, _, err := buildProfileWhere([]models.Condition{cond})
		assert.ErrorIs(t, err, common.ErrInvalidInput, "%+v", cond)
	}
}

func TestBuildProfileOrder(t *testing.T) {
	order, err := buildProfileOrder([]models.OrderBy{{Field: "submitted_at", Descending: true}})
	require.NoError(t, err)
	assert.Equal(t, ` ORDER BY submitted_at DESC NULLS LAST, id ASC`, order)

	order, err = buildProfileOrder(nil)
	require.NoError(t, err)
	assert.Equal(t, ` ORDER BY id ASC`, order)

	_, err = buildProfileOrder([]models.OrderBy{{Field: "salary"}})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestProfileRow_ToCandidate(t *testing.T) {
	row := profileRow{
		ID:                      "1",
		Name:                    "Sarah Chen",
		SubmittedAt:             sql.NullTime{Time: time.Date(2025, 1, 27, 14, 30, 22, 0, time.UTC), Valid: true},
		WorkAvailability:        pq.StringArray{"full-time"},
		AnnualSalaryExpectation: []byte(`{"full-time": "$165,000"}`),
		WorkExperiences:         []byte(`[{"company": "Google", "roleName": "Senior Software Engineer"}]`),
		Education:               []byte(`{"highest_level": "Master's Degree", "degrees": [{"degree": "Master's Degree", "subject": "Computer Science", "school": "Stanford University", "isTop50": true}]}`),
		Skills:                  pq.StringArray{"React"},
	}

	c, err := row.toCandidate()
	require.NoError(t, err)

	assert.Equal(t, "2025-01-27T14:30:22.000Z", c.SubmittedAt)
	assert.Equal(t, "$165,000", c.AnnualSalaryExpectation["full-time"])
	require.Len(t, c.WorkExperiences, 1)
	assert.Equal(t, "Google", c.WorkExperiences[0].Company)
	assert.Equal(t, "Master's Degree", c.Education.HighestLevel)
	require.Len(t, c.Education.Degrees, 1)
	assert.True(t, c.Education.Degrees[0].IsTop50)

	row.Education = []byte(`{broken`)
	_, err = row.toCandidate()
	assert.Error(t, err)
}

func TestProfileValues(t *testing.T) {
	values, err := profileValues(&models.Candidate{ID: "7", Name: "Ana", SubmittedAt: "2025-01-20T10:00:00.000Z"})
	require.NoError(t, err)
	require.Len(t, values, 11)

	assert.True(t, values[5].(sql.NullTime).Valid)
	assert.Equal(t, "{}", values[7])
	assert.Equal(t, "[]", values[8])

	_, err = profileValues(&models.Candidate{ID: "8"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

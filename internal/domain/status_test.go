package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, Status("ghosted").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusOrdering(t *testing.T) {
	ordered := []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Order(), ordered[i].Order())
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("interview")
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, s)

	_, err = ParseStatus("INTERVIEW")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}

func TestParseArtifactType(t *testing.T) {
	for _, raw := range []string{"cv", "cover_letter", "message"} {
		_, err := ParseArtifactType(raw)
		assert.NoError(t, err)
	}
	_, err := ParseArtifactType("resume")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestEnumHelpers(t *testing.T) {
	assert.True(t, ValidSeniority("principal"))
	assert.False(t, ValidSeniority("intern"))

	assert.True(t, ValidRemotePreference("any"))
	assert.False(t, ValidRemoteType("any"), "jobs have no 'any' remote type")
	assert.True(t, ValidRemoteType("hybrid"))
}

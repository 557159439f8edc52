package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinsor/phenolph/internal/outcome"
)

func TestOrdering(t *testing.T) {
	assert.True(t, outcome.Pass < outcome.Fail)
	assert.True(t, outcome.Fail < outcome.Unknown)
}

func TestMax_Mixed(t *testing.T) {
	got := outcome.Max(outcome.Pass, outcome.Fail)
	assert.Equal(t, outcome.Fail, got)
}

func TestMax_Unknown(t *testing.T) {
	got := outcome.Max(outcome.Unknown, outcome.Fail)
	assert.Equal(t, outcome.Unknown, got)
}

func TestStringRoundTrip(t *testing.T) {
	for _, o := range outcome.All() {
		parsed, err := outcome.Parse(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	got, err := outcome.Parse("FaIl")
	require.NoError(t, err)
	assert.Equal(t, outcome.Fail, got)
}

func TestParse_Invalid(t *testing.T) {
	_, err := outcome.Parse("nope")
	assert.Error(t, err)
}

func TestFromPassBool(t *testing.T) {
	assert.Equal(t, outcome.Pass, outcome.FromPassBool(true))
	assert.Equal(t, outcome.Fail, outcome.FromPassBool(false))
}

package state_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/state"
)

func TestAsKey_SameValuesSameKey(t *testing.T) {
	a := state.New([]string{"x", "y"}, map[string]int32{"x": 1, "y": 2})
	b := state.New([]string{"x", "y"}, map[string]int32{"x": 1, "y": 2})
	assert.Equal(t, a.AsKey(), b.AsKey())
}

func TestAsKey_DifferentValuesDifferentKey(t *testing.T) {
	a := state.New([]string{"x"}, map[string]int32{"x": 1})
	b := state.New([]string{"x"}, map[string]int32{"x": 2})
	assert.NotEqual(t, a.AsKey(), b.AsKey())
}

func TestInfo_IncSaturates(t *testing.T) {
	i := state.Info{Occurs: ^uint64(0)}
	assert.Equal(t, ^uint64(0), i.Inc().Occurs)
}

func TestInfo_IncPreservesOutcomeAndFirstIteration(t *testing.T) {
	i := state.NewInfo(outcome.Fail, 7)
	inc := i.Inc()
	assert.Equal(t, outcome.Fail, inc.Outcome)
	assert.Equal(t, uint64(7), inc.FirstIteration)
	assert.Equal(t, uint64(2), inc.Occurs)
}

func TestState_JSONRoundTrip(t *testing.T) {
	original := state.New([]string{"x", "y"}, map[string]int32{"x": 1, "y": -2})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded state.State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.AsKey(), decoded.AsKey())
	for _, name := range original.Names() {
		want, _ := original.Get(name)
		got, ok := decoded.Get(name)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestReport_JSONRoundTrip(t *testing.T) {
	pass := outcome.Pass
	original := state.Report{
		Aggregate: &pass,
		States: []state.Entry{
			{
				State: state.New([]string{"x"}, map[string]int32{"x": 1}),
				Info:  state.NewInfo(outcome.Pass, 1),
			},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded state.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Aggregate)
	assert.Equal(t, outcome.Pass, *decoded.Aggregate)
	require.Len(t, decoded.States, 1)
	assert.Equal(t, original.States[0].Info, decoded.States[0].Info)
	assert.Equal(t, original.States[0].State.AsKey(), decoded.States[0].State.AsKey())
}

func TestReport_SortedByFirstIteration(t *testing.T) {
	r := state.Report{
		States: []state.Entry{
			{Info: state.Info{FirstIteration: 3}},
			{Info: state.Info{FirstIteration: 1}},
			{Info: state.Info{FirstIteration: 2}},
		},
	}
	sorted := r.SortedByFirstIteration()
	assert.Equal(t, uint64(1), sorted[0].Info.FirstIteration)
	assert.Equal(t, uint64(2), sorted[1].Info.FirstIteration)
	assert.Equal(t, uint64(3), sorted[2].Info.FirstIteration)
}

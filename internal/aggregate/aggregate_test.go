package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/halt"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/slot"
)

func oneVarManifest(t *testing.T) manifest.Manifest {
	t.Helper()
	m, err := manifest.New(1, map[string]manifest.VarRecord{
		"x": {Slot: slot.Slot{IsAtomic: true, Index: 0}},
	})
	require.NoError(t, err)
	return m
}

func TestObserve_FirstOccurrenceIsClassifiedAndInserted(t *testing.T) {
	m := oneVarManifest(t)
	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)
	e.Set(slot.Slot{IsAtomic: true, Index: 0}, 1)

	a := aggregate.New()
	_, fired := a.Observe(e, m, aggregate.Constant(outcome.Pass), nil)
	assert.False(t, fired)

	report := a.IntoReport()
	require.Len(t, report.States, 1)
	assert.Equal(t, uint64(1), report.States[0].Info.Occurs)
	assert.Equal(t, outcome.Pass, report.States[0].Info.Outcome)
	assert.Equal(t, outcome.Pass, *report.Aggregate)
}

func TestObserve_RepeatIncrementsOccurs(t *testing.T) {
	m := oneVarManifest(t)
	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)

	a := aggregate.New()
	a.Observe(e, m, aggregate.UnknownChecker, nil)
	a.Observe(e, m, aggregate.UnknownChecker, nil)

	report := a.IntoReport()
	require.Len(t, report.States, 1)
	assert.Equal(t, uint64(2), report.States[0].Info.Occurs)
}

func TestObserve_ResetsEnvironment(t *testing.T) {
	m := oneVarManifest(t)
	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)
	e.Set(slot.Slot{IsAtomic: true, Index: 0}, 42)

	a := aggregate.New()
	a.Observe(e, m, aggregate.UnknownChecker, nil)

	assert.Equal(t, int32(0), e.Get(slot.Slot{IsAtomic: true, Index: 0}))
}

func TestObserve_HaltRuleFires(t *testing.T) {
	m := oneVarManifest(t)
	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)

	a := aggregate.New()
	rules := []halt.Rule{{Condition: halt.EveryNIterations{N: 2}, HaltType: halt.Exit}}

	_, fired := a.Observe(e, m, aggregate.UnknownChecker, rules)
	assert.False(t, fired)

	ht, fired := a.Observe(e, m, aggregate.UnknownChecker, rules)
	assert.True(t, fired)
	assert.Equal(t, halt.Exit, ht)
}

func TestIntoReport_AggregateIsMaxOutcome(t *testing.T) {
	m, err := manifest.New(1, map[string]manifest.VarRecord{
		"x": {Slot: slot.Slot{IsAtomic: true, Index: 0}},
	})
	require.NoError(t, err)
	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)

	a := aggregate.New()
	e.Set(slot.Slot{IsAtomic: true, Index: 0}, 1)
	a.Observe(e, m, aggregate.Constant(outcome.Pass), nil)
	e.Set(slot.Slot{IsAtomic: true, Index: 0}, 2)
	a.Observe(e, m, aggregate.Constant(outcome.Fail), nil)

	report := a.IntoReport()
	require.NotNil(t, report.Aggregate)
	assert.Equal(t, outcome.Fail, *report.Aggregate)
}

func TestIntoReport_EmptyHasNoAggregate(t *testing.T) {
	a := aggregate.New()
	report := a.IntoReport()
	assert.Nil(t, report.Aggregate)
	assert.Empty(t, report.States)
}

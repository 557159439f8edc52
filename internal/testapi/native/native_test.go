package native_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/slot"
	"github.com/mwinsor/phenolph/internal/testapi/native"
)

func TestEntry_ManifestReturnsConfiguredValue(t *testing.T) {
	m, err := manifest.New(1, nil)
	require.NoError(t, err)
	e := native.Entry{ManifestValue: m}

	got, err := e.Manifest()
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestEntry_CheckerDefaultsToUnknown(t *testing.T) {
	e := native.Entry{}
	assert.Equal(t, aggregate.UnknownChecker, e.Checker())
}

func TestEntry_CheckerWrapsCheckFunc(t *testing.T) {
	e := native.Entry{CheckFunc: func(*env.Env) outcome.Outcome { return outcome.Fail }}
	assert.Equal(t, outcome.Fail, e.Checker().Check(nil))
}

func TestTrivialPass_PassesWhenXSet(t *testing.T) {
	entry := native.TrivialPass()
	m, err := entry.Manifest()
	require.NoError(t, err)

	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)

	entry.Run(0, e)
	assert.Equal(t, outcome.Pass, entry.Checker().Check(e))
}

func TestStoreBuffering_FailsWhenBothRegistersZero(t *testing.T) {
	entry := native.StoreBuffering()
	m, err := entry.Manifest()
	require.NoError(t, err)

	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)

	// Neither thread has run yet: r0 = r1 = 0, the forbidden outcome.
	assert.Equal(t, outcome.Fail, entry.Checker().Check(e))
}

func TestResetClearsNonAtomics_PanicsOnNonZeroInitialRead(t *testing.T) {
	entry := native.ResetClearsNonAtomics(2)
	m, err := entry.Manifest()
	require.NoError(t, err)

	e, err := env.Allocate(m.ReserveI32())
	require.NoError(t, err)

	reg := slot.Slot{IsAtomic: false, Index: 0}
	e.Set(reg, 7)
	assert.Panics(t, func() { entry.Run(0, e) })
}

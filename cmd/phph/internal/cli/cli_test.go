package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag variable to its default and clears the
// "changed" bookkeeping of the flags applyFlagOverrides consults, between
// tests, since rootCmd is a package-level singleton shared across the
// test binary's lifetime.
func resetFlags(t *testing.T) {
	t.Helper()
	cfgFile, logLevel, scenario, pluginPath, format = "", "info", "", "", "histogram"
	syncVal, permuteVal, iterAction = "", "", ""
	checkVal.Kind, checkVal.Outcome = "", 0
	iterations, period = 0, 0
	threads = 4
	rootCmd.PersistentFlags().Lookup("sync").Changed = false
	rootCmd.PersistentFlags().Lookup("check").Changed = false
	rootCmd.PersistentFlags().Lookup("permute").Changed = false
	rootCmd.PersistentFlags().Lookup("iter-action").Changed = false
	rootCmd.PersistentFlags().Lookup("iterations").Changed = false
	rootCmd.PersistentFlags().Lookup("period").Changed = false
}

func TestConfigPath_PrintsDefaultWhenNoFlagGiven(t *testing.T) {
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "path"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "config.toml")
}

func TestConfigDump_ReflectsFlagOverrides(t *testing.T) {
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "dump", "--sync", "barrier", "--permute", "static"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "barrier")
	assert.Contains(t, out.String(), "static")
}

func TestRun_TrivialPassScenarioProducesPassingHistogram(t *testing.T) {
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"--scenario", "trivial-pass",
		"--iter-action", "exit",
		"--iterations", "5",
		"--check", "report",
	})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "x=1")
	assert.Contains(t, out.String(), "*") // the Pass sigil
}

func TestRun_RejectsConflictingEntrySelection(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{"--scenario", "trivial-pass", "--plugin", "/tmp/whatever.so"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

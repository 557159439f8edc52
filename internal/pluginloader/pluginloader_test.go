package pluginloader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/pluginloader"
)

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := pluginloader.Load("/nonexistent/path/to/test.so")
	assert.Error(t, err)
}

func TestEntry_CheckerDefaultsToUnknownWhenCheckUnset(t *testing.T) {
	e := &pluginloader.Entry{}
	assert.Equal(t, aggregate.UnknownChecker, e.Checker())
}

package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/report"
	"github.com/mwinsor/phenolph/internal/state"
)

func sampleReport() state.Report {
	pass := outcome.Pass
	return state.Report{
		Aggregate: &pass,
		States: []state.Entry{
			{
				State: state.New([]string{"x"}, map[string]int32{"x": 1}),
				Info:  state.NewInfo(outcome.Pass, 1),
			},
		},
	}
}

func TestJSON_OutputProducesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewJSON(&buf).Output(sampleReport()))

	var decoded state.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.States, 1)
	assert.Equal(t, uint64(1), decoded.States[0].Info.Occurs)
}

func TestHistogram_OutputWritesOneLinePerState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewHistogram(&buf).Output(sampleReport()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "x=1")
	assert.Contains(t, lines[0], "iter 1")
}

func TestStamp_AssignsDistinctRunIDs(t *testing.T) {
	a := report.Stamp(sampleReport())
	b := report.Stamp(sampleReport())
	assert.NotEqual(t, a.RunID, b.RunID)
}

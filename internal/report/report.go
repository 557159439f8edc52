// Package report formats a state.Report for human or machine
// consumption: JSON for tooling, and a Litmus-style histogram for
// terminal output.
package report

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mwinsor/phenolph/internal/state"
)

// ErrIO wraps any failure to write a report to its destination.
var ErrIO = errors.New("phenolph: writing report failed")

// Outputter writes a finished report to some destination.
type Outputter interface {
	Output(report state.Report) error
}

// Stamped pairs a report with the run identifier that produced it, for
// outputters that want to correlate reports across separate
// invocations (e.g. when archiving JSON reports for later comparison).
type Stamped struct {
	RunID  uuid.UUID    `json:"run_id"`
	Report state.Report `json:"report"`
}

// Stamp attaches a freshly generated run ID to report.
func Stamp(report state.Report) Stamped {
	return Stamped{RunID: uuid.New(), Report: report}
}

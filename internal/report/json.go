package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwinsor/phenolph/internal/state"
)

// JSON is an Outputter that writes a report as pretty-printed JSON.
type JSON struct {
	w io.Writer
}

// NewJSON constructs a JSON outputter writing to w.
func NewJSON(w io.Writer) JSON {
	return JSON{w: w}
}

// Output implements Outputter.
func (j JSON) Output(r state.Report) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("phenolph: writing JSON report: %w: %w", ErrIO, err)
	}
	return nil
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/state"
)

// sigil colours for a terminal supporting ANSI escapes, written as the
// plain escape codes rather than reaching for a colour library for
// three constants.
const (
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Histogram is an Outputter producing Litmus-style per-state counts,
// one aligned row per observed state, via text/tabwriter.
type Histogram struct {
	w *tabwriter.Writer
}

// NewHistogram constructs a Histogram outputter writing to w.
func NewHistogram(w io.Writer) *Histogram {
	return &Histogram{w: tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)}
}

// Output implements Outputter.
func (h *Histogram) Output(r state.Report) error {
	for _, entry := range r.SortedByFirstIteration() {
		if err := h.writeEntry(entry); err != nil {
			return fmt.Errorf("phenolph: writing histogram row: %w: %w", ErrIO, err)
		}
	}
	if err := h.w.Flush(); err != nil {
		return fmt.Errorf("phenolph: flushing histogram: %w: %w", ErrIO, err)
	}
	return nil
}

func (h *Histogram) writeEntry(entry state.Entry) error {
	_, err := fmt.Fprintf(h.w, "%d\t%s>\t%s\t(iter %d)\n",
		entry.Info.Occurs,
		sigil(entry.Info.Outcome),
		stringifyValuation(entry.State),
		entry.Info.FirstIteration,
	)
	return err
}

func sigil(o outcome.Outcome) string {
	switch o {
	case outcome.Pass:
		return ansiGreen + "*" + ansiReset
	case outcome.Fail:
		return ansiRed + ":" + ansiReset
	default:
		return ansiYellow + "?" + ansiReset
	}
}

func stringifyValuation(s state.State) string {
	names := s.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		v, _ := s.Get(n)
		parts[i] = fmt.Sprintf("%s=%d", n, v)
	}
	return strings.Join(parts, "\t")
}

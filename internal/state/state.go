// Package state models observed valuations of a test's shared environment,
// and the aggregate report built from many such observations.
package state

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/mwinsor/phenolph/internal/outcome"
)

// State is an observed valuation: a reading of every declared variable of
// the environment, in manifest order.
//
// State holds a slice and a map, so it is not comparable with == and
// cannot itself be a map key; AsKey gives the comparable Key, and two
// states have the same Key iff they have the same names, in the same
// order, mapped to the same values.
type State struct {
	names  []string
	values map[string]int32
}

// New builds a State from a slice of names and a name-to-value map. names
// must already be in canonical (manifest) order.
func New(names []string, values map[string]int32) State {
	cp := make(map[string]int32, len(values))
	for k, v := range values {
		cp[k] = v
	}
	ns := make([]string, len(names))
	copy(ns, names)
	return State{names: ns, values: cp}
}

// Get returns the value of the named variable, and whether it was present.
func (s State) Get(name string) (int32, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the state's variable names in canonical order.
func (s State) Names() []string {
	return s.names
}

// key renders a canonical comparable/hashable representation of the state,
// used so States can live as map keys without Go's no-slice-map-key
// restriction getting in the way.
func (s State) key() string {
	var b strings.Builder
	for _, n := range s.names {
		b.WriteString(n)
		b.WriteByte('=')
		if v, ok := s.values[n]; ok {
			b.WriteString(itoa(v))
		}
		b.WriteByte(';')
	}
	return b.String()
}

func itoa(v int32) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return "0"
	}
	var buf [16]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// MarshalJSON renders the state as a plain JSON object of variable name
// to value, since State's internal fields are unexported.
func (s State) MarshalJSON() ([]byte, error) {
	m := make(map[string]int32, len(s.names))
	for _, n := range s.names {
		m[n] = s.values[n]
	}
	return json.Marshal(m)
}

// UnmarshalJSON rebuilds a State from the object MarshalJSON produces,
// taking the variable names in sorted order since JSON objects carry
// no ordering of their own.
func (s *State) UnmarshalJSON(data []byte) error {
	var m map[string]int32
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	*s = New(names, m)
	return nil
}

// Key is the comparable, map-key-safe representation of this state.
type Key string

// AsKey returns the map key under which this state should be stored in a
// map of states, such as the one package aggregate keeps.
func (s State) AsKey() Key {
	return Key(s.key())
}

// Info records what is known about one observed state.
//
// Lifecycle: created on first observation with Occurs=1; Occurs increments
// (saturating) on every subsequent observation of the same state. Outcome
// and FirstIteration never change after creation.
type Info struct {
	// Occurs is the number of times this state has been observed.
	Occurs uint64 `json:"occurs"`
	// FirstIteration is the 1-based iteration on which this state was
	// first observed.
	FirstIteration uint64 `json:"iteration"`
	// Outcome is the result of checking this state, fixed at first
	// observation.
	Outcome outcome.Outcome `json:"outcome"`
}

// NewInfo creates the Info for a state's first observation.
func NewInfo(o outcome.Outcome, firstIteration uint64) Info {
	return Info{Occurs: 1, FirstIteration: firstIteration, Outcome: o}
}

// Inc returns the Info resulting from observing the same state again,
// saturating Occurs rather than overflowing.
func (i Info) Inc() Info {
	if i.Occurs != ^uint64(0) {
		i.Occurs++
	}
	return i
}

// Entry pairs an observed state with its aggregate Info, for reporting.
//
// It marshals with Info's fields flattened alongside state rather than
// nested under a separate key, since a report entry is read as one
// record describing a single observed state, not a state plus a
// sub-object about it.
type Entry struct {
	State State
	Info  Info
}

// entryWire is Entry's flattened wire shape.
type entryWire struct {
	State     State           `json:"state"`
	Occurs    uint64          `json:"occurs"`
	Iteration uint64          `json:"iteration"`
	Outcome   outcome.Outcome `json:"outcome"`
}

// MarshalJSON implements Entry's flattened wire shape.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryWire{
		State:     e.State,
		Occurs:    e.Info.Occurs,
		Iteration: e.Info.FirstIteration,
		Outcome:   e.Info.Outcome,
	})
}

// UnmarshalJSON rebuilds an Entry from the shape MarshalJSON produces.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.State = w.State
	e.Info = Info{Occurs: w.Occurs, FirstIteration: w.Iteration, Outcome: w.Outcome}
	return nil
}

// Report is the final summary of observations from a test run.
type Report struct {
	// Aggregate is the maximum outcome over every observed state, or nil
	// if no states were observed.
	Aggregate *outcome.Outcome `json:"outcome"`
	// States lists every distinct observed state and its Info.
	States []Entry `json:"states"`
}

// SortedByFirstIteration returns a copy of r.States ordered by the
// iteration on which each state was first observed, for stable,
// human-legible output.
func (r Report) SortedByFirstIteration() []Entry {
	out := make([]Entry, len(r.States))
	copy(out, r.States)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Info.FirstIteration < out[j].Info.FirstIteration
	})
	return out
}

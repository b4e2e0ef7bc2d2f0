package vcd

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Snapshot maps qualified signal names to their values at one point in time.
// Scalars are "0", "1", "x" or "z"; vectors are lowercase hex or "x"/"z".
// A signal with no change at or before the snapshot time maps to "".
type Snapshot map[string]string

// Change is one recorded value of a signal.
type Change struct {
	Time  int64
	Value string
}

// Cycle is one selected row of a cycle aggregate.
type Cycle struct {
	Key    string   // Selection ordinal: "0", "1", ...
	Row    int      // Source row index
	Time   int64    // Timestamp of the source row
	Values Snapshot // Values at that row
}

// Rows returns every timestamp marker in file order. Row i of FetchRow
// refers to element i.
func (f *File) Rows() []int64 {
	return slices.Clone(f.times)
}

// Columns returns every qualified signal name in declaration order.
func (f *File) Columns() []string {
	names := make([]string, len(f.signals))
	for i, s := range f.signals {
		names[i] = s.Name
	}
	return names
}

// FetchRow resolves every signal at the timestamp of the given row.
// An out-of-range row yields an empty Snapshot rather than an error.
func (f *File) FetchRow(row int) Snapshot {
	if row < 0 || row >= len(f.times) {
		return Snapshot{}
	}
	return f.snapshot(f.times[row])
}

// QueryRow is an alias for FetchRow.
func (f *File) QueryRow(row int) Snapshot {
	return f.FetchRow(row)
}

// SnapshotAt resolves every signal at time t, which need not be a row timestamp.
func (f *File) SnapshotAt(t int64) Snapshot {
	return f.snapshot(t)
}

func (f *File) snapshot(t int64) Snapshot {
	snap := make(Snapshot, len(f.signals))
	for col, s := range f.signals {
		v, _ := f.series[col].At(t)
		snap[s.Name] = v
	}
	return snap
}

// ValueAt returns the value of the named signal from its last change at or
// before t, or "" if it had not changed by then.
func (f *File) ValueAt(name string, t int64) (string, error) {
	col, ok := f.columns[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSignalNotFound, name)
	}
	v, _ := f.series[col].At(t)
	return v, nil
}

// History returns every recorded change of the named signal in time order.
func (f *File) History(name string) ([]Change, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSignalNotFound, name)
	}
	series := f.series[col]
	out := make([]Change, len(series))
	for i, c := range series {
		out[i] = Change{Time: c.Time, Value: c.Value}
	}
	return out, nil
}

// Cycles returns an iterator over selected rows paired with their snapshots.
//
// Rows are assumed to alternate clock edges starting with a rising edge at
// row 0, so even rows are positive edges. With includeNeg false only even
// rows are yielded; with includeNeg true every row is. A trace that does not
// follow this convention will have its cycles mislabeled.
func (f *File) Cycles(includeNeg bool) iter.Seq2[int, Snapshot] {
	return func(yield func(int, Snapshot) bool) {
		for row := range f.times {
			if !includeNeg && row%2 != 0 {
				continue
			}
			if !yield(row, f.FetchRow(row)) {
				return
			}
		}
	}
}

// AllCycles collects Cycles into a slice. Element i has Key strconv.Itoa(i),
// the number of rows selected before it.
func (f *File) AllCycles(includeNeg bool) []Cycle {
	n := len(f.times)
	if !includeNeg {
		n = (n + 1) / 2
	}
	cycles := make([]Cycle, 0, n)
	for row, snap := range f.Cycles(includeNeg) {
		cycles = append(cycles, Cycle{
			Key:    strconv.Itoa(len(cycles)),
			Row:    row,
			Time:   f.times[row],
			Values: snap,
		})
	}
	return cycles
}

// CycleMap returns AllCycles keyed by Cycle.Key.
func (f *File) CycleMap(includeNeg bool) map[string]Snapshot {
	cycles := f.AllCycles(includeNeg)
	m := make(map[string]Snapshot, len(cycles))
	for _, c := range cycles {
		m[c.Key] = c.Values
	}
	return m
}

// Package wave parses the value-change section of a VCD file into
// per-signal time series.
package wave

import "sort"

// Change is one recorded value of a signal.
type Change struct {
	Time  int64
	Value string
}

// Series is the change history of one signal, ordered by non-decreasing time.
type Series []Change

// At returns the value of the last change at or before t.
// It reports false when no change precedes t.
func (s Series) At(t int64) (string, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Time > t })
	if i == 0 {
		return "", false
	}
	return s[i-1].Value, true
}

// Package schedule maps study days onto fixed-size, rotating windows of a
// question corpus.
package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDay   = errors.New("day number must be at least 1")
	ErrInvalidQuota = errors.New("quota must be at least 1")
	ErrInvalidSize  = errors.New("corpus size must not be negative")
)

// Window is the slice of a corpus shown on one day. Start and Indices are
// zero-based positions into the corpus record list.
type Window struct {
	Start   int   `json:"start"`
	Count   int   `json:"count"`
	Indices []int `json:"indices"`
}

// Select returns the window for day (1-based) over a corpus of size records,
// showing at most quota records per day. Consecutive days advance by the
// effective quota and wrap around the end of the corpus.
func Select(day, quota, size int) (Window, error) {
	switch {
	case day < 1:
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidDay, day)
	case quota < 1:
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidQuota, quota)
	case size < 0:
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	if size == 0 {
		return Window{Indices: []int{}}, nil
	}

	n := min(quota, size)
	// Reduce day before multiplying so large day numbers cannot overflow.
	start := ((day - 1) % size) * n % size

	indices := make([]int, n)
	for i := range indices {
		indices[i] = (start + i) % size
	}
	return Window{Start: start, Count: n, Indices: indices}, nil
}

// Wraps reports whether the window runs past the last record and continues
// from the first.
func (w Window) Wraps() bool {
	return w.Count > 0 && w.Indices[w.Count-1] < w.Start
}

// Range returns the 1-based ordinals of the first and last record in the
// window. Both are zero for an empty window.
func (w Window) Range() (first, last int) {
	if w.Count == 0 {
		return 0, 0
	}
	return w.Indices[0] + 1, w.Indices[w.Count-1] + 1
}

// Apply returns the items addressed by w in window order.
func Apply[T any](items []T, w Window) []T {
	out := make([]T, 0, w.Count)
	for _, i := range w.Indices {
		if i >= 0 && i < len(items) {
			out = append(out, items[i])
		}
	}
	return out
}

// DaysToCover returns how many consecutive days it takes for every record of
// a corpus to be shown at least once at the given quota.
func DaysToCover(quota, size int) int {
	if quota < 1 || size < 1 {
		return 0
	}
	n := min(quota, size)
	return (size + n - 1) / n
}

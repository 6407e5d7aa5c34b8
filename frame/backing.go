// SPDX-License-Identifier: MIT

package frame

import "fmt"

// Backing is the read-only slab-access capability a Frame exposes over its
// Data and Uncertainty arrays. Implementations may hold the array fully in
// memory (InMemory) or materialize it from a memory-mapped temporary
// (imcombine/internal/diskcache.Mapped); the combiner never distinguishes
// between the two beyond calling Rows.
type Backing interface {
	// Rows returns a view over rows [lo, hi). The returned slices must not
	// be mutated by callers; implementations may return direct references
	// into their own storage.
	Rows(lo, hi int) ([][]float64, error)

	// Shape reports the backing's dimensions.
	Shape() (rows, cols int)
}

// InMemory is a Backing over a plain in-memory row-major array.
type InMemory struct {
	data [][]float64
}

// NewInMemory wraps data as a Backing. data is not copied; callers must
// not mutate it afterwards.
func NewInMemory(data [][]float64) *InMemory {
	return &InMemory{data: data}
}

// Rows returns data[lo:hi], validating bounds.
func (m *InMemory) Rows(lo, hi int) ([][]float64, error) {
	if lo < 0 || hi > len(m.data) || lo > hi {
		return nil, fmt.Errorf("frame: row range [%d, %d) out of bounds for %d rows", lo, hi, len(m.data))
	}
	return m.data[lo:hi], nil
}

// Shape returns (rows, cols); cols is the length of the first row, or 0
// for an empty backing.
func (m *InMemory) Shape() (rows, cols int) {
	rows = len(m.data)
	if rows > 0 {
		cols = len(m.data[0])
	}
	return rows, cols
}

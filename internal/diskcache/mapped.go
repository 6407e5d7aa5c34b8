package diskcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/astropop-go/imcombine/frame"
)

const float64Size = 8

// Mapped is a frame.Backing over a memory-mapped temporary file. Rows are
// stored contiguously, row-major, as little-endian float64 values.
type Mapped struct {
	file *os.File
	mm   mmap.MMap
	rows int
	cols int
}

// Rows decodes and returns rows [lo, hi) from the mapping.
func (m *Mapped) Rows(lo, hi int) ([][]float64, error) {
	if lo < 0 || hi > m.rows || lo > hi {
		return nil, fmt.Errorf("diskcache: row range [%d, %d) out of bounds for %d rows", lo, hi, m.rows)
	}
	out := make([][]float64, hi-lo)
	rowBytes := m.cols * float64Size
	for i := lo; i < hi; i++ {
		row := make([]float64, m.cols)
		base := i * rowBytes
		for c := 0; c < m.cols; c++ {
			bits := binary.LittleEndian.Uint64(m.mm[base+c*float64Size : base+(c+1)*float64Size])
			row[c] = math.Float64frombits(bits)
		}
		out[i-lo] = row
	}
	return out, nil
}

// Shape returns the mapping's dimensions.
func (m *Mapped) Shape() (rows, cols int) {
	return m.rows, m.cols
}

// Close unmaps and closes the backing file. The temporary itself is removed
// by the owning Registry's Clear, not by Close, so Mapped values may be
// closed independently of registry bookkeeping.
func (m *Mapped) Close() error {
	if m.mm != nil {
		if err := m.mm.Unmap(); err != nil {
			return err
		}
		m.mm = nil
	}
	if m.file != nil {
		return m.file.Close()
	}
	return nil
}

var _ frame.Backing = (*Mapped)(nil)

package diskcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"

	"github.com/astropop-go/imcombine/frame"
)

// Registry tracks every Mapped backing materialized on behalf of a single
// Combiner instance, so Clear can unmap and remove them all in one pass. A
// Registry is not safe for concurrent use; the combiner drives it
// single-threaded per the surrounding sequential execution model.
type Registry struct {
	dir    string
	seq    int
	mapped []*Mapped
	paths  []string
}

// NewRegistry returns a Registry that creates its temporaries under dir.
// An empty dir uses os.TempDir().
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Materialize writes data to a fresh temporary file and returns a Mapped
// backing over it. The temporary's path is tracked for Clear.
func (r *Registry) Materialize(data [][]float64) (frame.Backing, error) {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}

	path := r.nextPath()
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	buf := make([]byte, cols*float64Size)
	for _, row := range data {
		for c, v := range row {
			binary.LittleEndian.PutUint64(buf[c*float64Size:(c+1)*float64Size], math.Float64bits(v))
		}
		if _, werr := f.Write(buf); werr != nil {
			f.Close()
			return nil, &IOError{Path: path, Err: werr}
		}
	}

	if rows == 0 {
		// mmap-go refuses to map a zero-length file; keep the handle open
		// and hand back an empty backing with no mapping.
		m := &Mapped{file: f, rows: 0, cols: cols}
		r.track(m, path)
		return m, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, &IOError{Path: path, Err: err}
	}

	m := &Mapped{file: f, mm: mm, rows: rows, cols: cols}
	r.track(m, path)
	return m, nil
}

func (r *Registry) track(m *Mapped, path string) {
	r.mapped = append(r.mapped, m)
	r.paths = append(r.paths, path)
}

// Clear unmaps and closes every Mapped backing this Registry created, then
// removes their temporary files. Close errors are collected but never stop
// the remaining unmaps/removals; Clear reports the first error seen. Safe
// to call multiple times and on a Registry that materialized nothing.
func (r *Registry) Clear() error {
	var first error
	for _, m := range r.mapped {
		if err := m.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.mapped = nil

	for _, p := range r.paths {
		if err := os.Remove(p); err != nil && first == nil {
			first = err
		}
	}
	r.paths = nil
	return first
}

func (r *Registry) nextPath() string {
	r.seq++
	dir := r.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("imcombine-%d-%d.cache", os.Getpid(), r.seq))
}

var _ frame.CacheStrategy = (*Registry)(nil)

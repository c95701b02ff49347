// Package binning maps real-valued sample vectors to integer bin coordinates
// under the equal-interval and explicit-boundary schemes, optionally
// translated by a shifted-grid offset.
package binning

import (
	"fmt"
	"math"
	"sort"
)

// Kind selects the binning scheme for one axis.
type Kind int

const (
	// EqualInterval bins an axis into N equal-width cells between lo and hi.
	EqualInterval Kind = iota
	// Boundaries bins an axis using an explicit, sorted list of interior
	// boundaries; the extreme bins are unbounded.
	Boundaries
)

// AxisSpec is the per-axis BinSpec: either an equal-interval
// range or a sorted list of interior boundaries.
type AxisSpec struct {
	Kind       Kind
	N          int       // bin count, EqualInterval only
	Lo, Hi     float64   // range, EqualInterval only
	Boundaries []float64 // sorted interior boundaries, Boundaries only
}

// NBins returns the number of bins this axis defines.
func (a AxisSpec) NBins() int {
	if a.Kind == Boundaries {
		return len(a.Boundaries) + 1
	}
	return a.N
}

// Binner maps a real sample vector into an integer BinCoord under a fixed,
// per-axis BinSpec. A Binner is immutable once constructed.
type Binner struct {
	axes []AxisSpec
}

// New validates axes and constructs a Binner. An equal-interval axis
// requires N >= 1 and Lo < Hi; a Boundaries axis requires a strictly
// increasing boundary list.
func New(axes []AxisSpec) (*Binner, error) {
	for i, a := range axes {
		switch a.Kind {
		case EqualInterval:
			if a.N < 1 {
				return nil, fmt.Errorf("binning: axis %d: bin count %d must be >= 1", i, a.N)
			}
			if !(a.Lo < a.Hi) {
				return nil, fmt.Errorf("binning: axis %d: lo (%g) must be < hi (%g)", i, a.Lo, a.Hi)
			}
		case Boundaries:
			for j := 1; j < len(a.Boundaries); j++ {
				if !(a.Boundaries[j-1] < a.Boundaries[j]) {
					return nil, fmt.Errorf("binning: axis %d: boundaries must be strictly increasing", i)
				}
			}
		default:
			return nil, fmt.Errorf("binning: axis %d: unknown kind %d", i, a.Kind)
		}
	}

	cp := make([]AxisSpec, len(axes))
	copy(cp, axes)
	return &Binner{axes: cp}, nil
}

// Dims returns the number of axes.
func (b *Binner) Dims() int { return len(b.axes) }

// NBins returns the number of bins along axis i.
func (b *Binner) NBins(i int) int { return b.axes[i].NBins() }

// HasBoundaries reports whether any axis uses the explicit-boundary scheme,
// for which shifted grids are undefined.
func (b *Binner) HasBoundaries() bool {
	for _, a := range b.axes {
		if a.Kind == Boundaries {
			return true
		}
	}
	return false
}

// Bin writes the BinCoord for x under shift r of R shifted grids into dst,
// which must have length Dims(); dst is a caller-owned scratch buffer,
// reused across calls to avoid allocating a new coordinate vector per
// sample.
func (b *Binner) Bin(x []float64, r, numGrids int, dst []int) error {
	if len(x) != len(b.axes) {
		return fmt.Errorf("binning: sample has %d dimensions, want %d", len(x), len(b.axes))
	}
	if len(dst) != len(b.axes) {
		return fmt.Errorf("binning: scratch buffer has %d dimensions, want %d", len(dst), len(b.axes))
	}

	for i, a := range b.axes {
		switch a.Kind {
		case EqualInterval:
			dst[i] = binEqualInterval(a, x[i], r, numGrids)
		case Boundaries:
			dst[i] = binBoundaries(a.Boundaries, x[i])
		}
	}
	return nil
}

// binEqualInterval implements the equal-interval scheme: width
// w = (hi-lo)/N, grid shifted by a fraction s = r/R of a bin width, index
// floor((x-lo)/w + s) clamped to [0, N-1].
func binEqualInterval(a AxisSpec, x float64, r, numGrids int) int {
	w := (a.Hi - a.Lo) / float64(a.N)
	s := 0.0
	if r > 0 {
		s = float64(r) / float64(numGrids)
	}

	idx := int(math.Floor((x-a.Lo)/w + s))
	if idx < 0 {
		idx = 0
	}
	if idx > a.N-1 {
		idx = a.N - 1
	}
	return idx
}

// binBoundaries implements the explicit-boundary scheme: the bin
// index is the number of boundaries strictly <= x (left edge inclusive, per
// this package's left-edge-inclusive tie-breaking rule).
func binBoundaries(boundaries []float64, x float64) int {
	return sort.Search(len(boundaries), func(i int) bool { return boundaries[i] > x })
}

// Package infopid estimates discrete entropy, mutual information, and the
// bivariate/trivariate Williams–Beer partial information decomposition
// (redundant, unique, synergistic information) from streaming
// multi-dimensional real-valued samples. Samples are discretised into a
// fixed-resolution sparse histogram and every query is a plug-in estimator
// over the empirical distributions derived from it. The library performs no
// I/O; a Session is an in-memory object callable directly from Go code.
package infopid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/infopid/infopid/internal/binning"
	"github.com/infopid/infopid/internal/entropy"
	"github.com/infopid/infopid/internal/marginal"
	"github.com/infopid/infopid/internal/pid"
	"github.com/infopid/infopid/internal/sparsehist"
)

// Session owns a fixed-D,
// fixed-BinSpec binner and R shifted-grid sparse histogram replicas, and is
// not safe for concurrent use — callers serialise all operations on a given
// Session externally. Independent Sessions share no state.
type Session struct {
	dims     int
	numGrids int // R, with the source R=0 normalised to 1 shifted grid.

	binner  *binning.Binner
	axes    []binning.AxisSpec
	hists   []*sparsehist.Histogram
	started bool // true once the first sample has ever been added.

	scratch []int // reused BinCoord buffer, to avoid allocating one per sample.
}

// New creates an empty Session over D-dimensional samples, averaging
// queries over R shifted grids. R == 0 is normalised to a single,
// unshifted grid.
func New(d, r int) (*Session, error) {
	if d < 1 {
		return nil, fmt.Errorf("%w: dims must be >= 1, got %d", ErrInvalidArg, d)
	}
	if r < 0 {
		return nil, fmt.Errorf("%w: r must be >= 0, got %d", ErrInvalidArg, r)
	}
	numGrids := r
	if numGrids == 0 {
		numGrids = 1
	}

	return &Session{
		dims:     d,
		numGrids: numGrids,
		axes:     make([]binning.AxisSpec, d),
		scratch:  make([]int, d),
	}, nil
}

// SetEqualInterval installs an equal-interval BinSpec on every axis:
// nbins[i] bins between los[i] and his[i].
func (s *Session) SetEqualInterval(nbins []int, los, his []float64) error {
	if s.started {
		return fmt.Errorf("%w: cannot change binning after samples were added", ErrAlreadyConfigured)
	}
	if len(nbins) != s.dims || len(los) != s.dims || len(his) != s.dims {
		return fmt.Errorf("%w: nbins/los/his must have length %d", ErrInvalidArg, s.dims)
	}
	for i := range nbins {
		if nbins[i] < 1 {
			return fmt.Errorf("%w: axis %d: nbins must be >= 1, got %d", ErrInvalidArg, i, nbins[i])
		}
		if !(los[i] < his[i]) {
			return fmt.Errorf("%w: axis %d: lo (%g) must be < hi (%g)", ErrInvalidArg, i, los[i], his[i])
		}
	}

	axes := make([]binning.AxisSpec, s.dims)
	for i := range axes {
		axes[i] = binning.AxisSpec{Kind: binning.EqualInterval, N: nbins[i], Lo: los[i], Hi: his[i]}
	}
	return s.install(axes)
}

// SetBoundaries installs an explicit-boundary BinSpec on one axis. R > 1
// combined with a boundary-scheme axis is rejected, since shifting is not
// defined for explicit boundaries.
func (s *Session) SetBoundaries(axis int, boundaries []float64) error {
	if s.started {
		return fmt.Errorf("%w: cannot change binning after samples were added", ErrAlreadyConfigured)
	}
	if axis < 0 || axis >= s.dims {
		return fmt.Errorf("%w: axis %d out of range [0,%d)", ErrInvalidArg, axis, s.dims)
	}
	for i := 1; i < len(boundaries); i++ {
		if !(boundaries[i-1] < boundaries[i]) {
			return fmt.Errorf("%w: boundaries must be strictly increasing", ErrInvalidArg)
		}
	}
	if s.numGrids > 1 {
		return fmt.Errorf("%w: axis %d uses explicit boundaries but R=%d shifted grids were requested", ErrRequiresR1, axis, s.numGrids)
	}

	axes := make([]binning.AxisSpec, len(s.axes))
	copy(axes, s.axes)
	boundsCopy := make([]float64, len(boundaries))
	copy(boundsCopy, boundaries)
	axes[axis] = binning.AxisSpec{Kind: binning.Boundaries, Boundaries: boundsCopy}
	return s.install(axes)
}

// install records a per-axis spec update. A Session's axes are configured
// one at a time (SetEqualInterval touches every axis at once; SetBoundaries
// touches one), so an axis still at its zero value is not a validation
// failure — it simply means that axis hasn't been set yet. install only
// attempts to build the full Binner once every axis holds a real spec;
// until then it just records the partial axis set and leaves the Binner
// unset.
func (s *Session) install(axes []binning.AxisSpec) error {
	if !allAxesSet(axes) {
		s.axes = axes
		s.binner = nil
		return nil
	}

	b, err := binning.New(axes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArg, err)
	}
	if s.numGrids > 1 && b.HasBoundaries() {
		return fmt.Errorf("%w: explicit boundaries require R == 1", ErrRequiresR1)
	}
	s.axes = axes
	s.binner = b
	return nil
}

// allAxesSet reports whether every axis has been given a real spec; a
// default-valued EqualInterval axis (N==0) marks one that hasn't.
func allAxesSet(axes []binning.AxisSpec) bool {
	for _, a := range axes {
		if a.Kind == binning.EqualInterval && a.N == 0 {
			return false
		}
	}
	return true
}

func (s *Session) configured() bool {
	return s.binner != nil
}

// ensureHistograms lazily allocates the R replica histograms once binning
// is configured and the first sample arrives.
func (s *Session) ensureHistograms() {
	if s.hists != nil {
		return
	}
	s.hists = make([]*sparsehist.Histogram, s.numGrids)
	for i := range s.hists {
		s.hists[i] = sparsehist.New(s.dims)
	}
}

// AddPoint bins x under every shifted grid and inserts it into the
// corresponding histogram replica.
func (s *Session) AddPoint(x []float64) error {
	if !s.configured() {
		return fmt.Errorf("%w: BinSpec not installed on every axis", ErrNotConfigured)
	}
	if len(x) != s.dims {
		return fmt.Errorf("%w: sample has %d dimensions, want %d", ErrInvalidArg, len(x), s.dims)
	}

	s.ensureHistograms()
	s.started = true

	for r := 0; r < s.numGrids; r++ {
		if err := s.binner.Bin(x, r, s.numGrids, s.scratch); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCoord, err)
		}
		if err := s.hists[r].Insert(s.scratch); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCoord, err)
		}
	}
	return nil
}

// AddData adds every vector in batch via AddPoint.
func (s *Session) AddData(batch [][]float64) error {
	for i, x := range batch {
		if err := s.AddPoint(x); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// AddMatrix adds every row of m as a sample, via AddPoint. This is a
// convenience for callers already working with gonum matrices upstream.
func (s *Session) AddMatrix(m mat.Matrix) error {
	rows, cols := m.Dims()
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, m)
		if err := s.AddPoint(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// Clear zeroes every histogram replica and resets the sample count, while
// keeping the installed BinSpec.
func (s *Session) Clear() {
	for _, h := range s.hists {
		h.Clear()
	}
}

// Entropy computes H(X), the entropy of the concatenation of every
// dimension tagged RoleTarget, averaged over R shifted grids.
func (s *Session) Entropy(rv []int) (float64, error) {
	positions, err := validateRoleVector(rv, s.dims, []int{RoleTarget}, nil)
	if err != nil {
		return 0, err
	}
	if !s.configured() || s.hists == nil {
		return 0, nil
	}

	target := positions[RoleTarget]
	return s.average(func(h *sparsehist.Histogram) float64 {
		d := marginal.Project(h, target)
		return entropy.H(d)
	}), nil
}

// MutualInfo computes I(X;Y) between the dimensions tagged RoleTarget (X)
// and RoleSource1 (Y), averaged over R shifted grids.
func (s *Session) MutualInfo(rv []int) (float64, error) {
	positions, err := validateRoleVector(rv, s.dims, []int{RoleTarget, RoleSource1}, nil)
	if err != nil {
		return 0, err
	}
	if !s.configured() || s.hists == nil {
		return 0, nil
	}

	x := positions[RoleTarget]
	y := positions[RoleSource1]
	combined := append(append([]int{}, x...), y...)
	return s.average(func(h *sparsehist.Histogram) float64 {
		d := marginal.Project(h, combined)
		return entropy.MutualInformation(d, len(x))
	}), nil
}

// pidInput builds the pid.Input for a role vector's target and ordered
// source positions, projecting the joint distribution once per replica.
func (s *Session) pidInput(h *sparsehist.Histogram, positions map[int][]int) pid.Input {
	target := positions[RoleTarget]
	sourceTags := []int{RoleSource1, RoleSource2}
	if len(positions[RoleSource3]) > 0 {
		sourceTags = append(sourceTags, RoleSource3)
	}

	combined := append([]int{}, target...)
	sourceLens := make([]int, 0, len(sourceTags))
	for _, tag := range sourceTags {
		combined = append(combined, positions[tag]...)
		sourceLens = append(sourceLens, len(positions[tag]))
	}

	return pid.Input{
		Joint:      marginal.Project(h, combined),
		TargetLen:  len(target),
		SourceLens: sourceLens,
	}
}

// RedundantInfo computes Imin(T;S1,...,Sk), the Williams–Beer redundant
// information that the tagged sources carry about the tagged target.
func (s *Session) RedundantInfo(rv []int) (float64, error) {
	positions, err := s.validatePID(rv)
	if err != nil {
		return 0, err
	}
	if !s.configured() || s.hists == nil {
		return 0, nil
	}
	return s.average(func(h *sparsehist.Histogram) float64 {
		return pid.Redundant(s.pidInput(h, positions))
	}), nil
}

// UniqueInfo computes U(S1), the information about the target that source
// 1 (RoleSource1, the "of" source) carries and no other
// tagged source does.
func (s *Session) UniqueInfo(rv []int) (float64, error) {
	positions, err := s.validatePID(rv)
	if err != nil {
		return 0, err
	}
	if !s.configured() || s.hists == nil {
		return 0, nil
	}
	return s.average(func(h *sparsehist.Histogram) float64 {
		return pid.Unique(s.pidInput(h, positions))
	}), nil
}

// Synergy computes the synergistic information about the target that only
// the tagged sources acting jointly carry.
func (s *Session) Synergy(rv []int) (float64, error) {
	positions, err := s.validatePID(rv)
	if err != nil {
		return 0, err
	}
	if !s.configured() || s.hists == nil {
		return 0, nil
	}

	var sum float64
	for _, h := range s.hists {
		v, err := pid.Synergy(s.pidInput(h, positions))
		if err != nil {
			return 0, fmt.Errorf("infopid: %w", err)
		}
		sum += v
	}
	return sum / float64(len(s.hists)), nil
}

// validatePID checks a role vector against the PID queries' allowed tags:
// target and the first two sources are required, a third source is
// optional.
func (s *Session) validatePID(rv []int) (map[int][]int, error) {
	return validateRoleVector(rv, s.dims,
		[]int{RoleTarget, RoleSource1, RoleSource2},
		[]int{RoleSource3})
}

// average runs estimate once per shifted-grid replica and returns the
// arithmetic mean.
func (s *Session) average(estimate func(*sparsehist.Histogram) float64) float64 {
	var sum float64
	for _, h := range s.hists {
		sum += estimate(h)
	}
	return sum / float64(len(s.hists))
}

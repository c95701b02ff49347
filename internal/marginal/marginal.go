// Package marginal implements the projection primitive: it
// walks a sparse joint histogram once and builds the empirical distribution
// over any role-tagged subset of dimensions, with lower-order marginals then
// derived from that one joint distribution by further in-memory
// aggregation rather than by re-scanning the histogram.
package marginal

import (
	"strconv"

	"github.com/infopid/infopid/internal/sparsehist"
)

// cell is one occupied point of a projected distribution: the component
// values at the distribution's positions, and the aggregated count.
type cell struct {
	vals  []int
	count int
}

// Distribution is the empirical distribution over a subset of the original
// sample's dimensions (its "positions"), built from one pass over a
// sparsehist.Histogram. Probabilities are always relative to N, the total
// over every occupied bin of the full joint space, never the sum of this
// distribution's own counts.
type Distribution struct {
	positions []int
	cells     map[string]*cell
	n         int
}

// Project builds the joint empirical distribution over the dimensions at
// positions, from a single walk of h. The distribution's positions keep the
// order given in positions; they are not sorted.
func Project(h *sparsehist.Histogram, positions []int) *Distribution {
	d := &Distribution{
		positions: append([]int(nil), positions...),
		cells:     make(map[string]*cell),
		n:         h.Total(),
	}

	buf := make([]byte, 0, 32)
	h.Each(func(e sparsehist.Entry) {
		vals := extract(e.Coord, positions)
		buf = encodeKey(buf[:0], vals)
		key := string(buf)

		if c, ok := d.cells[key]; ok {
			c.count += e.Count
			return
		}
		d.cells[key] = &cell{vals: vals, count: e.Count}
	})

	return d
}

// N returns the total sample count of the histogram this distribution was
// projected from (the universal denominator for probabilities).
func (d *Distribution) N() int { return d.n }

// Len returns the number of occupied cells.
func (d *Distribution) Len() int { return len(d.cells) }

// NumPositions returns the number of dimensions this distribution is over.
func (d *Distribution) NumPositions() int { return len(d.positions) }

// Probs returns the probability of every occupied cell, in unspecified
// order. With N == 0 it returns nil.
func (d *Distribution) Probs() []float64 {
	if d.n == 0 {
		return nil
	}
	out := make([]float64, 0, len(d.cells))
	for _, c := range d.cells {
		out = append(out, float64(c.count)/float64(d.n))
	}
	return out
}

// Each calls fn once per occupied cell with its component values (in this
// distribution's position order) and probability.
func (d *Distribution) Each(fn func(vals []int, prob float64)) {
	if d.n == 0 {
		return
	}
	for _, c := range d.cells {
		fn(c.vals, float64(c.count)/float64(d.n))
	}
}

// Lookup returns the probability mass at the given component values (in
// this distribution's position order), and whether any mass is there at
// all.
func (d *Distribution) Lookup(vals []int) (float64, bool) {
	if d.n == 0 {
		return 0, false
	}
	key := string(encodeKey(nil, vals))
	c, ok := d.cells[key]
	if !ok {
		return 0, false
	}
	return float64(c.count) / float64(d.n), true
}

// Marginalize derives a lower-order marginal by re-aggregating this
// distribution's own cells — not by re-scanning the source histogram — over
// the subset of positions named by relIdx (indices into d.positions, not
// original sample dimensions). An empty relIdx yields the degenerate
// marginal: a single cell holding all of N.
func (d *Distribution) Marginalize(relIdx []int) *Distribution {
	out := &Distribution{
		positions: make([]int, len(relIdx)),
		cells:     make(map[string]*cell),
		n:         d.n,
	}
	for i, rel := range relIdx {
		out.positions[i] = d.positions[rel]
	}

	buf := make([]byte, 0, 32)
	for _, c := range d.cells {
		subVals := extract(c.vals, relIdx)
		buf = encodeKey(buf[:0], subVals)
		key := string(buf)

		if existing, ok := out.cells[key]; ok {
			existing.count += c.count
			continue
		}
		out.cells[key] = &cell{vals: subVals, count: c.count}
	}
	return out
}

// extract returns the subsequence of coord at the given (already
// position-relative) indices.
func extract(coord []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, p := range idx {
		out[i] = coord[p]
	}
	return out
}

// encodeKey appends a comma-joined decimal encoding of vals onto buf and
// returns the extended slice, so callers can reuse buf across calls instead
// of allocating a new key buffer per cell.
func encodeKey(buf []byte, vals []int) []byte {
	for i, v := range vals {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return buf
}

package marginal

import (
	"math"
	"testing"

	"github.com/infopid/infopid/internal/sparsehist"
)

func buildHist(t *testing.T, coords ...[]int) *sparsehist.Histogram {
	t.Helper()
	h := sparsehist.New(len(coords[0]))
	for _, c := range coords {
		if err := h.Insert(c); err != nil {
			t.Fatalf("Insert(%v) error: %v", c, err)
		}
	}
	return h
}

func TestProjectIdentity(t *testing.T) {
	h := buildHist(t, []int{0, 0}, []int{0, 0}, []int{1, 1})
	d := Project(h, []int{0, 1})

	if d.N() != 3 {
		t.Fatalf("N() = %d, want 3", d.N())
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}

	p, ok := d.Lookup([]int{0, 0})
	if !ok || math.Abs(p-2.0/3) > 1e-12 {
		t.Errorf("Lookup([0,0]) = (%v,%v), want (0.666..,true)", p, ok)
	}
}

func TestProjectDropsDimension(t *testing.T) {
	h := buildHist(t, []int{0, 0}, []int{0, 1}, []int{1, 0}, []int{1, 1})
	d := Project(h, []int{0})

	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	p0, _ := d.Lookup([]int{0})
	p1, _ := d.Lookup([]int{1})
	if math.Abs(p0-0.5) > 1e-12 || math.Abs(p1-0.5) > 1e-12 {
		t.Errorf("marginal probabilities = (%v,%v), want (0.5,0.5)", p0, p1)
	}
}

func TestMarginalizeReaggregatesWithoutRescanning(t *testing.T) {
	h := buildHist(t, []int{0, 0, 0}, []int{0, 0, 1}, []int{1, 1, 0}, []int{1, 1, 1})
	joint := Project(h, []int{0, 1, 2})

	// Drop position 2 (the last dimension) by re-aggregating joint's own
	// cells, not by re-walking h.
	m := joint.Marginalize([]int{0, 1})
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	p, ok := m.Lookup([]int{0, 0})
	if !ok || math.Abs(p-0.5) > 1e-12 {
		t.Errorf("Lookup([0,0]) = (%v,%v), want (0.5,true)", p, ok)
	}
}

func TestMarginalizeEmptyKeepsN(t *testing.T) {
	h := buildHist(t, []int{0}, []int{1}, []int{1})
	d := Project(h, []int{0})
	m := d.Marginalize(nil)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (degenerate single-cell marginal)", m.Len())
	}
	p, ok := m.Lookup(nil)
	if !ok || math.Abs(p-1.0) > 1e-12 {
		t.Errorf("Lookup(nil) = (%v,%v), want (1.0,true)", p, ok)
	}
}

func TestEmptyHistogramYieldsZeroDistribution(t *testing.T) {
	h := sparsehist.New(1)
	d := Project(h, []int{0})

	if d.N() != 0 {
		t.Errorf("N() = %d, want 0", d.N())
	}
	if probs := d.Probs(); probs != nil {
		t.Errorf("Probs() = %v, want nil", probs)
	}
	if _, ok := d.Lookup([]int{0}); ok {
		t.Error("Lookup() on empty distribution returned ok=true")
	}
	count := 0
	d.Each(func([]int, float64) { count++ })
	if count != 0 {
		t.Errorf("Each() called %d times on empty distribution, want 0", count)
	}
}

func BenchmarkProject(b *testing.B) {
	h := sparsehist.New(3)
	for i := 0; i < 1000; i++ {
		_ = h.Insert([]int{i % 8, (i / 8) % 8, (i / 64) % 8})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Project(h, []int{0, 2})
	}
}

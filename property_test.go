package infopid_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/infopid/infopid"
)

// TestPropertyInvariants exercises the universal invariants (1)-(4)
// over randomly generated dimensionality and sample count.
func TestPropertyInvariants(t *testing.T) {
	seeds := []int64{1, 2, 3, 4, 5, 6, 7, 8}

	for _, seed := range seeds {
		rng := rand.New(rand.NewSource(seed))
		d := 1 + rng.Intn(5)
		n := 1 + rng.Intn(10000)

		s, err := infopid.New(d, 1)
		if err != nil {
			t.Fatalf("New(%d,1) error: %v", d, err)
		}
		nbins := make([]int, d)
		los := make([]float64, d)
		his := make([]float64, d)
		for i := range nbins {
			nbins[i] = 4
			los[i] = 0
			his[i] = 1
		}
		if err := s.SetEqualInterval(nbins, los, his); err != nil {
			t.Fatalf("SetEqualInterval() error: %v", err)
		}

		for i := 0; i < n; i++ {
			x := make([]float64, d)
			for j := range x {
				x[j] = rng.Float64()
			}
			if err := s.AddPoint(x); err != nil {
				t.Fatalf("AddPoint() error: %v", err)
			}
		}

		ignoreAll := func() []int {
			rv := make([]int, d)
			for i := range rv {
				rv[i] = infopid.RoleIgnore
			}
			return rv
		}

		// Invariant 3 (partial): entropy is non-negative.
		rvH := ignoreAll()
		rvH[0] = infopid.RoleTarget
		h, err := s.Entropy(rvH)
		if err != nil {
			t.Fatalf("Entropy() error: %v", err)
		}
		if h < -1e-9 {
			t.Errorf("D=%d N=%d: Entropy() = %v, want >= 0", d, n, h)
		}

		if d < 2 {
			continue
		}

		rvMI := ignoreAll()
		rvMI[0] = infopid.RoleTarget
		rvMI[1] = infopid.RoleSource1
		mi, err := s.MutualInfo(rvMI)
		if err != nil {
			t.Fatalf("MutualInfo() error: %v", err)
		}
		if mi < -1e-9 {
			t.Errorf("D=%d N=%d: MutualInfo() = %v, want >= 0", d, n, mi)
		}

		if d < 3 {
			continue
		}

		rv12 := ignoreAll()
		rv12[0] = infopid.RoleTarget
		rv12[1] = infopid.RoleSource1
		rv12[2] = infopid.RoleSource2

		red, err := s.RedundantInfo(rv12)
		if err != nil {
			t.Fatalf("RedundantInfo() error: %v", err)
		}
		if red < -1e-9 {
			t.Errorf("D=%d N=%d: RedundantInfo() = %v, want >= 0", d, n, red)
		}

		u1, err := s.UniqueInfo(rv12)
		if err != nil {
			t.Fatalf("UniqueInfo() error: %v", err)
		}

		rv21 := ignoreAll()
		rv21[0] = infopid.RoleTarget
		rv21[1] = infopid.RoleSource2
		rv21[2] = infopid.RoleSource1
		u2, err := s.UniqueInfo(rv21)
		if err != nil {
			t.Fatalf("UniqueInfo() (swapped) error: %v", err)
		}

		syn, err := s.Synergy(rv12)
		if err != nil {
			t.Fatalf("Synergy() error: %v", err)
		}
		if syn < -1e-9 {
			t.Errorf("D=%d N=%d: Synergy() = %v, want >= 0", d, n, syn)
		}

		// Invariant 2: swap symmetry of redundant_info and synergy.
		redSwapped, err := s.RedundantInfo(rv21)
		if err != nil {
			t.Fatalf("RedundantInfo() (swapped) error: %v", err)
		}
		if math.Abs(red-redSwapped) > 1e-9 {
			t.Errorf("D=%d N=%d: redundant([1,2,0])=%v != redundant([2,1,0])=%v", d, n, red, redSwapped)
		}

		synSwapped, err := s.Synergy(rv21)
		if err != nil {
			t.Fatalf("Synergy() (swapped) error: %v", err)
		}
		if math.Abs(syn-synSwapped) > 1e-9 {
			t.Errorf("D=%d N=%d: synergy([1,2,0])=%v != synergy([2,1,0])=%v", d, n, syn, synSwapped)
		}

		// Invariant 1: redundant + unique1 + unique2 + synergy == mutual_info_joint,
		// where mutual_info_joint is MI between the target and the union of the
		// two source dimensions (both tagged RoleSource1, since MutualInfo
		// groups same-tagged dimensions into one tuple).
		rvJoint := ignoreAll()
		rvJoint[0] = infopid.RoleTarget
		rvJoint[1] = infopid.RoleSource1
		rvJoint[2] = infopid.RoleSource1
		miJoint, err := s.MutualInfo(rvJoint)
		if err != nil {
			t.Fatalf("MutualInfo() (joint) error: %v", err)
		}

		sum := red + u1 + u2 + syn
		if math.Abs(sum-miJoint) > 1e-6 {
			t.Errorf("D=%d N=%d: redundant+unique1+unique2+synergy = %v, want mutual_info_joint = %v", d, n, sum, miJoint)
		}
	}
}

// TestPropertyDegeneracy checks the degenerate cases: an empty Session
// returns 0 for every query, and a Session whose samples are all in one bin
// has entropy exactly 0.
func TestPropertyDegeneracy(t *testing.T) {
	s, err := infopid.New(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetEqualInterval([]int{2, 2, 2}, []float64{0, 0, 0}, []float64{1, 1, 1}); err != nil {
		t.Fatal(err)
	}

	rv := []int{infopid.RoleTarget, infopid.RoleSource1, infopid.RoleSource2}
	rvH := []int{infopid.RoleTarget, infopid.RoleIgnore, infopid.RoleIgnore}
	if h, err := s.Entropy(rvH); err != nil || h != 0 {
		t.Errorf("Entropy() on empty Session = (%v,%v), want (0,nil)", h, err)
	}
	rvMI := []int{infopid.RoleTarget, infopid.RoleSource1, infopid.RoleIgnore}
	if mi, err := s.MutualInfo(rvMI); err != nil || mi != 0 {
		t.Errorf("MutualInfo() on empty Session = (%v,%v), want (0,nil)", mi, err)
	}
	if red, _ := s.RedundantInfo(rv); red != 0 {
		t.Errorf("RedundantInfo() on empty Session = %v, want 0", red)
	}
	if uniq, _ := s.UniqueInfo(rv); uniq != 0 {
		t.Errorf("UniqueInfo() on empty Session = %v, want 0", uniq)
	}
	if syn, _ := s.Synergy(rv); syn != 0 {
		t.Errorf("Synergy() on empty Session = %v, want 0", syn)
	}

	for i := 0; i < 500; i++ {
		if err := s.AddPoint([]float64{0.1, 0.1, 0.1}); err != nil {
			t.Fatal(err)
		}
	}
	h, err := s.Entropy([]int{infopid.RoleTarget, infopid.RoleIgnore, infopid.RoleIgnore})
	if err != nil {
		t.Fatal(err)
	}
	if h != 0 {
		t.Errorf("Entropy() with all samples in one bin = %v, want exactly 0", h)
	}
}

// TestClearThenRepeatIsReproducible checks that clearing and then re-adding
// the same samples yields the same results.
func TestClearThenRepeatIsReproducible(t *testing.T) {
	build := func() (*infopid.Session, error) {
		s, err := infopid.New(2, 1)
		if err != nil {
			return nil, err
		}
		if err := s.SetEqualInterval([]int{4, 4}, []float64{0, 0}, []float64{1, 1}); err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := build()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(9))
	samples := make([][]float64, 500)
	for i := range samples {
		samples[i] = []float64{rng.Float64(), rng.Float64()}
	}
	if err := s.AddData(samples); err != nil {
		t.Fatal(err)
	}
	rv := []int{infopid.RoleTarget, infopid.RoleSource1}
	mi1, err := s.MutualInfo(rv)
	if err != nil {
		t.Fatal(err)
	}

	s.Clear()
	if err := s.AddData(samples); err != nil {
		t.Fatal(err)
	}
	mi2, err := s.MutualInfo(rv)
	if err != nil {
		t.Fatal(err)
	}

	if mi1 != mi2 {
		t.Errorf("MutualInfo() after clear+re-add = %v, want bitwise equal to %v", mi2, mi1)
	}
}

// Package scenario generates the canonical three-variable systems used to
// exercise the PID estimators against known-answer invariants:
// duplicated sources (pure redundancy), independent sources (pure
// uniqueness), and XOR (pure synergy), plus a few degenerate single-variable
// systems. Each row is [target, source1, source2, ...], matching the
// role-vector convention RoleTarget=0, RoleSource1=1, RoleSource2=2,
// RoleSource3=3 used throughout this module.
package scenario

import (
	"fmt"
	"math/rand"
)

// System names one generator and the number of source columns it produces,
// for registry-style iteration over every canonical scenario (adapting the
// comparison package's TestSystems table).
type System struct {
	Name        string
	Description string
	NumSources  int
	Generate    func(n int, seed int64) ([][]float64, error)
}

// Systems returns every canonical scenario this package knows how to
// generate.
func Systems() []System {
	return []System{
		{
			Name:        "duplicated",
			Description: "target = source1 = source2, a fair coin (pure redundancy)",
			NumSources:  2,
			Generate:    func(n int, seed int64) ([][]float64, error) { return Duplicated(n, seed), nil },
		},
		{
			Name:        "independent",
			Description: "target = source1, source2 independent noise (pure uniqueness)",
			NumSources:  2,
			Generate:    func(n int, seed int64) ([][]float64, error) { return Independent(n, seed), nil },
		},
		{
			Name:        "xor",
			Description: "target = source1 XOR source2 (pure synergy)",
			NumSources:  2,
			Generate:    func(n int, seed int64) ([][]float64, error) { return XOR(n, seed), nil },
		},
		{
			Name:        "and",
			Description: "target = source1 AND source2 (mixed redundancy/synergy)",
			NumSources:  2,
			Generate:    func(n int, seed int64) ([][]float64, error) { return AND(n, seed), nil },
		},
		{
			Name:        "fair_coin",
			Description: "target is an unbiased single coin (maximum single-variable entropy)",
			NumSources:  0,
			Generate:    func(n int, seed int64) ([][]float64, error) { return FairCoin(n, seed), nil },
		},
		{
			Name:        "single_bin",
			Description: "target is a constant (zero entropy, degenerate histogram)",
			NumSources:  0,
			Generate: func(n int, seed int64) ([][]float64, error) {
				return SingleBin(n), nil
			},
		},
	}
}

// coin draws n independent fair-coin outcomes in {0,1}.
func coin(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if rng.Float64() < 0.5 {
			out[i] = 1
		}
	}
	return out
}

// Duplicated generates rows [t, s1, s2] with t = s1 = s2, an unbiased coin.
// Every source is perfectly redundant with the target and with each other:
// the unique and synergistic terms should estimate to ~0.
func Duplicated(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test fixtures, not security-sensitive
	q := coin(rng, n)

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = []float64{q[i], q[i], q[i]}
	}
	return rows
}

// Independent generates rows [t, s1, s2] with t = s1 and s2 an independent
// coin. Source1 carries all the unique information; source2 carries none.
func Independent(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test fixtures, not security-sensitive
	q1 := coin(rng, n)
	q2 := coin(rng, n)

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = []float64{q1[i], q1[i], q2[i]}
	}
	return rows
}

// XOR generates rows [t, s1, s2] with t = s1 XOR s2. Neither source alone
// carries any information about the target; the relationship is purely
// synergistic.
func XOR(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test fixtures, not security-sensitive
	q1 := coin(rng, n)
	q2 := coin(rng, n)

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		x := int(q1[i]) ^ int(q2[i])
		rows[i] = []float64{float64(x), q1[i], q2[i]}
	}
	return rows
}

// AND generates rows [t, s1, s2] with t = s1 AND s2, a system with both a
// redundant and a synergistic component (Williams & Beer's canonical
// example beyond pure XOR/copy).
func AND(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test fixtures, not security-sensitive
	q1 := coin(rng, n)
	q2 := coin(rng, n)

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		x := int(q1[i]) * int(q2[i])
		rows[i] = []float64{float64(x), q1[i], q2[i]}
	}
	return rows
}

// FairCoin generates n single-column rows, an unbiased coin: H should
// estimate to ~1 bit.
func FairCoin(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test fixtures, not security-sensitive
	q := coin(rng, n)

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{q[i]}
	}
	return rows
}

// SingleBin generates n single-column rows that are all the same constant:
// H should estimate to exactly 0.
func SingleBin(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{0}
	}
	return rows
}

// ByName looks up a registered System by name.
func ByName(name string) (System, error) {
	for _, s := range Systems() {
		if s.Name == name {
			return s, nil
		}
	}
	return System{}, fmt.Errorf("scenario: unknown system %q", name)
}

// Package entropy computes Shannon entropy and mutual information over the
// sparse empirical distributions produced by internal/marginal.
package entropy

import (
	"math"

	"github.com/infopid/infopid/internal/marginal"
)

// Log2Safe computes the base-2 logarithm of x, returning 0 for x <= 0 so
// that 0*log2(0) is treated as 0 rather than producing NaN or -Inf. It also
// returns 0 for NaN and for ±Inf.
func Log2Safe(x float64) float64 {
	if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Log2(x)
}

// Entropy computes H(p) = -Σ p_i * log2(p_i) over a set of occupied-cell
// probabilities. Zero or missing probabilities contribute nothing, matching
// the 0*log2(0) = 0 convention.
func Entropy(probs []float64) float64 {
	var sum float64
	for _, p := range probs {
		if p > 0 {
			sum += p * Log2Safe(p)
		}
	}
	return -sum
}

// H returns the entropy of a projected distribution. With N == 0 it returns
// 0, never NaN.
func H(d *marginal.Distribution) float64 {
	return Entropy(d.Probs())
}

// MutualInformation computes I(X;Y) = Σ p(x,y)*log2(p(x,y)/(p(x)p(y))) over
// a joint distribution whose positions are ordered [X dims..., Y dims...].
// xLen is the number of leading positions that belong to X; the rest belong
// to Y. The X and Y marginals are derived from joint by re-aggregation, not
// by re-scanning the source histogram.
func MutualInformation(joint *marginal.Distribution, xLen int) float64 {
	if joint.N() == 0 {
		return 0
	}

	total := joint.NumPositions()
	xIdx := make([]int, xLen)
	for i := range xIdx {
		xIdx[i] = i
	}
	yIdx := make([]int, total-xLen)
	for i := range yIdx {
		yIdx[i] = xLen + i
	}

	marginalX := joint.Marginalize(xIdx)
	marginalY := joint.Marginalize(yIdx)

	var mi float64
	joint.Each(func(vals []int, pXY float64) {
		if pXY <= 0 {
			return
		}
		pX, ok := marginalX.Lookup(extractLocal(vals, xIdx))
		if !ok || pX <= 0 {
			return
		}
		pY, ok := marginalY.Lookup(extractLocal(vals, yIdx))
		if !ok || pY <= 0 {
			return
		}
		mi += pXY * Log2Safe(pXY/(pX*pY))
	})
	return mi
}

// extractLocal pulls the subsequence of vals at idx; idx is expressed in
// vals' own index space (as built by MutualInformation above).
func extractLocal(vals []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, p := range idx {
		out[i] = vals[p]
	}
	return out
}

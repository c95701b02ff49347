package binning

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SuggestQuantileBoundaries computes nBins-1 interior boundaries that split
// sample into nBins equal-population bins, for use with the explicit-
// boundary scheme. Equal quantiles (from heavily repeated sample values) are
// collapsed, so fewer than nBins-1 boundaries may be returned. This has no
// equivalent in the source
// library; it is a convenience for callers who would otherwise hand-pick
// boundaries blind.
func SuggestQuantileBoundaries(sample []float64, nBins int) ([]float64, error) {
	if nBins < 1 {
		return nil, fmt.Errorf("binning: nBins %d must be >= 1", nBins)
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("binning: sample is empty")
	}
	if nBins == 1 {
		return nil, nil
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	boundaries := make([]float64, nBins-1)
	for i := 1; i < nBins; i++ {
		q := float64(i) / float64(nBins)
		boundaries[i-1] = stat.Quantile(q, stat.Empirical, sorted, nil)
	}
	return dedupe(boundaries), nil
}

// dedupe removes consecutive equal boundaries that can arise from heavily
// repeated sample values, keeping the result strictly increasing as New
// requires.
func dedupe(boundaries []float64) []float64 {
	if len(boundaries) == 0 {
		return boundaries
	}
	out := boundaries[:1]
	for _, b := range boundaries[1:] {
		if b > out[len(out)-1] {
			out = append(out, b)
		}
	}
	return out
}

// Package pid implements the Williams–Beer specific-information redundancy
// measure and the unique/synergistic information it derives.
// All computations for a query share one joint projection, built once by
// the caller and passed in as Input; every lower-order marginal used here
// is derived from that joint distribution by re-aggregation, never by a
// fresh histogram scan.
package pid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/infopid/infopid/internal/entropy"
	"github.com/infopid/infopid/internal/marginal"
)

// Input is the joint distribution p(T, S1, ..., Sk) together with enough
// layout information to slice out the target and each source's positions.
// Joint's positions must be ordered [target dims..., source1 dims...,
// source2 dims..., ...].
type Input struct {
	Joint      *marginal.Distribution
	TargetLen  int
	SourceLens []int // length 2 (bivariate) or 3 (trivariate)
}

func (in Input) targetIdx() []int {
	idx := make([]int, in.TargetLen)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// sourceIdx returns the joint-local position indices of source j (0-based).
func (in Input) sourceIdx(j int) []int {
	start := in.TargetLen
	for i := 0; i < j; i++ {
		start += in.SourceLens[i]
	}
	idx := make([]int, in.SourceLens[j])
	for i := range idx {
		idx[i] = start + i
	}
	return idx
}

// Redundant computes Imin(T; S1, ..., Sk) = Σ_t p(t) * min_j I(T=t; S_j),
// summing only over target outcomes with p(t) > 0.
func Redundant(in Input) float64 {
	if in.Joint.N() == 0 || len(in.SourceLens) == 0 {
		return 0
	}

	tIdx := in.targetIdx()
	pTarget := in.Joint.Marginalize(tIdx)
	k := len(in.SourceLens)

	tsDists := make([]*marginal.Distribution, k)
	sMarginals := make([]*marginal.Distribution, k)
	for j := 0; j < k; j++ {
		sIdx := in.sourceIdx(j)
		combined := append(append([]int{}, tIdx...), sIdx...)
		tsDists[j] = in.Joint.Marginalize(combined)
		relS := make([]int, len(sIdx))
		for i := range relS {
			relS[i] = in.TargetLen + i
		}
		sMarginals[j] = tsDists[j].Marginalize(relS)
	}

	var redundant float64
	pTarget.Each(func(tVals []int, pT float64) {
		if pT <= 0 {
			return
		}
		specifics := make([]float64, k)
		for j := 0; j < k; j++ {
			specifics[j] = specificInfo(tsDists[j], in.TargetLen, tVals, pT, sMarginals[j])
		}
		redundant += pT * floats.Min(specifics)
	})
	return redundant
}

// Unique computes U(S1) = I(T;S1) - Imin(T;S1,...,Sk), the unique
// information of the first source relative to the rest (the first source
// in Input's order is the "of" source).
func Unique(in Input) float64 {
	if in.Joint.N() == 0 {
		return 0
	}
	return uniqueFor(in, 0) - Redundant(in)
}

// Synergy computes Syn = I(T;S1,S2) - Imin - U(S1) - U(S2) for the bivariate
// case, generalised to k sources the same way redundant_info
// and unique_info generalise: Syn = I(T;S1,...,Sk) - Imin - Σ_j U(Sj). At
// k=2 this is exactly the bivariate formula.
func Synergy(in Input) (float64, error) {
	k := len(in.SourceLens)
	if k < 2 {
		return 0, fmt.Errorf("pid: synergy requires at least two sources, got %d", k)
	}
	if in.Joint.N() == 0 {
		return 0, nil
	}

	tIdx := in.targetIdx()
	var allSrc []int
	for j := 0; j < k; j++ {
		allSrc = append(allSrc, in.sourceIdx(j)...)
	}
	combined := append(append([]int{}, tIdx...), allSrc...)
	joint := in.Joint.Marginalize(combined)
	miJoint := entropy.MutualInformation(joint, in.TargetLen)

	r := Redundant(in)
	var sumUnique float64
	for j := 0; j < k; j++ {
		sumUnique += uniqueFor(in, j) - r
	}

	return miJoint - r - sumUnique, nil
}

// uniqueFor computes I(T; S_k) for source k, the mutual-information half of
// the unique-information formula.
func uniqueFor(in Input, k int) float64 {
	tIdx := in.targetIdx()
	combined := append(append([]int{}, tIdx...), in.sourceIdx(k)...)
	tsk := in.Joint.Marginalize(combined)
	return entropy.MutualInformation(tsk, in.TargetLen)
}

// specificInfo computes I(T=t; A) = Σ_a p(a|t) * [log2(1/p(t)) -
// log2(1/p(t|a))] from the joint p(T,A) distribution ts, for the single
// target outcome tVals with probability pT.
func specificInfo(ts *marginal.Distribution, targetLen int, tVals []int, pT float64, aMarginal *marginal.Distribution) float64 {
	var info float64
	ts.Each(func(vals []int, pTA float64) {
		if pTA <= 0 || !sameCoord(vals[:targetLen], tVals) {
			return
		}
		aVals := vals[targetLen:]
		pA, ok := aMarginal.Lookup(aVals)
		if !ok || pA <= 0 {
			return
		}
		pAGivenT := pTA / pT
		pTGivenA := pTA / pA
		info += pAGivenT * (entropy.Log2Safe(1/pT) - entropy.Log2Safe(1/pTGivenA))
	})
	return info
}

func sameCoord(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

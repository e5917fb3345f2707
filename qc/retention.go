package qc

import (
	"math"
	"sort"
)

// QualLen is the per-read tuple retained by the first retention pass:
// everything needed to choose a quality cutoff under a base budget,
// without holding sequence data.
type QualLen struct {
	Qual   float64
	Length uint32
}

// QualityCutoff returns the minimum mean quality a read must reach so
// that the reads at or above it total approximately the base budget.
// The budget is keepPercent percent of the pairs' total bases, or
// keepBases, whichever is smaller when both are set. Pairs are ranked
// best quality first (reordering the slice) and walked until the
// budget is crossed; the quality at the crossing is the cutoff. A pass
// with zero total bases yields +Inf: nothing can be retained.
func QualityCutoff(pairs []QualLen, keepPercent float64, keepBases uint64) float64 {
	var total uint64
	for _, p := range pairs {
		total += uint64(p.Length)
	}
	if total == 0 {
		return math.Inf(1)
	}
	budget := total
	if keepPercent > 0 {
		budget = uint64(keepPercent / 100 * float64(total))
	}
	if keepBases > 0 && keepBases < budget {
		budget = keepBases
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Qual > pairs[j].Qual })
	var cum uint64
	for _, p := range pairs {
		cum += uint64(p.Length)
		if cum >= budget {
			return p.Qual
		}
	}
	return pairs[len(pairs)-1].Qual
}

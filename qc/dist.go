package qc

import (
	"math"
	"sort"
)

// LengthBounds and QualityBounds are the fixed threshold tables of the
// summary report. Each count is the number of reads strictly exceeding
// the bound. The bounds are part of the report contract and stay in
// ascending order.
var (
	LengthBounds  = []uint32{200, 500, 1000, 2000, 5000, 10000, 30000, 50000, 100000, 1000000}
	QualityBounds = []float64{5, 7, 10, 12, 15, 20, 25, 30}
)

// Distribution retains one length per accepted read and one quality
// per scored read: the minimum sufficient state for the order
// statistics of a pass (medians, N50, threshold counts). Observe
// appends in O(1); the query methods sort once, lazily.
type Distribution struct {
	lengths   []uint32
	qualities []float64
	sorted    bool
}

// Observe appends one accepted read. A NaN quality contributes the
// length only.
func (d *Distribution) Observe(length uint32, meanQ float64) {
	d.lengths = append(d.lengths, length)
	if !math.IsNaN(meanQ) {
		d.qualities = append(d.qualities, meanQ)
	}
	d.sorted = false
}

func (d *Distribution) sort() {
	if d.sorted {
		return
	}
	sort.Slice(d.lengths, func(i, j int) bool { return d.lengths[i] < d.lengths[j] })
	sort.Float64s(d.qualities)
	d.sorted = true
}

// Reads returns the number of retained reads.
func (d *Distribution) Reads() uint64 { return uint64(len(d.lengths)) }

// Bases returns the total retained bases.
func (d *Distribution) Bases() uint64 {
	var n uint64
	for _, l := range d.lengths {
		n += uint64(l)
	}
	return n
}

// MedianLength returns the median read length, the floor average of
// the two central lengths for even counts. Zero for an empty pass.
func (d *Distribution) MedianLength() uint32 {
	n := len(d.lengths)
	if n == 0 {
		return 0
	}
	d.sort()
	mid := n / 2
	if n%2 == 0 {
		return (d.lengths[mid-1] + d.lengths[mid]) / 2
	}
	return d.lengths[mid]
}

// MedianQuality returns the median of the scored reads' qualities,
// averaging the two central values for even counts. NaN when nothing
// was scored.
func (d *Distribution) MedianQuality() float64 {
	n := len(d.qualities)
	if n == 0 {
		return math.NaN()
	}
	d.sort()
	mid := n / 2
	if n%2 == 0 {
		return (d.qualities[mid-1] + d.qualities[mid]) / 2
	}
	return d.qualities[mid]
}

// N50 returns the smallest length L such that reads of length >= L
// hold at least half of all retained bases, zero for an empty pass.
func (d *Distribution) N50() uint32 {
	if len(d.lengths) == 0 {
		return 0
	}
	d.sort()
	half := d.Bases() / 2
	var cum uint64
	for i := len(d.lengths) - 1; i >= 0; i-- {
		cum += uint64(d.lengths[i])
		if cum >= half {
			return d.lengths[i]
		}
	}
	return d.lengths[0]
}

// LengthThresholds returns the count of reads strictly longer than
// each of LengthBounds, in bound order.
func (d *Distribution) LengthThresholds() []ThresholdCount {
	d.sort()
	out := make([]ThresholdCount, len(LengthBounds))
	for i, bound := range LengthBounds {
		b := bound
		idx := sort.Search(len(d.lengths), func(j int) bool { return d.lengths[j] > b })
		out[i] = ThresholdCount{Bound: float64(bound), Count: uint64(len(d.lengths) - idx)}
	}
	return out
}

// QualityThresholds returns the count of scored reads with mean
// quality strictly above each of QualityBounds, in bound order.
func (d *Distribution) QualityThresholds() []ThresholdCount {
	d.sort()
	out := make([]ThresholdCount, len(QualityBounds))
	for i, bound := range QualityBounds {
		b := bound
		idx := sort.Search(len(d.qualities), func(j int) bool { return d.qualities[j] > b })
		out[i] = ThresholdCount{Bound: bound, Count: uint64(len(d.qualities) - idx)}
	}
	return out
}

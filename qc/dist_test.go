package qc

import (
	"math"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func observeLengths(d *Distribution, lengths []uint32, meanQ float64) {
	for _, l := range lengths {
		d.Observe(l, meanQ)
	}
}

func counts(tc []ThresholdCount) []uint64 {
	out := make([]uint64, len(tc))
	for i, c := range tc {
		out[i] = c.Count
	}
	return out
}

func TestDistributionEmpty(t *testing.T) {
	var d Distribution
	expect.EQ(t, d.Reads(), uint64(0))
	expect.EQ(t, d.Bases(), uint64(0))
	expect.EQ(t, d.N50(), uint32(0))
	expect.EQ(t, d.MedianLength(), uint32(0))
	if got := d.MedianQuality(); !math.IsNaN(got) {
		t.Errorf("MedianQuality: got %v, want NaN", got)
	}
}

func TestDistributionSummary(t *testing.T) {
	var d Distribution
	observeLengths(&d, []uint32{100, 200, 300, 400, 5000}, 10)
	expect.EQ(t, d.Reads(), uint64(5))
	expect.EQ(t, d.Bases(), uint64(6000))
	expect.EQ(t, d.N50(), uint32(5000))
	expect.EQ(t, d.MedianLength(), uint32(300))
	expect.EQ(t, d.MedianQuality(), 10.0)
}

func TestN50(t *testing.T) {
	var d Distribution
	observeLengths(&d, []uint32{10, 100, 1000}, math.NaN())
	expect.EQ(t, d.N50(), uint32(1000))

	d = Distribution{}
	observeLengths(&d, []uint32{100, 100, 100, 100}, math.NaN())
	expect.EQ(t, d.N50(), uint32(100))

	d = Distribution{}
	observeLengths(&d, []uint32{1, 1, 1, 1, 4}, math.NaN())
	expect.EQ(t, d.N50(), uint32(4))
}

// The N50 defining property: reads at least as long as the N50 cover
// at least half of the bases, and the N50 is a length that occurs.
func TestN50Property(t *testing.T) {
	var d Distribution
	lengths := []uint32{13, 999, 52, 4000, 771, 3, 3, 52, 120}
	observeLengths(&d, lengths, math.NaN())
	n50 := d.N50()
	var (
		cum   uint64
		found bool
	)
	for _, l := range lengths {
		if l >= n50 {
			cum += uint64(l)
		}
		if l == n50 {
			found = true
		}
	}
	if !found {
		t.Errorf("N50 %d is not an observed length", n50)
	}
	if cum < d.Bases()/2 {
		t.Errorf("lengths >= %d cover %d of %d bases", n50, cum, d.Bases())
	}
}

func TestMedianLength(t *testing.T) {
	var d Distribution
	observeLengths(&d, []uint32{10, 1000}, math.NaN())
	expect.EQ(t, d.MedianLength(), uint32(505))

	d = Distribution{}
	observeLengths(&d, []uint32{3, 4}, math.NaN())
	expect.EQ(t, d.MedianLength(), uint32(3))

	d = Distribution{}
	observeLengths(&d, []uint32{1000, 10, 100}, math.NaN())
	expect.EQ(t, d.MedianLength(), uint32(100))
}

func TestMedianQuality(t *testing.T) {
	var d Distribution
	d.Observe(1, 12)
	d.Observe(1, 10)
	d.Observe(1, 11)
	expect.EQ(t, d.MedianQuality(), 11.0)
	d.Observe(1, 13)
	expect.EQ(t, d.MedianQuality(), 11.5)
}

func TestDistributionUnscored(t *testing.T) {
	var d Distribution
	d.Observe(50, math.NaN())
	d.Observe(60, 30)
	expect.EQ(t, d.Reads(), uint64(2))
	expect.EQ(t, d.MedianQuality(), 30.0)
	expect.EQ(t, counts(d.QualityThresholds()), []uint64{1, 1, 1, 1, 1, 1, 1, 0})
}

// Threshold counts are strict: a read exactly at a bound does not
// count toward it.
func TestThresholds(t *testing.T) {
	var d Distribution
	observeLengths(&d, []uint32{200, 201, 500, 5000}, math.NaN())
	expect.EQ(t, counts(d.LengthThresholds()), []uint64{3, 1, 1, 1, 0, 0, 0, 0, 0, 0})

	d = Distribution{}
	d.Observe(1, 5)
	d.Observe(1, 5.1)
	d.Observe(1, 20)
	expect.EQ(t, counts(d.QualityThresholds()), []uint64{2, 1, 1, 1, 1, 0, 0, 0})
}

func TestDistributionResort(t *testing.T) {
	var d Distribution
	d.Observe(10, math.NaN())
	expect.EQ(t, d.MedianLength(), uint32(10))
	d.Observe(1000, math.NaN())
	d.Observe(100, math.NaN())
	expect.EQ(t, d.MedianLength(), uint32(100))
}

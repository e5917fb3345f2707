package qc

import "math"

// Stats holds the O(1) running tallies over the reads accepted in one
// pipeline pass.
type Stats struct {
	// Reads is the number of accepted reads.
	Reads uint64
	// Bases is the total number of accepted bases.
	Bases uint64
	// MinLength and MaxLength are the extreme accepted read lengths,
	// zero when no read was observed.
	MinLength uint32
	MaxLength uint32
	// ScoredReads counts the accepted reads that carried a quality
	// track; only they contribute to the quality sum.
	ScoredReads uint64

	sumQuality float64
}

// Observe folds one accepted read into the tallies. A NaN quality
// counts the read but not its quality.
func (s *Stats) Observe(length uint32, meanQ float64) {
	if s.Reads == 0 || length < s.MinLength {
		s.MinLength = length
	}
	if length > s.MaxLength {
		s.MaxLength = length
	}
	s.Reads++
	s.Bases += uint64(length)
	if !math.IsNaN(meanQ) {
		s.ScoredReads++
		s.sumQuality += meanQ
	}
}

// MeanLength returns Bases/Reads in whole bases, zero for an empty
// pass.
func (s *Stats) MeanLength() uint64 {
	if s.Reads == 0 {
		return 0
	}
	return s.Bases / s.Reads
}

// MeanQuality returns the arithmetic mean of the per-read mean
// qualities. The probability-domain correction happens once per read;
// it is not reapplied across reads. NaN when nothing was scored.
func (s *Stats) MeanQuality() float64 {
	if s.ScoredReads == 0 {
		return math.NaN()
	}
	return s.sumQuality / float64(s.ScoredReads)
}

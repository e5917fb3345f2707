package qc

import "math"

// qualOffset is the ASCII offset of Phred+33 encoded quality tracks.
const qualOffset = 33

// minErrProb floors the mean error probability before conversion back
// to the Phred scale, keeping the logarithm in domain for tracks made
// entirely of maximum scores. Q100 is far above anything a basecaller
// emits.
const minErrProb = 1e-10

// errProbs maps a raw Phred+33 quality byte to its error probability.
// Bytes below the offset clamp to probability 1.
var errProbs [256]float64

func init() {
	for i := range errProbs {
		q := i - qualOffset
		if q < 0 {
			q = 0
		}
		errProbs[i] = math.Exp(float64(q) * (-0.1 * math.Ln10))
	}
}

// MeanQuality converts a Phred+33 quality track into one mean read
// quality: per-base error probabilities are averaged arithmetically
// and the mean is converted back to the Phred scale. Averaging in the
// probability domain weights the result toward the least confident
// bases; averaging the scores directly would overestimate reads with
// heterogeneous per-base confidence. Returns NaN for an empty track.
func MeanQuality(qual []byte) float64 {
	if len(qual) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, b := range qual {
		sum += errProbs[b]
	}
	mean := sum / float64(len(qual))
	if mean >= 1 {
		return 0 // avoids the -0 of -10*log10(1)
	}
	if mean < minErrProb {
		mean = minErrProb
	}
	return -10 * math.Log10(mean)
}

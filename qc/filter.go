package qc

import "math"

// Filter is the pure accept/reject predicate over a read's post-trim
// length and mean quality.
type Filter struct {
	minLen, maxLen uint32
	minQ, maxQ     float64
}

// NewFilter derives the filter from opts. A zero maximum length or
// quality lifts that bound.
func NewFilter(opts Opts) Filter {
	f := Filter{
		minLen: opts.MinLength,
		maxLen: opts.MaxLength,
		minQ:   opts.MinQuality,
		maxQ:   opts.MaxQuality,
	}
	if f.maxLen == 0 {
		f.maxLen = math.MaxUint32
	}
	return f
}

// WithMinQuality returns a copy of f whose minimum quality bound is
// raised to q if q is higher. The retention mode applies its computed
// cutoff this way in the second pass.
func (f Filter) WithMinQuality(q float64) Filter {
	if q > f.minQ {
		f.minQ = q
	}
	return f
}

// AcceptLength reports whether a post-trim length passes the length
// bounds alone.
func (f Filter) AcceptLength(length uint32) bool {
	return length >= f.minLen && length <= f.maxLen
}

// Accept reports whether a read passes all bounds. A NaN quality (no
// quality track) bypasses the quality bounds.
func (f Filter) Accept(length uint32, meanQ float64) bool {
	if !f.AcceptLength(length) {
		return false
	}
	if math.IsNaN(meanQ) {
		return true
	}
	if meanQ < f.minQ {
		return false
	}
	if f.maxQ > 0 && meanQ > f.maxQ {
		return false
	}
	return true
}

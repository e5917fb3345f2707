package qc

import (
	"github.com/pkg/errors"
)

// ErrConfig is the cause of every error reported for a contradictory
// option set. Callers distinguish configuration errors from input
// errors via errors.Cause.
var ErrConfig = errors.New("invalid configuration")

// Opts parameterize one run of the read pipeline.
type Opts struct {
	// MinLength and MaxLength bound the post-trim read length,
	// inclusive. A zero MaxLength means unbounded.
	MinLength uint32
	MaxLength uint32
	// MinQuality and MaxQuality bound the mean read quality, inclusive.
	// A zero MaxQuality means unbounded. Reads without a quality track
	// (FASTA input, fast mode) bypass both bounds.
	MinQuality float64
	MaxQuality float64
	// TrimStart and TrimEnd bases are removed from each read's leading
	// and trailing ends before any length or quality is computed.
	TrimStart int
	TrimEnd   int
	// Fast skips quality scoring entirely; quality statistics report
	// the NaN sentinel and quality bounds do not apply.
	Fast bool
	// TopK is the number of top-ranked lengths and qualities retained
	// for the summary.
	TopK int
	// KeepPercent retains the best-quality percentage of total bases;
	// KeepBases retains the best-quality reads up to an absolute base
	// budget. Zero disables each; when both are set the smaller budget
	// wins. Either engages the two-pass retention mode.
	KeepPercent float64
	KeepBases   uint64
	// TempDir holds the retention spool for non-seekable sources.
	// Empty means the system temp directory.
	TempDir string
}

// DefaultOpts sets the default values of Opts.
var DefaultOpts = Opts{
	TopK: 5,
}

// Retention reports whether the two-pass retention mode is engaged.
func (o Opts) Retention() bool {
	return o.KeepPercent > 0 || o.KeepBases > 0
}

// Validate rejects contradictory option sets. It runs before any read
// is consumed; every error it returns has cause ErrConfig.
func (o Opts) Validate() error {
	if o.MaxLength > 0 && o.MinLength > o.MaxLength {
		return errors.Wrapf(ErrConfig, "min length %d exceeds max length %d", o.MinLength, o.MaxLength)
	}
	if o.MaxQuality > 0 && o.MinQuality > o.MaxQuality {
		return errors.Wrapf(ErrConfig, "min quality %g exceeds max quality %g", o.MinQuality, o.MaxQuality)
	}
	if o.TrimStart < 0 || o.TrimEnd < 0 {
		return errors.Wrapf(ErrConfig, "negative trim (%d, %d)", o.TrimStart, o.TrimEnd)
	}
	if o.KeepPercent < 0 || o.KeepPercent > 100 {
		return errors.Wrapf(ErrConfig, "keep percent %g outside (0,100]", o.KeepPercent)
	}
	if o.TopK < 0 {
		return errors.Wrapf(ErrConfig, "negative top count %d", o.TopK)
	}
	if o.Fast && o.Retention() {
		return errors.Wrapf(ErrConfig, "retention ranks reads by quality; it cannot run with quality scoring disabled")
	}
	return nil
}

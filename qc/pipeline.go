package qc

import (
	"math"

	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/readqc/encoding/fastx"
	"github.com/pkg/errors"
)

// Source yields records in input order, one Scan at a time.
type Source interface {
	Scan(rec *fastx.Record) bool
	Err() error
}

// Sink consumes the records accepted by the filter. fastx.Writer
// implements it. A nil Sink discards accepted records.
type Sink interface {
	Write(rec *fastx.Record) error
}

// Run drives one complete filtering run over src: a single pass
// normally, two passes when opts engage the retention mode. For
// retention, reopen produces a fresh Source for the second pass; a
// caller whose input cannot be reopened (standard input) passes nil
// and the pipeline spools the first pass to local disk instead.
// Accepted reads go to sink as they are decided. The returned Summary
// covers the final accepted set.
func Run(opts Opts, src Source, reopen func() (Source, error), sink Sink) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !opts.Retention() {
		return runPass(opts, NewFilter(opts), src, sink)
	}
	return runRetention(opts, src, reopen, sink)
}

// runPass streams src once: trim, score, filter, accumulate, write.
func runPass(opts Opts, filter Filter, src Source, sink Sink) (*Summary, error) {
	var (
		stats   Stats
		dist    Distribution
		topLen  = NewTopK(opts.TopK)
		topQual = NewTopK(opts.TopK)
		rec     fastx.Record
	)
	for src.Scan(&rec) {
		rec.TrimEnds(opts.TrimStart, opts.TrimEnd)
		length := uint32(len(rec.Seq))
		meanQ := math.NaN()
		if !opts.Fast && !rec.IsFASTA() {
			meanQ = MeanQuality(gunsafe.StringToBytes(rec.Qual))
		}
		if !filter.Accept(length, meanQ) {
			continue
		}
		stats.Observe(length, meanQ)
		dist.Observe(length, meanQ)
		topLen.Observe(float64(length))
		if !math.IsNaN(meanQ) {
			topQual.Observe(meanQ)
		}
		if sink != nil {
			if err := sink.Write(&rec); err != nil {
				return nil, errors.Wrap(err, "write accepted read")
			}
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return buildSummary(&stats, &dist, topLen, topQual), nil
}

// runRetention runs pass 1 (length bounds only, collect quality/length
// pairs, spool if the source cannot be reopened), derives the quality
// cutoff, and runs pass 2 with the raised quality bound.
func runRetention(opts Opts, src Source, reopen func() (Source, error), sink Sink) (*Summary, error) {
	var sp *spool
	if reopen == nil {
		var err error
		if sp, err = newSpool(opts.TempDir); err != nil {
			return nil, err
		}
		defer sp.remove()
	}

	var (
		filter = NewFilter(opts)
		pairs  []QualLen
		rec    fastx.Record
	)
	for src.Scan(&rec) {
		raw := rec
		rec.TrimEnds(opts.TrimStart, opts.TrimEnd)
		length := uint32(len(rec.Seq))
		if !filter.AcceptLength(length) {
			continue
		}
		meanQ := MeanQuality(gunsafe.StringToBytes(rec.Qual))
		if math.IsNaN(meanQ) {
			if rec.IsFASTA() {
				return nil, errors.Errorf("read %s: retention needs quality scores, input is FASTA", rec.ID)
			}
			// A read trimmed to nothing has no bases to budget.
		} else {
			pairs = append(pairs, QualLen{Qual: meanQ, Length: length})
		}
		if sp != nil {
			if err := sp.add(&raw); err != nil {
				return nil, err
			}
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}

	cutoff := QualityCutoff(pairs, opts.KeepPercent, opts.KeepBases)
	if math.IsInf(cutoff, 1) {
		// Zero bases in pass 1: nothing can be retained.
		return buildSummary(&Stats{}, &Distribution{}, NewTopK(opts.TopK), NewTopK(opts.TopK)), nil
	}
	log.Debug.Printf("retention: %d candidate reads, quality cutoff %.2f", len(pairs), cutoff)

	var second Source
	if sp != nil {
		if err := sp.finish(); err != nil {
			return nil, err
		}
		ss, err := sp.replay()
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := ss.Close(); err != nil {
				log.Error.Printf("close retention spool: %v", err)
			}
		}()
		second = ss
	} else {
		var err error
		if second, err = reopen(); err != nil {
			return nil, errors.Wrap(err, "reopen input for retention pass 2")
		}
	}
	return runPass(opts, filter.WithMinQuality(cutoff), second, sink)
}

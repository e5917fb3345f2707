package main

// Input and output plumbing: transparent input decompression, optional
// compressed read output, the per-read TSV dumps, and the run driver
// tying them to the qc pipeline.

import (
	"bufio"
	"context"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/hts/bgzf"
	"github.com/grailbio/readqc/encoding/fastx"
	"github.com/grailbio/readqc/qc"
	"github.com/klauspost/compress/zstd"
)

// openInput opens path for reading with transparent decompression. An
// empty path selects standard input, sniffing the compression format
// from the stream; files dispatch on the path extension. The returned
// cleanup closes the decompressor and the file, in that order.
func openInput(ctx context.Context, path string) (io.Reader, func() error, error) {
	if path == "" {
		r, _ := compress.NewReader(os.Stdin)
		return r, r.Close, nil
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	var in io.Reader = f.Reader(ctx)
	if c, ok := compress.NewReaderPath(in, path); ok {
		cleanup := func() error {
			er := errors.Once{}
			er.Set(c.Close())
			er.Set(f.Close(ctx))
			return er.Err()
		}
		return c, cleanup, nil
	}
	return in, func() error { return f.Close(ctx) }, nil
}

// createOutput opens the read output stream, compressed per codec
// ("gz", "zst", or "" for none). An empty path selects standard
// output. The returned cleanup flushes and closes everything in
// order.
func createOutput(ctx context.Context, path, codec string, level int) (io.Writer, func() error, error) {
	var (
		base io.Writer = os.Stdout
		f    file.File
	)
	if path != "" {
		var err error
		if f, err = file.Create(ctx, path); err != nil {
			return nil, nil, err
		}
		base = f.Writer(ctx)
	}
	closeFile := func(er *errors.Once) {
		if f != nil {
			er.Set(f.Close(ctx))
		}
	}
	switch codec {
	case "gz":
		zw, err := bgzf.NewWriterLevel(base, level, runtime.NumCPU())
		if err != nil {
			if f != nil {
				_ = f.Close(ctx)
			}
			return nil, nil, err
		}
		cleanup := func() error {
			er := errors.Once{}
			er.Set(zw.Close())
			closeFile(&er)
			return er.Err()
		}
		return zw, cleanup, nil
	case "zst":
		zw, err := zstd.NewWriter(base, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			if f != nil {
				_ = f.Close(ctx)
			}
			return nil, nil, err
		}
		cleanup := func() error {
			er := errors.Once{}
			er.Set(zw.Close())
			closeFile(&er)
			return er.Err()
		}
		return zw, cleanup, nil
	}
	bw := bufio.NewWriter(base)
	cleanup := func() error {
		er := errors.Once{}
		er.Set(bw.Flush())
		closeFile(&er)
		return er.Err()
	}
	return bw, cleanup, nil
}

// tsvDump is a one-column TSV file of per-read values.
type tsvDump struct {
	f file.File
	w *tsv.Writer
}

func createDump(ctx context.Context, path string) (*tsvDump, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	return &tsvDump{f: f, w: tsv.NewWriter(f.Writer(ctx))}, nil
}

func (d *tsvDump) close(ctx context.Context) error {
	er := errors.Once{}
	er.Set(d.w.Flush())
	er.Set(d.f.Close(ctx))
	return er.Err()
}

// dumpSink forwards accepted reads to out (when set) and appends one
// line per read to the optional length and quality dumps. Reads
// without a quality score contribute no quality line.
type dumpSink struct {
	out       qc.Sink
	lengths   *tsv.Writer
	qualities *tsv.Writer
	fast      bool
}

func (s *dumpSink) Write(rec *fastx.Record) error {
	if s.lengths != nil {
		s.lengths.WriteUint32(uint32(len(rec.Seq)))
		if err := s.lengths.EndLine(); err != nil {
			return err
		}
	}
	if s.qualities != nil && !s.fast && !rec.IsFASTA() && len(rec.Qual) > 0 {
		q := qc.MeanQuality(gunsafe.StringToBytes(rec.Qual))
		s.qualities.WriteString(strconv.FormatFloat(q, 'f', 1, 64))
		if err := s.qualities.EndLine(); err != nil {
			return err
		}
	}
	if s.out != nil {
		return s.out.Write(rec)
	}
	return nil
}

// run drives one bio-readqc invocation: resolve configuration, wire
// the input, output, and dump streams, run the pipeline, and render
// the report.
func run(ctx context.Context, flags qcFlags, opts qc.Opts) (err error) {
	codec, err := outputCodec(flags.outputPath, flags.outputType, flags.compressLevel)
	if err != nil {
		return err
	}
	if err = opts.Validate(); err != nil {
		return err
	}

	in, closeIn, err := openInput(ctx, flags.inputPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := closeIn(); e != nil && err == nil {
			err = e
		}
	}()

	// The retention mode needs a second pass over the input. A path can
	// be reopened; standard input makes the pipeline spool instead.
	var (
		reopen      func() (qc.Source, error)
		reopenClose func() error
	)
	if flags.inputPath != "" {
		reopen = func() (qc.Source, error) {
			r, c, e := openInput(ctx, flags.inputPath)
			if e != nil {
				return nil, e
			}
			reopenClose = c
			return fastx.NewScanner(r, fastx.All), nil
		}
	}
	defer func() {
		if reopenClose == nil {
			return
		}
		if e := reopenClose(); e != nil && err == nil {
			err = e
		}
	}()

	var sink qc.Sink
	if !flags.statsOnly {
		out, closeOut, e := createOutput(ctx, flags.outputPath, codec, flags.compressLevel)
		if e != nil {
			return e
		}
		defer func() {
			if e := closeOut(); e != nil && err == nil {
				err = e
			}
		}()
		sink = fastx.NewWriter(out)
	}
	if flags.lengthsPath != "" || flags.qualitiesPath != "" {
		ds := &dumpSink{out: sink, fast: opts.Fast}
		if flags.lengthsPath != "" {
			d, e := createDump(ctx, flags.lengthsPath)
			if e != nil {
				return e
			}
			defer func() {
				if e := d.close(ctx); e != nil && err == nil {
					err = e
				}
			}()
			ds.lengths = d.w
		}
		if flags.qualitiesPath != "" {
			d, e := createDump(ctx, flags.qualitiesPath)
			if e != nil {
				return e
			}
			defer func() {
				if e := d.close(ctx); e != nil && err == nil {
					err = e
				}
			}()
			ds.qualities = d.w
		}
		sink = ds
	}

	summary, err := qc.Run(opts, fastx.NewScanner(in, fastx.All), reopen, sink)
	if err != nil {
		return err
	}

	var report io.Writer = os.Stderr
	if flags.reportPath != "" {
		f, e := file.Create(ctx, flags.reportPath)
		if e != nil {
			return e
		}
		defer file.CloseAndReport(ctx, f, &err)
		report = f.Writer(ctx)
	} else if flags.statsOnly {
		report = os.Stdout
	}
	if flags.json {
		return writeJSON(report, summary)
	}
	return writeReport(report, summary, flags.verbosity, flags.header)
}

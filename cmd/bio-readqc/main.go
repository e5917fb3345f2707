package main

/*
bio-readqc filters nanopore sequencing reads and reports summary
statistics over the accepted set.

Input is FASTQ or FASTA, plain or compressed, from a file or standard
input. Accepted reads stream to -output (standard output by default)
and the summary report goes to stderr, or to stdout with -stats, or to
the -report path. -verbosity grows the report from a single
machine-readable line up to threshold tables and top read rankings.

Examples:

Filter reads shorter than 1kb or below Q10, writing a gzip output:

    bio-readqc -input reads.fastq.gz -min-len 1000 -min-qual 10 -output filtered.fastq.gz

Summarize a run without writing reads:

    bio-readqc -input reads.fastq.gz -stats -verbosity 3

Keep the best half of the bases, ranked by read quality:

    bio-readqc -input reads.fastq.gz -keep-percent 50 -output best.fastq
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/readqc/qc"
	"github.com/pkg/errors"
)

var (
	inputFlag  = flag.String("input", "", "Input FASTQ or FASTA path, decompressed by extension; standard input when empty")
	outputFlag = flag.String("output", "", "Output path for accepted reads; standard output when empty")

	minLenFlag      = flag.Uint("min-len", uint(qc.DefaultOpts.MinLength), "Minimum read length (bp)")
	maxLenFlag      = flag.Uint("max-len", uint(qc.DefaultOpts.MaxLength), "Maximum read length (bp); 0 disables")
	minQualFlag     = flag.Float64("min-qual", qc.DefaultOpts.MinQuality, "Minimum mean read quality (Q)")
	maxQualFlag     = flag.Float64("max-qual", qc.DefaultOpts.MaxQuality, "Maximum mean read quality (Q); 0 disables")
	trimStartFlag   = flag.Int("trim-start", qc.DefaultOpts.TrimStart, "Bases to trim from the start of each read")
	trimEndFlag     = flag.Int("trim-end", qc.DefaultOpts.TrimEnd, "Bases to trim from the end of each read")
	keepPercentFlag = flag.Float64("keep-percent", qc.DefaultOpts.KeepPercent, "Keep the best reads holding this percentage of the input bases")
	keepBasesFlag   = flag.Uint64("keep-bases", qc.DefaultOpts.KeepBases, "Keep the best reads holding at most this many bases")
	fastFlag        = flag.Bool("fast", qc.DefaultOpts.Fast, "Skip quality scoring; quality filters and statistics are disabled")
	tempDirFlag     = flag.String("temp-dir", qc.DefaultOpts.TempDir, "Directory for the retention spool when reading standard input (default os.TempDir())")

	statsFlag     = flag.Bool("stats", false, "Report only; suppress read output and write the report to stdout")
	reportFlag    = flag.String("report", "", "Write the report to this path")
	jsonFlag      = flag.Bool("json", false, "Render the report as JSON")
	headerFlag    = flag.Bool("header", false, "Prepend a column header to the minimal report")
	verbosityFlag = flag.Int("verbosity", 0, "Report detail from 0 (single line) to 3 (thresholds and rankings)")
	topFlag       = flag.Int("top", qc.DefaultOpts.TopK, "Number of top ranked reads in the detailed report")

	readLengthsFlag   = flag.String("read-lengths", "", "Write one accepted read length per line to this path")
	readQualitiesFlag = flag.String("read-qualities", "", "Write one accepted read mean quality per line to this path")

	outputTypeFlag    = flag.String("output-type", "", "Output compression: u (none), g (bgzip), z (zstd); overrides the -output extension")
	compressLevelFlag = flag.Int("compress-level", 6, "Compression level for compressed output [1-9]")
)

// qcFlags collects the presentation options; filtering options live in
// qc.Opts.
type qcFlags struct {
	inputPath     string
	outputPath    string
	statsOnly     bool
	reportPath    string
	json          bool
	header        bool
	verbosity     int
	lengthsPath   string
	qualitiesPath string
	outputType    string
	compressLevel int
}

// outputCodec resolves the output compression: an explicit override
// wins, otherwise the output path extension decides. Empty means
// uncompressed.
func outputCodec(path, override string, level int) (string, error) {
	if level < 1 || level > 9 {
		return "", errors.Wrapf(qc.ErrConfig, "compression level %d outside [1,9]", level)
	}
	if override != "" {
		switch strings.ToLower(override) {
		case "u":
			return "", nil
		case "g":
			return "gz", nil
		case "z":
			return "zst", nil
		}
		return "", errors.Wrapf(qc.ErrConfig, "invalid output type %q (u, g, or z)", override)
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		return "gz", nil
	case strings.HasSuffix(path, ".zst"):
		return "zst", nil
	}
	return "", nil
}

func usage() {
	fmt.Printf("Usage: %s [OPTIONS]\n", os.Args[0])
	fmt.Printf("Reads FASTQ or FASTA from -input or standard input.\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()
	ctx := vcontext.Background()

	if flag.NArg() > 0 {
		log.Fatalf("unexpected positional arguments %q; inputs are read from -input or standard input", flag.Args())
	}
	verbosity := *verbosityFlag
	if verbosity < 0 {
		verbosity = 0
	} else if verbosity > 3 {
		verbosity = 3
	}

	opts := qc.Opts{
		MinLength:   uint32(*minLenFlag),
		MaxLength:   uint32(*maxLenFlag),
		MinQuality:  *minQualFlag,
		MaxQuality:  *maxQualFlag,
		TrimStart:   *trimStartFlag,
		TrimEnd:     *trimEndFlag,
		Fast:        *fastFlag,
		TopK:        *topFlag,
		KeepPercent: *keepPercentFlag,
		KeepBases:   *keepBasesFlag,
		TempDir:     *tempDirFlag,
	}
	flags := qcFlags{
		inputPath:     *inputFlag,
		outputPath:    *outputFlag,
		statsOnly:     *statsFlag,
		reportPath:    *reportFlag,
		json:          *jsonFlag,
		header:        *headerFlag,
		verbosity:     verbosity,
		lengthsPath:   *readLengthsFlag,
		qualitiesPath: *readQualitiesFlag,
		outputType:    *outputTypeFlag,
		compressLevel: *compressLevelFlag,
	}
	if err := run(ctx, flags, opts); err != nil {
		if errors.Cause(err) == qc.ErrConfig {
			fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/grailbio/readqc/qc"
)

// writeReport renders the summary at the requested level of detail: 0
// is a single machine-readable line, 1 a labelled block, 2 adds the
// threshold tables, 3 adds the top read rankings. Quality sections are
// omitted when no accepted read carried a quality track.
func writeReport(w io.Writer, s *qc.Summary, verbosity int, header bool) error {
	if verbosity <= 0 {
		if header {
			if _, err := fmt.Fprintln(w, "reads bases n50 longest shortest mean_length median_length mean_quality median_quality"); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%d %d %d %d %d %d %d %.1f %.1f\n",
			s.Reads, s.Bases, s.N50, s.Longest, s.Shortest,
			s.MeanLength, s.MedianLength, s.MeanQuality, s.MedianQuality)
		return err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "\nRead summary\n============\n\n")
	fmt.Fprintf(&b, "Number of reads:      %d\n", s.Reads)
	fmt.Fprintf(&b, "Number of bases:      %d\n", s.Bases)
	fmt.Fprintf(&b, "N50 read length:      %d\n", s.N50)
	fmt.Fprintf(&b, "Longest read:         %d\n", s.Longest)
	fmt.Fprintf(&b, "Shortest read:        %d\n", s.Shortest)
	fmt.Fprintf(&b, "Mean read length:     %d\n", s.MeanLength)
	fmt.Fprintf(&b, "Median read length:   %d\n", s.MedianLength)
	fmt.Fprintf(&b, "Mean read quality:    %.2f\n", s.MeanQuality)
	fmt.Fprintf(&b, "Median read quality:  %.2f\n", s.MedianQuality)
	if verbosity > 1 {
		writeThresholds(&b, s)
	}
	if verbosity > 2 {
		writeRanking(&b, s)
	}
	_, err := w.Write(b.Bytes())
	return err
}

func writeThresholds(b *bytes.Buffer, s *qc.Summary) {
	fmt.Fprintf(b, "\nRead length thresholds (bp)\n\n")
	for _, t := range s.LengthThresholds {
		fmt.Fprintf(b, "> %-10.0f%-12d%04.1f%%\n", t.Bound, t.Count, percent(t.Count, s.Reads))
	}
	if math.IsNaN(s.MeanQuality) {
		return
	}
	fmt.Fprintf(b, "\nRead quality thresholds (Q)\n\n")
	for _, t := range s.QualityThresholds {
		fmt.Fprintf(b, "> %-6.0f%-12d%04.1f%%\n", t.Bound, t.Count, percent(t.Count, s.Reads))
	}
}

func writeRanking(b *bytes.Buffer, s *qc.Summary) {
	fmt.Fprintf(b, "\nTop ranking read lengths (bp)\n\n")
	for i, l := range s.TopLengths {
		fmt.Fprintf(b, "%d. %d\n", i+1, l)
	}
	if len(s.TopQualities) == 0 {
		return
	}
	fmt.Fprintf(b, "\nTop ranking read qualities (Q)\n\n")
	for i, q := range s.TopQualities {
		fmt.Fprintf(b, "%d. %04.1f\n", i+1, q)
	}
}

func percent(n, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// reportJSON is the machine-readable report. Quality fields are null
// when no accepted read carried a quality track; the threshold tables
// are emitted either way.
type reportJSON struct {
	Reads             uint64          `json:"reads"`
	Bases             uint64          `json:"bases"`
	N50               uint32          `json:"n50"`
	Longest           uint32          `json:"longest"`
	Shortest          uint32          `json:"shortest"`
	MeanLength        uint64          `json:"mean_length"`
	MedianLength      uint32          `json:"median_length"`
	MeanQuality       *float64        `json:"mean_quality"`
	MedianQuality     *float64        `json:"median_quality"`
	LengthThresholds  []thresholdJSON `json:"length_thresholds"`
	QualityThresholds []thresholdJSON `json:"quality_thresholds"`
}

type thresholdJSON struct {
	Bound float64 `json:"bound"`
	Count uint64  `json:"count"`
}

func thresholds(in []qc.ThresholdCount) []thresholdJSON {
	out := make([]thresholdJSON, 0, len(in))
	for _, t := range in {
		out = append(out, thresholdJSON{Bound: t.Bound, Count: t.Count})
	}
	return out
}

func writeJSON(w io.Writer, s *qc.Summary) error {
	r := reportJSON{
		Reads:             s.Reads,
		Bases:             s.Bases,
		N50:               s.N50,
		Longest:           s.Longest,
		Shortest:          s.Shortest,
		MeanLength:        s.MeanLength,
		MedianLength:      s.MedianLength,
		LengthThresholds:  thresholds(s.LengthThresholds),
		QualityThresholds: thresholds(s.QualityThresholds),
	}
	if !math.IsNaN(s.MeanQuality) {
		r.MeanQuality = &s.MeanQuality
	}
	if !math.IsNaN(s.MedianQuality) {
		r.MedianQuality = &s.MedianQuality
	}
	b, err := json.Marshal(&r)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/grailbio/readqc/qc"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func testSummary() *qc.Summary {
	return &qc.Summary{
		Reads:         4,
		Bases:         5700,
		N50:           5000,
		Longest:       5000,
		Shortest:      100,
		MeanLength:    1425,
		MedianLength:  300,
		MeanQuality:   12.2,
		MedianQuality: 10.5,
		LengthThresholds: []qc.ThresholdCount{
			{Bound: 200, Count: 3},
			{Bound: 500, Count: 1},
			{Bound: 1000000, Count: 0},
		},
		QualityThresholds: []qc.ThresholdCount{
			{Bound: 5, Count: 4},
			{Bound: 10, Count: 2},
			{Bound: 30, Count: 0},
		},
		TopLengths:   []uint32{5000, 400},
		TopQualities: []float64{20, 9.5},
	}
}

func render(t *testing.T, s *qc.Summary, verbosity int, header bool) string {
	var b bytes.Buffer
	assert.NoError(t, writeReport(&b, s, verbosity, header))
	return b.String()
}

const blockWant = `
Read summary
============

Number of reads:      4
Number of bases:      5700
N50 read length:      5000
Longest read:         5000
Shortest read:        100
Mean read length:     1425
Median read length:   300
Mean read quality:    12.20
Median read quality:  10.50
`

const thresholdsWant = `
Read length thresholds (bp)

> 200       3           75.0%
> 500       1           25.0%
> 1000000   0           00.0%

Read quality thresholds (Q)

> 5     4           100.0%
> 10    2           50.0%
> 30    0           00.0%
`

const rankingWant = `
Top ranking read lengths (bp)

1. 5000
2. 400

Top ranking read qualities (Q)

1. 20.0
2. 09.5
`

func TestReportLine(t *testing.T) {
	expect.EQ(t, render(t, testSummary(), 0, false),
		"4 5700 5000 5000 100 1425 300 12.2 10.5\n")
}

func TestReportLineHeader(t *testing.T) {
	expect.EQ(t, render(t, testSummary(), 0, true),
		"reads bases n50 longest shortest mean_length median_length mean_quality median_quality\n"+
			"4 5700 5000 5000 100 1425 300 12.2 10.5\n")
}

func TestReportLineEmpty(t *testing.T) {
	s := &qc.Summary{MeanQuality: math.NaN(), MedianQuality: math.NaN()}
	expect.EQ(t, render(t, s, 0, false), "0 0 0 0 0 0 0 NaN NaN\n")
}

func TestReportBlock(t *testing.T) {
	expect.EQ(t, render(t, testSummary(), 1, false), blockWant)
}

func TestReportThresholds(t *testing.T) {
	expect.EQ(t, render(t, testSummary(), 2, false), blockWant+thresholdsWant)
}

func TestReportRanking(t *testing.T) {
	expect.EQ(t, render(t, testSummary(), 3, false), blockWant+thresholdsWant+rankingWant)
}

// A summary without quality scores renders NaN in the block and drops
// the quality table and ranking entirely.
func TestReportUnscored(t *testing.T) {
	s := &qc.Summary{
		Reads:             1,
		Bases:             50,
		N50:               50,
		Longest:           50,
		Shortest:          50,
		MeanLength:        50,
		MedianLength:      50,
		MeanQuality:       math.NaN(),
		MedianQuality:     math.NaN(),
		LengthThresholds:  []qc.ThresholdCount{{Bound: 200, Count: 0}},
		QualityThresholds: []qc.ThresholdCount{{Bound: 5, Count: 0}},
		TopLengths:        []uint32{50},
	}
	got := render(t, s, 3, false)
	expect.True(t, strings.Contains(got, "Mean read quality:    NaN\n"))
	expect.True(t, strings.Contains(got, "Read length thresholds (bp)"))
	expect.True(t, !strings.Contains(got, "Read quality thresholds"))
	expect.True(t, strings.Contains(got, "Top ranking read lengths (bp)"))
	expect.True(t, !strings.Contains(got, "Top ranking read qualities"))
}

func TestReportJSON(t *testing.T) {
	var b bytes.Buffer
	assert.NoError(t, writeJSON(&b, testSummary()))
	expect.EQ(t, b.String(),
		`{"reads":4,"bases":5700,"n50":5000,"longest":5000,"shortest":100,"mean_length":1425,"median_length":300,"mean_quality":12.2,"median_quality":10.5,`+
			`"length_thresholds":[{"bound":200,"count":3},{"bound":500,"count":1},{"bound":1000000,"count":0}],`+
			`"quality_thresholds":[{"bound":5,"count":4},{"bound":10,"count":2},{"bound":30,"count":0}]}`+"\n")
}

func TestReportJSONUnscored(t *testing.T) {
	s := &qc.Summary{MeanQuality: math.NaN(), MedianQuality: math.NaN()}
	var b bytes.Buffer
	assert.NoError(t, writeJSON(&b, s))
	expect.EQ(t, b.String(),
		`{"reads":0,"bases":0,"n50":0,"longest":0,"shortest":0,"mean_length":0,"median_length":0,"mean_quality":null,"median_quality":null,`+
			`"length_thresholds":[],"quality_thresholds":[]}`+"\n")
}

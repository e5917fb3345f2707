package qc

// ThresholdCount pairs one report threshold with the count of reads
// strictly exceeding it.
type ThresholdCount struct {
	Bound float64
	Count uint64
}

// Summary is the immutable result of one pipeline pass. Quality fields
// are NaN when no accepted read carried a quality track.
type Summary struct {
	Reads         uint64
	Bases         uint64
	N50           uint32
	Longest       uint32
	Shortest      uint32
	MeanLength    uint64
	MedianLength  uint32
	MeanQuality   float64
	MedianQuality float64
	// LengthThresholds and QualityThresholds follow LengthBounds and
	// QualityBounds in order.
	LengthThresholds  []ThresholdCount
	QualityThresholds []ThresholdCount
	// TopLengths and TopQualities are descending, at most TopK entries.
	TopLengths   []uint32
	TopQualities []float64
}

func buildSummary(stats *Stats, dist *Distribution, topLen, topQual *TopK) *Summary {
	s := &Summary{
		Reads:             stats.Reads,
		Bases:             stats.Bases,
		N50:               dist.N50(),
		Longest:           stats.MaxLength,
		Shortest:          stats.MinLength,
		MeanLength:        stats.MeanLength(),
		MedianLength:      dist.MedianLength(),
		MeanQuality:       stats.MeanQuality(),
		MedianQuality:     dist.MedianQuality(),
		LengthThresholds:  dist.LengthThresholds(),
		QualityThresholds: dist.QualityThresholds(),
		TopQualities:      topQual.Top(),
	}
	for _, v := range topLen.Top() {
		s.TopLengths = append(s.TopLengths, uint32(v))
	}
	return s
}

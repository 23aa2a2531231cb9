package models

// RawSample is a single timestamped observation as delivered by an
// upstream data source. Timestamp is milliseconds since epoch; a zero
// or negative value means the source omitted it and the sample must be
// discarded during aggregation.
//
// Fields is an open-ended payload: scalar indicators carry one named
// field (e.g. "price"), currency sources carry one entry per pair and
// the key set may change sample-to-sample.
type RawSample struct {
	Timestamp int64
	Fields    map[string]float64
}

// MillisPerHour is the width of one aggregation bucket.
const MillisPerHour int64 = 3_600_000

// HourBucket truncates a millisecond timestamp down to the start of
// its containing clock hour.
func HourBucket(ts int64) int64 {
	return (ts / MillisPerHour) * MillisPerHour
}

// ScalarPoint is the hourly representative of a scalar indicator:
// the value of the latest sample observed within the hour.
// OriginalTimestamp records which raw sample won the selection.
type ScalarPoint struct {
	HourTimestamp     int64   `json:"hourTimestamp"`
	Value             float64 `json:"value"`
	OriginalTimestamp int64   `json:"originalTimestamp"`
}

// PairPoint is the hourly representative of a multi-pair indicator.
// Fields holds every pair key of the winning sample; pairs may appear
// and disappear across hours as the source adds or drops them.
type PairPoint struct {
	HourTimestamp     int64              `json:"hourTimestamp"`
	Fields            map[string]float64 `json:"fields"`
	OriginalTimestamp int64              `json:"originalTimestamp"`
}

// SentimentSnapshot is a single current reading of the fear & greed
// index, not a series. Classification is the source-provided label.
type SentimentSnapshot struct {
	Value          float64
	Classification string
	Timestamp      int64
}

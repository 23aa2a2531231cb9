// Package aggregation collapses irregular raw samples into one
// representative sample per clock hour. Inputs may be unordered and
// may contain malformed entries; those are dropped, never escalated.
package aggregation

import (
	"sort"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// HourlyScalar reduces samples to at most one ScalarPoint per hour
// bucket, keeping the value of the latest sample within each hour.
// Samples without a timestamp or without the named field are skipped.
// Ties on equal timestamps go to the later sample in input order.
//
// The result is sorted strictly ascending by hour; hours with no
// contributing sample are simply absent.
func HourlyScalar(samples []models.RawSample, field string) []models.ScalarPoint {
	buckets := make(map[int64]models.ScalarPoint)

	for _, s := range samples {
		if s.Timestamp <= 0 {
			continue
		}
		v, ok := s.Fields[field]
		if !ok {
			continue
		}

		hour := models.HourBucket(s.Timestamp)
		if cur, seen := buckets[hour]; seen && s.Timestamp < cur.OriginalTimestamp {
			continue
		}
		buckets[hour] = models.ScalarPoint{
			HourTimestamp:     hour,
			Value:             v,
			OriginalTimestamp: s.Timestamp,
		}
	}

	out := make([]models.ScalarPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HourTimestamp < out[j].HourTimestamp })
	return out
}

// HourlyPairs is the multi-pair variant of HourlyScalar: the winning
// sample's entire field map is copied into the point, so the set of
// known pairs can change across hours as the source adds or drops
// pairs. Samples without a timestamp are skipped.
func HourlyPairs(samples []models.RawSample) []models.PairPoint {
	buckets := make(map[int64]models.PairPoint)

	for _, s := range samples {
		if s.Timestamp <= 0 {
			continue
		}

		hour := models.HourBucket(s.Timestamp)
		if cur, seen := buckets[hour]; seen && s.Timestamp < cur.OriginalTimestamp {
			continue
		}

		fields := make(map[string]float64, len(s.Fields))
		for k, v := range s.Fields {
			fields[k] = v
		}
		buckets[hour] = models.PairPoint{
			HourTimestamp:     hour,
			Fields:            fields,
			OriginalTimestamp: s.Timestamp,
		}
	}

	out := make([]models.PairPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HourTimestamp < out[j].HourTimestamp })
	return out
}

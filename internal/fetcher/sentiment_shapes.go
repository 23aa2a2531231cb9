package fetcher

import (
	"sort"
	"strconv"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// The sentiment upstream has shipped its payload in three different
// shapes over time: a list where the last element is authoritative, a
// flat object, and an object nesting the flat record one level down.
// Each shape gets a pure extractor; they are tried in priority order
// and the first match wins. No match yields a nil snapshot.

type snapshotExtractor func(doc any) (*models.SentimentSnapshot, bool)

var snapshotExtractors = []snapshotExtractor{
	snapshotFromList,
	snapshotFromFlat,
	snapshotFromNested,
}

// ExtractSentimentSnapshot resolves a decoded JSON document into a
// snapshot, or nil when no known shape matches.
func ExtractSentimentSnapshot(doc any) *models.SentimentSnapshot {
	for _, extract := range snapshotExtractors {
		if snap, ok := extract(doc); ok {
			return snap
		}
	}
	return nil
}

func snapshotFromList(doc any) (*models.SentimentSnapshot, bool) {
	list, ok := doc.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	return snapshotFromFlat(list[len(list)-1])
}

func snapshotFromFlat(doc any) (*models.SentimentSnapshot, bool) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, false
	}

	value, ok := numberField(obj, "value")
	if !ok {
		return nil, false
	}

	snap := &models.SentimentSnapshot{Value: value}
	if c, ok := stringField(obj, "classification", "value_classification"); ok {
		snap.Classification = c
	}
	if ts, ok := numberField(obj, "timestamp"); ok {
		snap.Timestamp = int64(ts)
	}
	return snap, true
}

// snapshotFromNested matches an object whose flat record sits exactly
// one level down (e.g. {"data": {...}}). Keys are visited in sorted
// order so the pick is deterministic when several nested objects
// exist.
func snapshotFromNested(doc any) (*models.SentimentSnapshot, bool) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, false
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if snap, ok := snapshotFromFlat(obj[k]); ok {
			return snap, true
		}
		if snap, ok := snapshotFromList(obj[k]); ok {
			return snap, true
		}
	}
	return nil, false
}

// numberField reads a numeric field that upstreams deliver either as a
// JSON number or as a numeric string.
func numberField(obj map[string]any, key string) (float64, bool) {
	switch v := obj[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringField(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

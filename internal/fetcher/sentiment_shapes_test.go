package fetcher

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return doc
}

func TestExtractSentimentSnapshot_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantNil   bool
		wantValue float64
		wantClass string
		wantTS    int64
	}{
		{
			name:      "list with authoritative last element",
			raw:       `[{"value":"20","classification":"Extreme Fear"},{"value":"62","classification":"Greed","timestamp":"1700000000000"}]`,
			wantValue: 62,
			wantClass: "Greed",
			wantTS:    1_700_000_000_000,
		},
		{
			name:      "flat object with numeric value",
			raw:       `{"value":37,"classification":"Fear","timestamp":1700000000000}`,
			wantValue: 37,
			wantClass: "Fear",
			wantTS:    1_700_000_000_000,
		},
		{
			name:      "nested object one level down",
			raw:       `{"data":{"value":"55","value_classification":"Neutral"}}`,
			wantValue: 55,
			wantClass: "Neutral",
		},
		{
			name:      "nested list one level down",
			raw:       `{"data":[{"value":"10","value_classification":"Extreme Fear"},{"value":"12","value_classification":"Extreme Fear"}]}`,
			wantValue: 12,
			wantClass: "Extreme Fear",
		},
		{
			name:    "no recognizable shape",
			raw:     `{"metadata":{"note":"nothing here"},"status":"ok"}`,
			wantNil: true,
		},
		{
			name:    "empty list",
			raw:     `[]`,
			wantNil: true,
		},
		{
			name:    "value not numeric",
			raw:     `{"value":"abc","classification":"Fear"}`,
			wantNil: true,
		},
		{
			name:      "flat wins over deeper nesting",
			raw:       `{"value":40,"data":{"value":90}}`,
			wantValue: 40,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := ExtractSentimentSnapshot(decode(t, tc.raw))
			if tc.wantNil {
				if snap != nil {
					t.Fatalf("expected nil snapshot, got %+v", snap)
				}
				return
			}
			if snap == nil {
				t.Fatalf("expected snapshot, got nil")
			}
			if snap.Value != tc.wantValue {
				t.Fatalf("value=%v want %v", snap.Value, tc.wantValue)
			}
			if snap.Classification != tc.wantClass {
				t.Fatalf("classification=%q want %q", snap.Classification, tc.wantClass)
			}
			if tc.wantTS != 0 && snap.Timestamp != tc.wantTS {
				t.Fatalf("timestamp=%d want %d", snap.Timestamp, tc.wantTS)
			}
		})
	}
}

package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_IndexSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("hours"); got != "168" {
			t.Errorf("hours=%q want 168", got)
		}
		_, _ = w.Write([]byte(`{"data":[
			{"timestamp":3600000000,"price":5230.5},
			{"timestamp":3603600000,"price":5241.2},
			{"price":5000}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{IndexURL: srv.URL})
	samples, err := c.IndexSamples(context.Background(), 168)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("len=%d", len(samples))
	}
	if samples[0].Timestamp != 3_600_000_000 || samples[0].Fields["price"] != 5230.5 {
		t.Fatalf("first sample: %+v", samples[0])
	}
	// The timestamp-less record is passed through; the aggregator is
	// the one that drops it.
	if samples[2].Timestamp != 0 {
		t.Fatalf("expected zero timestamp, got %d", samples[2].Timestamp)
	}
}

func TestClient_CurrencySamples_OpenKeySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"timestamp":3600000000,"USD/EUR":0.9,"USD/GBP":0.8},
			{"timestamp":3607200000,"USD/EUR":0.91,"USD/JPY":149.3}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{CurrencyURL: srv.URL})
	samples, err := c.CurrencySamples(context.Background(), 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("len=%d", len(samples))
	}
	if samples[0].Fields["USD/GBP"] != 0.8 || samples[1].Fields["USD/JPY"] != 149.3 {
		t.Fatalf("pair keys not carried through: %+v", samples)
	}
}

func TestClient_Sentiment(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		wantNil bool
	}{
		{name: "ok nested", status: 200, body: `{"data":[{"value":"31","value_classification":"Fear"}]}`},
		{name: "unknown shape is nil not error", status: 200, body: `{"status":"ok"}`, wantNil: true},
		{name: "upstream 500", status: 500, body: `boom`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(Config{SentimentURL: srv.URL})
			snap, err := c.Sentiment(context.Background())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantNil != (snap == nil) {
				t.Fatalf("snap=%+v wantNil=%v", snap, tc.wantNil)
			}
		})
	}
}

func TestDecodeSamples_SkipsNonNumericFields(t *testing.T) {
	recs := []map[string]any{
		{"timestamp": float64(7_200_000), "price": float64(101.5), "source": "yahoo"},
	}
	out := DecodeSamples(recs)
	if len(out) != 1 || out[0].Timestamp != 7_200_000 {
		t.Fatalf("decode: %+v", out)
	}
	if out[0].Fields["price"] != 101.5 {
		t.Fatalf("price not decoded: %+v", out[0].Fields)
	}
	if _, ok := out[0].Fields["source"]; ok {
		t.Fatalf("non-numeric field should be skipped")
	}
}

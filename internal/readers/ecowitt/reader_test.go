package ecowitt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
)

func TestEcowittParseLiveConvertsUnits(t *testing.T) {
	liveJSON := `{
		"data": {
			"outdoor": {
				"temperature": {"time": "1780387200", "value": "68"},
				"humidity": {"value": "55"}
			},
			"pressure": {"relative": {"value": "29.92"}},
			"wind": {
				"wind_speed": {"value": "10"},
				"wind_gust": {"value": "15"},
				"wind_direction": {"value": "180"}
			},
			"rainfall": {
				"rain_rate": {"value": "0.1"},
				"daily": {"value": "0.5"}
			}
		}
	}`

	r := New("https://example.invalid/live", "https://example.invalid/daily")
	now := time.Unix(1780387200, 0).UTC()
	record, err := r.Parse(model.Station{ID: "s1"}, liveJSON, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Temperature == nil || *record.Temperature != 20 {
		t.Errorf("Temperature = %v, want 20 (68F)", record.Temperature)
	}
	if record.WindSpeed == nil || *record.WindSpeed != 16.0934 {
		t.Errorf("WindSpeed = %v, want 16.0934 (10mph)", record.WindSpeed)
	}
	if record.Rain == nil || *record.Rain != 2.54 {
		t.Errorf("Rain = %v, want 2.54mm (0.1in)", record.Rain)
	}
}

func TestEcowittParseDailyComputesMaxWindGust(t *testing.T) {
	liveJSON := `{
		"data": {
			"outdoor": {"temperature": {"time": "1780387200", "value": "68"}}
		}
	}`
	dailyJSON := `{
		"wind": {
			"wind_gust": {"list": {"1780300800": "10", "1780387200": "17.2"}}
		}
	}`

	r := New("https://example.invalid/live", "https://example.invalid/daily")
	now := time.Unix(1780387200, 0).UTC()
	record, err := r.Parse(model.Station{ID: "s1"}, liveJSON, dailyJSON, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = 27.6806
	if record.MaxWindGust == nil || *record.MaxWindGust != want {
		t.Errorf("MaxWindGust = %v, want %v (17.2mph converted)", record.MaxWindGust, want)
	}
}

func TestEcowittFetchHitsBothEndpoints(t *testing.T) {
	liveHit, dailyHit := false, false
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		liveHit = true
		w.Write([]byte(`{"data":{}}`))
	}))
	defer live.Close()
	daily := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dailyHit = true
		w.Write([]byte(`{}`))
	}))
	defer daily.Close()

	r := New(live.URL, daily.URL)
	_, _, err := r.Fetch(context.Background(), model.Station{ID: "s1", Field1: "a", Field2: "b", Field3: "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !liveHit {
		t.Error("expected live endpoint to be hit")
	}
	if !dailyHit {
		t.Error("expected daily endpoint to be hit")
	}
}

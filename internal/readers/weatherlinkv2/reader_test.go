package weatherlinkv2

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
)

func TestParseCoalescesAcrossSensorsAndConvertsUnits(t *testing.T) {
	live := `{
		"sensors": [
			{"data": [{"ts": 1780387200, "temp": 66.56, "hum": 33, "bar_sea_level": 29.85,
				"wind_speed": 7.0, "wind_speed_hi_last_10_min": 22.0, "wind_dir": 292,
				"rain_rate_mm": 0, "rain_day_mm": 0}]}
		]
	}`

	r := New("https://example.invalid")
	now := time.Unix(1780387200, 0).UTC()
	record, err := r.Parse(model.Station{ID: "s1"}, live, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Temperature == nil || *record.Temperature != 19.2 {
		t.Errorf("Temperature = %v, want 19.2 (66.56F)", record.Temperature)
	}
	if record.WindSpeed == nil || *record.WindSpeed != 11.2654 {
		t.Errorf("WindSpeed = %v, want 11.2654 (7mph)", record.WindSpeed)
	}
	if record.WindGust == nil || *record.WindGust != 35.4055 {
		t.Errorf("WindGust = %v, want 35.4055 (22mph hi-10-min)", record.WindGust)
	}
	if record.Rain == nil || *record.Rain != 0 {
		t.Errorf("Rain = %v, want 0 (already mm, no inches conversion)", record.Rain)
	}
	if record.CumulativeRain == nil || *record.CumulativeRain != 0 {
		t.Errorf("CumulativeRain = %v, want 0", record.CumulativeRain)
	}
}

func TestParseHistoricSuppliesDailyExtremes(t *testing.T) {
	live := `{"sensors": [{"data": [{"ts": 1780387200, "temp": 66.56}]}]}`
	daily := `{"sensors": [{"data": [
		{"wind_speed_hi": 18.8, "temp_hi": 82.0, "temp_lo": 60.0, "rainfall_mm": 4.2},
		{"wind_speed_hi": 12.0, "temp_hi": 79.0, "temp_lo": 58.0, "rainfall_mm": 1.1}
	]}]}`

	r := New("https://example.invalid")
	now := time.Unix(1780387200, 0).UTC()
	record, err := r.Parse(model.Station{ID: "s1"}, live, daily, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.MaxWindSpeed == nil || *record.MaxWindSpeed != 30.2556 {
		t.Errorf("MaxWindSpeed = %v, want 30.2556 (18.8mph)", record.MaxWindSpeed)
	}
	if record.MaxTemperature == nil || *record.MaxTemperature != 27.7778 {
		t.Errorf("MaxTemperature = %v, want 27.7778 (82F)", record.MaxTemperature)
	}
	if record.MinTemperature == nil || *record.MinTemperature != 14.4444 {
		t.Errorf("MinTemperature = %v, want 14.4444 (58F)", record.MinTemperature)
	}
	if record.CumulativeRain == nil || *record.CumulativeRain != 4.2 {
		t.Errorf("CumulativeRain = %v, want 4.2 (max historic rainfall_mm)", record.CumulativeRain)
	}
}

func TestFetchAuthenticatesWithApiSecretHeaderNotQuerySignature(t *testing.T) {
	var gotSecret, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Api-Secret")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"sensors":[]}`))
	}))
	defer srv.Close()

	r := New(srv.URL)
	_, _, err := r.Fetch(context.Background(), model.Station{ID: "s1", Field1: "123", Field2: "key", Field3: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSecret != "secret" {
		t.Errorf("X-Api-Secret header = %q, want %q", gotSecret, "secret")
	}
	if strings.Contains(gotQuery, "api-signature") {
		t.Errorf("query %q should not contain an invented api-signature parameter", gotQuery)
	}
}

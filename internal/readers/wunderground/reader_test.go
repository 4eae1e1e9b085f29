package wunderground

import (
	"testing"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
)

func TestParseLiveAndDailyScenario(t *testing.T) {
	live := `{
		"observations": [{
			"obsTimeUtc": "2026-03-01T12:00:00Z",
			"humidity": 79,
			"winddir": 15,
			"metric": {
				"temp": 5,
				"windSpeed": 5.4,
				"windGust": 9.4,
				"pressure": 1014.6,
				"precipRate": 0,
				"precipTotal": 3.3
			}
		}]
	}`
	daily := `{
		"summaries": [{
			"metric": {
				"tempHigh": 6.4,
				"tempLow": 0.8,
				"windspeedHigh": 30.2,
				"windgustHigh": 36.7
			}
		}]
	}`

	r := New("https://example.invalid/live", "https://example.invalid/daily")
	now := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
	record, err := r.Parse(model.Station{ID: "s1"}, live, daily, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		got  *float64
		want float64
	}{
		{"Temperature", record.Temperature, 5},
		{"Humidity", record.Humidity, 79},
		{"Rain", record.Rain, 0},
		{"Pressure", record.Pressure, 1014.6},
		{"WindSpeed", record.WindSpeed, 5.4},
		{"WindGust", record.WindGust, 9.4},
		{"WindDirection", record.WindDirection, 15},
		{"CumulativeRain", record.CumulativeRain, 3.3},
		{"MaxWindSpeed", record.MaxWindSpeed, 30.2},
		{"MaxWindGust", record.MaxWindGust, 36.7},
		{"MaxTemperature", record.MaxTemperature, 6.4},
		{"MinTemperature", record.MinTemperature, 0.8},
	}
	for _, c := range cases {
		if c.got == nil || *c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestParseLiveMissingFieldsStayNil(t *testing.T) {
	live := `{
		"observations": [{
			"obsTimeUtc": "2026-03-01T12:00:00Z",
			"metric": {}
		}]
	}`

	r := New("https://example.invalid/live", "https://example.invalid/daily")
	now := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
	record, err := r.Parse(model.Station{ID: "s1"}, live, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Temperature != nil {
		t.Errorf("Temperature = %v, want nil for an absent source field", record.Temperature)
	}
	if record.Humidity != nil {
		t.Errorf("Humidity = %v, want nil for an absent source field", record.Humidity)
	}
}

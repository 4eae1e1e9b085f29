// Package weatherlinkv2 reads Davis WeatherLink v2's current-conditions
// and historic APIs, which report one data point per physical sensor
// (ISS, soil transmitter, indoor console, ...) rather than one flat
// record. Fields are resolved by coalescing across sensors in a fixed
// preference order.
package weatherlinkv2

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for WeatherLink v2.
// Field1=station ID, Field2=api key, Field3=api secret.
type Reader struct {
	readers.Base
	Endpoint string
}

func New(endpoint string) *Reader {
	r := &Reader{Endpoint: endpoint}
	r.Base = readers.Base{RequiredFields: 3}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

// Fetch calls the current-conditions endpoint and, best-effort, the
// historic endpoint for today's running extremes. Both authenticate via
// the X-Api-Secret header WeatherLink v2 documents, not a query
// signature. A failed historic call (it requires an active History
// subscription) still leaves a usable live-only record.
func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	headers := map[string]string{"X-Api-Secret": station.Field3}

	now := time.Now().UTC()
	liveURL := fmt.Sprintf("%s/v2/current/%s?api-key=%s&t=%d",
		r.Endpoint, url.PathEscape(station.Field1), url.QueryEscape(station.Field2), now.Unix())
	live, err = readers.GetWithHeaders(ctx, liveURL, headers)
	if err != nil {
		return "", "", err
	}

	start := now.Add(-15 * time.Minute).Unix()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC).Unix()
	historicURL := fmt.Sprintf("%s/v2/historic/%s?api-key=%s&t=%d&start-timestamp=%d&end-timestamp=%d",
		r.Endpoint, url.PathEscape(station.Field1), url.QueryEscape(station.Field2), now.Unix(), start, end)
	daily, err = readers.GetWithHeaders(ctx, historicURL, headers)
	if err != nil {
		daily = ""
	}

	return live, daily, nil
}

type sensorDoc struct {
	Sensors []struct {
		Data []map[string]interface{} `json:"data"`
	} `json:"sensors"`
}

// liveKeys lists, per semantic field, the raw JSON keys an ISS or console
// sensor may report current-conditions values under, in preference order.
var liveKeys = map[string][]string{
	"temperature":     {"temp", "temp_out"},
	"humidity":        {"hum", "hum_out"},
	"pressure":        {"bar", "bar_sea_level"},
	"wind_speed":      {"wind_speed", "wind_speed_last"},
	"wind_gust":       {"wind_speed_hi_last_10_min", "wind_gust"},
	"wind_direction":  {"wind_dir", "wind_dir_last"},
	"rain_rate":       {"rain_rate_mm", "rain_rate_last_mm"},
	"cumulative_rain": {"rain_day_mm", "rainfall_daily_mm"},
}

// historicKeys lists the keys the /historic endpoint reports today's
// running extremes under. rainfall_mm is already in millimeters; the
// wind speed (mph) and temperature (Fahrenheit) keys are converted in Parse.
var historicKeys = map[string]string{
	"max_wind_speed":  "wind_speed_hi",
	"cumulative_rain": "rainfall_mm",
	"max_temp":        "temp_hi",
	"min_temp":        "temp_lo",
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	var liveDoc sensorDoc
	if err := json.Unmarshal([]byte(live), &liveDoc); err != nil {
		return nil, fmt.Errorf("parsing weatherlink v2 current payload: %w", err)
	}

	latestTS, found := maxOrNone(valuesForKey(liveDoc, "ts"))
	if !found {
		return nil, fmt.Errorf("weatherlink v2 payload has no sensor data points")
	}

	record := &model.Record{SourceTimestamp: time.Unix(int64(*latestTS), 0).UTC()}

	if v := coalesceKeys(liveDoc, liveKeys["temperature"]); v != nil {
		c := readers.FahrenheitToCelsius(*v)
		record.Temperature = &c
	}
	record.Humidity = coalesceKeys(liveDoc, liveKeys["humidity"])
	if v := coalesceKeys(liveDoc, liveKeys["pressure"]); v != nil {
		hpa := readers.PsiToHectopascals(*v)
		record.Pressure = &hpa
	}
	if v := coalesceKeys(liveDoc, liveKeys["wind_speed"]); v != nil {
		kph := readers.MphToKph(*v)
		record.WindSpeed = &kph
	}
	if v := coalesceKeys(liveDoc, liveKeys["wind_gust"]); v != nil {
		kph := readers.MphToKph(*v)
		record.WindGust = &kph
	}
	record.WindDirection = coalesceKeys(liveDoc, liveKeys["wind_direction"])
	// rain_rate_mm/rainfall_daily_mm etc. are already millimeters; no
	// inches conversion applies to WeatherLink v2's own fields.
	record.Rain = coalesceKeys(liveDoc, liveKeys["rain_rate"])
	liveCumulative := coalesceKeys(liveDoc, liveKeys["cumulative_rain"])

	var historicCumulative *float64
	if daily != "" {
		var historicDoc sensorDoc
		if err := json.Unmarshal([]byte(daily), &historicDoc); err == nil {
			if v, ok := maxOrNone(valuesForKey(historicDoc, historicKeys["max_wind_speed"])); ok {
				kph := readers.MphToKph(*v)
				record.MaxWindSpeed = &kph
			}
			if v, ok := maxOrNone(valuesForKey(historicDoc, historicKeys["cumulative_rain"])); ok {
				historicCumulative = v
			}
			if v, ok := maxOrNone(valuesForKey(historicDoc, historicKeys["max_temp"])); ok {
				c := readers.FahrenheitToCelsius(*v)
				record.MaxTemperature = &c
			}
			if v, ok := minOrNone(valuesForKey(historicDoc, historicKeys["min_temp"])); ok {
				c := readers.FahrenheitToCelsius(*v)
				record.MinTemperature = &c
			}
		}
	}
	record.CumulativeRain = coalesce(liveCumulative, historicCumulative)

	return record, nil
}

// valuesForKey collects every numeric value reported under key across
// every sensor's data points in doc.
func valuesForKey(doc sensorDoc, key string) []float64 {
	var out []float64
	for _, sensor := range doc.Sensors {
		for _, point := range sensor.Data {
			raw, ok := point[key]
			if !ok {
				continue
			}
			if v, ok := toFloat(raw); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// coalesceKeys returns the first key in keys with at least one reported
// value, preferring an ISS/ambient sensor's reading over a secondary
// transmitter's for the same semantic field.
func coalesceKeys(doc sensorDoc, keys []string) *float64 {
	for _, key := range keys {
		if values := valuesForKey(doc, key); len(values) > 0 {
			v := values[0]
			return &v
		}
	}
	return nil
}

// coalesce returns the first non-nil argument.
func coalesce(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// maxOrNone returns the largest value in values, or (nil, false) if empty.
func maxOrNone(values []float64) (*float64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return &max, true
}

// minOrNone returns the smallest value in values, or (nil, false) if empty.
func minOrNone(values []float64) (*float64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return &min, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

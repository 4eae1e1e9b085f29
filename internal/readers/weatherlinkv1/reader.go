// Package weatherlinkv1 reads Davis WeatherLink's legacy v1 JSON API.
package weatherlinkv1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for WeatherLink v1.
// Field1=user, Field2=apiToken, Field3=password.
type Reader struct {
	readers.Base
	Endpoint string
}

func New(endpoint string) *Reader {
	r := &Reader{Endpoint: endpoint}
	r.Base = readers.Base{RequiredFields: 3, IgnoreEarlyReadings: true}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	u := fmt.Sprintf("%s?user=%s&apiToken=%s&pass=%s",
		r.Endpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field2), url.QueryEscape(station.Field3))
	live, err = readers.Get(ctx, u)
	return live, "", err
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(live), &raw); err != nil {
		return nil, fmt.Errorf("parsing weatherlink v1 payload: %w", err)
	}

	ts, ok := raw["observation_time_rfc822"].(string)
	if !ok || ts == "" {
		return nil, fmt.Errorf("weatherlink v1 payload missing observation_time_rfc822")
	}

	sourceTime, err := time.Parse("Mon, 02 Jan 2006 15:04:05 -0700", ts)
	if err != nil {
		return nil, fmt.Errorf("parsing observation_time_rfc822 %q: %w", ts, err)
	}

	record := &model.Record{SourceTimestamp: sourceTime}

	if v := floatField(raw, "temp_f"); v != nil {
		c := readers.FahrenheitToCelsius(*v)
		record.Temperature = &c
	}
	record.Humidity = floatField(raw, "relative_humidity")
	if v := floatField(raw, "wind_mph"); v != nil {
		kph := readers.MphToKph(*v)
		record.WindSpeed = &kph
	}
	if v := floatField(raw, "wind_gust_mph"); v != nil {
		kph := readers.MphToKph(*v)
		record.WindGust = &kph
	}
	record.WindDirection = floatField(raw, "wind_degrees")
	if v := floatField(raw, "pressure_in"); v != nil {
		hpa := readers.PsiToHectopascals(*v * 0.4912) // inHg -> psi before psi->hPa
		record.Pressure = &hpa
	}
	if v := floatField(raw, "precip_rate_in"); v != nil {
		mm := readers.InchesToMillimeters(*v)
		record.Rain = &mm
	}
	if v := floatField(raw, "daily_rain_in"); v != nil {
		mm := readers.InchesToMillimeters(*v)
		record.CumulativeRain = &mm
	}

	return record, nil
}

func floatField(raw map[string]interface{}, key string) *float64 {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		return readers.SafeFloat(n)
	default:
		return nil
	}
}

// Package wunderground reads Weather Underground's Personal Weather
// Station current-conditions and daily-history APIs.
package wunderground

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for Weather Underground PWS stations.
// Field1=station ID, Field2=api key.
type Reader struct {
	readers.Base
	LiveEndpoint  string
	DailyEndpoint string
}

func New(liveEndpoint, dailyEndpoint string) *Reader {
	r := &Reader{LiveEndpoint: liveEndpoint, DailyEndpoint: dailyEndpoint}
	r.Base = readers.Base{RequiredFields: 2, IgnoreEarlyReadings: true}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	liveURL := fmt.Sprintf("%s?stationId=%s&apiKey=%s&format=json&units=m",
		r.LiveEndpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field2))
	live, err = readers.Get(ctx, liveURL)
	if err != nil {
		return "", "", err
	}

	now := time.Now().UTC()
	// Within the first fifteen minutes of the UTC day a history pull for
	// "today" returns nothing yet, so the call is skipped and the record
	// carries no daily extremes.
	if now.Hour() == 0 && now.Minute() < 15 {
		return live, "", nil
	}

	dailyURL := fmt.Sprintf("%s?stationId=%s&apiKey=%s&format=json&units=m&date=%s",
		r.DailyEndpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field2), now.Format("20060102"))
	daily, err = readers.Get(ctx, dailyURL)
	if err != nil {
		daily = ""
	}

	return live, daily, nil
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	var liveDoc struct {
		Observations []struct {
			ObsTimeUtc string   `json:"obsTimeUtc"`
			Humidity   *float64 `json:"humidity"`
			Metric     struct {
				Temp        *float64 `json:"temp"`
				WindSpeed   *float64 `json:"windSpeed"`
				WindGust    *float64 `json:"windGust"`
				Pressure    *float64 `json:"pressure"`
				PrecipRate  *float64 `json:"precipRate"`
				PrecipTotal *float64 `json:"precipTotal"`
			} `json:"metric"`
			Winddir *float64 `json:"winddir"`
		} `json:"observations"`
	}

	if err := json.Unmarshal([]byte(live), &liveDoc); err != nil {
		return nil, fmt.Errorf("parsing wunderground live payload: %w", err)
	}
	if len(liveDoc.Observations) == 0 {
		return nil, fmt.Errorf("wunderground live payload has no observations")
	}
	obs := liveDoc.Observations[0]

	sourceTime, err := time.Parse(time.RFC3339, obs.ObsTimeUtc)
	if err != nil {
		return nil, fmt.Errorf("parsing obsTimeUtc %q: %w", obs.ObsTimeUtc, err)
	}

	record := &model.Record{
		SourceTimestamp: sourceTime,
		Temperature:     obs.Metric.Temp,
		Humidity:        obs.Humidity,
		WindSpeed:       obs.Metric.WindSpeed,
		WindGust:        obs.Metric.WindGust,
		WindDirection:   obs.Winddir,
		Pressure:        obs.Metric.Pressure,
		Rain:            obs.Metric.PrecipRate,
		CumulativeRain:  obs.Metric.PrecipTotal,
	}

	if daily == "" {
		return record, nil
	}

	// The daily-history endpoint reports one summary per requested day
	// under "summaries", not "observations"; the most recent entry is
	// the running summary for today.
	var dailyDoc struct {
		Summaries []struct {
			Metric struct {
				TempHigh      *float64 `json:"tempHigh"`
				TempLow       *float64 `json:"tempLow"`
				WindspeedHigh *float64 `json:"windspeedHigh"`
				WindgustHigh  *float64 `json:"windgustHigh"`
			} `json:"metric"`
		} `json:"summaries"`
	}
	if err := json.Unmarshal([]byte(daily), &dailyDoc); err == nil && len(dailyDoc.Summaries) > 0 {
		d := dailyDoc.Summaries[len(dailyDoc.Summaries)-1]
		record.MaxTemperature = d.Metric.TempHigh
		record.MinTemperature = d.Metric.TempLow
		record.MaxWindSpeed = d.Metric.WindspeedHigh
		record.MaxWindGust = d.Metric.WindgustHigh
	}

	return record, nil
}

// Package holfuy reads Holfuy's live JSON feed plus a short historic
// window used to derive rolling wind maxima.
package holfuy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for Holfuy stations. Field1 is the
// Holfuy station ID.
type Reader struct {
	readers.Base
	LiveEndpoint     string
	HistoricEndpoint string
}

func New(liveEndpoint, historicEndpoint string) *Reader {
	r := &Reader{LiveEndpoint: liveEndpoint, HistoricEndpoint: historicEndpoint}
	r.Base = readers.Base{RequiredFields: 1}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	// daily=True embeds a "daily" object (min/max temp, cumulative rain)
	// directly in the live response — Holfuy's live feed, not a separate
	// endpoint, is the source of today's rollup.
	liveURL := fmt.Sprintf("%s?s=%s&pw=%s&m=JSON&tu=C&su=km/h&daily=True",
		r.LiveEndpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field3))
	live, err = readers.Get(ctx, liveURL)
	if err != nil {
		return "", "", err
	}

	// type=2/mback=60 is the last-hour measurement history, used only to
	// derive rolling wind maxima the live+daily payload doesn't carry.
	historicURL := fmt.Sprintf("%s?s=%s&pw=%s&m=JSON&tu=C&su=km/h&type=2&mback=60",
		r.HistoricEndpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field3))
	daily, err = readers.Get(ctx, historicURL)
	if err != nil {
		daily = ""
	}

	return live, daily, nil
}

type holfuyMeasure struct {
	Temperature *float64 `json:"temperature"`
	Wind        struct {
		Speed     *float64 `json:"speed"`
		Gust      *float64 `json:"gust"`
		Direction *float64 `json:"direction"`
	} `json:"wind"`
	Pressure *float64 `json:"pressure"`
	Humidity *float64 `json:"humidity"`
	Rain     *float64 `json:"rain"`
	DateTime string   `json:"dateTime"`
	Daily    struct {
		MinTemp *float64 `json:"min_temp"`
		MaxTemp *float64 `json:"max_temp"`
		SumRain *float64 `json:"sum_rain"`
	} `json:"daily"`
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	var liveDoc holfuyMeasure
	if err := json.Unmarshal([]byte(live), &liveDoc); err != nil {
		return nil, fmt.Errorf("parsing holfuy live payload: %w", err)
	}
	if liveDoc.DateTime == "" {
		return nil, fmt.Errorf("holfuy live payload missing dateTime")
	}

	sourceTime, err := time.Parse("2006-01-02 15:04:05", liveDoc.DateTime)
	if err != nil {
		return nil, fmt.Errorf("parsing holfuy dateTime %q: %w", liveDoc.DateTime, err)
	}

	record := &model.Record{
		SourceTimestamp: sourceTime,
		Temperature:     liveDoc.Temperature,
		Humidity:        liveDoc.Humidity,
		Pressure:        liveDoc.Pressure,
		WindSpeed:       liveDoc.Wind.Speed,
		WindGust:        liveDoc.Wind.Gust,
		WindDirection:   liveDoc.Wind.Direction,
		Rain:            liveDoc.Rain,
		MaxTemperature:  liveDoc.Daily.MaxTemp,
		MinTemperature:  liveDoc.Daily.MinTemp,
		CumulativeRain:  liveDoc.Daily.SumRain,
	}

	maxSpeed := record.WindSpeed
	maxGust := record.WindGust

	if daily != "" {
		var historic struct {
			Measurements []holfuyMeasure `json:"measurements"`
		}
		if err := json.Unmarshal([]byte(daily), &historic); err == nil {
			for _, m := range historic.Measurements {
				if m.Wind.Speed != nil && (maxSpeed == nil || *m.Wind.Speed > *maxSpeed) {
					maxSpeed = m.Wind.Speed
				}
				if m.Wind.Gust != nil && (maxGust == nil || *m.Wind.Gust > *maxGust) {
					maxGust = m.Wind.Gust
				}
			}
		}
	}

	record.MaxWindSpeed = maxSpeed
	record.MaxWindGust = maxGust

	return record, nil
}

// Package thingspeak reads a ThingSpeak channel's latest feed entry,
// where each weather quantity lives in a fixed numbered field slot.
package thingspeak

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for ThingSpeak channels.
// Field1=channel ID, Field2=read API key.
type Reader struct {
	readers.Base
	Endpoint string
}

func New(endpoint string) *Reader {
	r := &Reader{Endpoint: endpoint}
	r.Base = readers.Base{RequiredFields: 2}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	u := fmt.Sprintf("%s/channels/%s/feeds/last.json?api_key=%s",
		r.Endpoint, url.PathEscape(station.Field1), url.QueryEscape(station.Field2))
	live, err = readers.Get(ctx, u)
	return live, "", err
}

// channel field assignment, fixed per the station's ThingSpeak template.
type feed struct {
	CreatedAt string `json:"created_at"`
	Field1    string `json:"field1"` // temperature, C
	Field2    string `json:"field2"` // humidity, %
	Field3    string `json:"field3"` // pressure, hPa
	Field4    string `json:"field4"` // wind speed, km/h
	Field5    string `json:"field5"` // wind direction, degrees
	Field6    string `json:"field6"` // rain rate, mm
	Field7    string `json:"field7"` // cumulative rain, mm
	Field8    string `json:"field8"` // wind gust, km/h
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	var f feed
	if err := json.Unmarshal([]byte(live), &f); err != nil {
		return nil, fmt.Errorf("parsing thingspeak feed: %w", err)
	}
	if f.CreatedAt == "" {
		return nil, fmt.Errorf("thingspeak feed missing created_at")
	}

	sourceTime, err := time.Parse(time.RFC3339, f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", f.CreatedAt, err)
	}

	record := &model.Record{
		SourceTimestamp: sourceTime,
		Temperature:     readers.SafeFloat(f.Field1),
		Humidity:        readers.SafeFloat(f.Field2),
		Pressure:        readers.SafeFloat(f.Field3),
		WindSpeed:       readers.SafeFloat(f.Field4),
		WindDirection:   readers.SafeFloat(f.Field5),
		Rain:            readers.SafeFloat(f.Field6),
		CumulativeRain:  readers.SafeFloat(f.Field7),
		WindGust:        readers.SafeFloat(f.Field8),
	}

	return record, nil
}

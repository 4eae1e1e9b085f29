// Package realtime reads Davis-style "realtime.txt" exports: a single
// whitespace-delimited line of positional fields.
package realtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for the realtime.txt wire format.
// Field1 is the base station URL (the "/realtime.txt" suffix is appended
// if the endpoint doesn't already carry it).
type Reader struct {
	readers.Base
}

func New() *Reader {
	r := &Reader{}
	r.Base = readers.Base{RequiredFields: 1}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

// indexToField maps realtime.txt's fixed column positions to the record
// fields this adapter cares about.
var indexToField = map[int]string{
	0: "date", 1: "time",
	2:  "temperature",
	3:  "humidity",
	5:  "wind_speed",
	7:  "wind_direction",
	8:  "rain_rate",
	9:  "cumulative_rain",
	10: "pressure",
	28: "min_temperature",
	30: "max_temperature",
	32: "max_wind_speed",
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	url := station.Field1
	if !strings.HasSuffix(url, "/realtime.txt") {
		url = strings.TrimRight(url, "/") + "/realtime.txt"
	}
	live, err = readers.Get(ctx, url)
	return live, "", err
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	cols := strings.Fields(live)
	if len(cols) < 33 {
		return nil, fmt.Errorf("realtime.txt line has %d fields, expected at least 33", len(cols))
	}

	values := make(map[string]string)
	for idx, field := range indexToField {
		if idx < len(cols) {
			values[field] = cols[idx]
		}
	}

	record := &model.Record{}

	dateTime := values["date"] + " " + values["time"]
	if ts, err := readers.SmartParseDatetime(dateTime, time.UTC, now); err == nil {
		record.SourceTimestamp = ts
	}

	record.Temperature = readers.SafeFloat(values["temperature"])
	record.Humidity = readers.SafeFloat(values["humidity"])
	record.WindSpeed = readers.SafeFloat(values["wind_speed"])
	record.WindDirection = readers.SafeFloat(values["wind_direction"])
	record.Rain = readers.SafeFloat(values["rain_rate"])
	record.CumulativeRain = readers.SafeFloat(values["cumulative_rain"])
	record.Pressure = readers.SafeFloat(values["pressure"])
	record.MinTemperature = readers.SafeFloat(values["min_temperature"])
	record.MaxTemperature = readers.SafeFloat(values["max_temperature"])
	record.MaxWindSpeed = readers.SafeFloat(values["max_wind_speed"])

	return record, nil
}

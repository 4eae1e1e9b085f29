// Package meteoclimatic reads Meteoclimatic's "*KEY=VALUE*" export format,
// a flat asterisk-delimited line of station codes.
package meteoclimatic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chrissnell/wxgatherer/internal/log"
	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for Meteoclimatic stations.
// Field1 is the station code embedded in the endpoint URL.
type Reader struct {
	readers.Base
	Endpoint string
}

func New(endpoint string) *Reader {
	r := &Reader{Endpoint: endpoint}
	r.Base = readers.Base{RequiredFields: 1}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

// whitelist is the set of station codes this adapter consumes; every
// other code in the export line is ignored.
var whitelist = map[string]bool{
	"UPD": true, "TMP": true, "WND": true, "DGST": true, "AZI": true,
	"DPCP": true, "HUM": true, "BAR": true, "DHTM": true, "DLTM": true,
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	url := strings.Replace(r.Endpoint, "{station}", station.Field1, 1)
	live, err = readers.Get(ctx, url)
	return live, "", err
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	fields := parseFields(live)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no recognized fields in meteoclimatic payload")
	}

	record := &model.Record{}

	if raw, ok := fields["UPD"]; ok {
		ts, err := readers.SmartParseDatetime(raw, time.UTC, now)
		if err == nil {
			record.SourceTimestamp = ts
		}
	}

	record.Temperature = sentinelAware(fields["TMP"], station.ID, "temperature")
	record.WindSpeed = sentinelAware(fields["WND"], station.ID, "wind_speed")
	record.WindGust = sentinelAware(fields["DGST"], station.ID, "wind_gust")
	record.Humidity = sentinelAware(fields["HUM"], station.ID, "humidity")
	record.Pressure = sentinelAware(fields["BAR"], station.ID, "pressure")
	record.Rain = sentinelAware(fields["DPCP"], station.ID, "rain")
	record.MaxTemperature = sentinelAware(fields["DHTM"], station.ID, "max_temperature")
	record.MinTemperature = sentinelAware(fields["DLTM"], station.ID, "min_temperature")

	if raw, ok := fields["AZI"]; ok {
		if deg, err := readers.SmartAzimuth(raw); err == nil {
			record.WindDirection = deg
		}
	}

	return record, nil
}

func parseFields(line string) map[string]string {
	fields := make(map[string]string)
	for _, chunk := range strings.Split(line, "*") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		parts := strings.SplitN(chunk, "=", 2)
		if len(parts) != 2 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(parts[0]))
		if whitelist[code] {
			fields[code] = strings.TrimSpace(parts[1])
		}
	}
	return fields
}

// sentinelAware parses a numeric field, recording a value of exactly 100
// verbatim (with an error-level log entry) rather than silently blanking
// it — a sentinel some Meteoclimatic stations emit for "no sensor". The
// reader does not hide it; the validator's range check blanks and flags it
// only for fields where 100 is out of range (temperatures and pressure)
// and passes it for humidity, wind speed, wind gust and rain.
func sentinelAware(raw, stationID, field string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := readers.SmartParseFloat(raw)
	if err != nil {
		return nil
	}
	if v == 100 {
		log.Errorf("station %s: field %s reported sentinel value 100, recording verbatim", stationID, field)
	}
	return &v
}

package readers

import (
	"context"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/google/uuid"
)

// maxRecordAge is how old a source timestamp may be before a record is
// rejected as stale.
const maxRecordAge = 1800 * time.Second

// futureTolerance allows for small clock skew between a station and the
// collector without rejecting an otherwise-fresh reading.
const futureTolerance = 60 * time.Second

// Fetcher retrieves the raw live and (optionally empty) daily payloads for
// a station. A reader that has no separate daily endpoint returns "" for
// daily without error.
type Fetcher interface {
	Fetch(ctx context.Context, station model.Station) (live, daily string, err error)
}

// Parser turns raw payloads into a normalized record. now is passed in
// explicitly so tests can exercise timestamp logic deterministically.
type Parser interface {
	Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error)
}

// Reader is the contract every connection-type adapter satisfies: given a
// station, produce a normalized record or a classified error.
type Reader interface {
	Read(ctx context.Context, station model.Station, now time.Time) (*model.Record, error)
}

// Base implements the fixed read() pipeline — field validation, fetch,
// parse, timestamp sanity, early-reading suppression — around a concrete
// adapter's Fetch/Parse hooks. Concrete readers embed Base and supply
// RequiredFields/IgnoreEarlyReadings plus their own Fetch and Parse.
//
// A fresh Base (and the concrete reader embedding it) must be constructed
// per station per run; Base carries no shared mutable state itself, but
// the collector's factory contract assumes readers are never reused
// across stations so that a slow or misbehaving station can't leak state
// into another's read.
type Base struct {
	RequiredFields      int // how many of Field1/Field2/Field3 must be non-empty
	IgnoreEarlyReadings bool

	Fetcher
	Parser
}

// Read runs the fixed pipeline: validate connection fields, fetch,
// require at least one non-empty payload, parse, validate the resulting
// timestamp, and suppress early-morning readings for adapters that need
// it (Ecowitt, WeatherLink v1 and Wunderground report a stale daily
// rollover in the first hour of the local day).
func (b *Base) Read(ctx context.Context, station model.Station, now time.Time) (*model.Record, error) {
	if err := b.validateFields(station); err != nil {
		return nil, err
	}

	live, daily, err := b.Fetch(ctx, station)
	if err != nil {
		return nil, Wrap(station.ID, KindHTTPFailure, err)
	}
	if live == "" && daily == "" {
		return nil, Wrap(station.ID, KindNoData, ErrNoData)
	}

	record, err := b.Parse(station, live, daily, now)
	if err != nil {
		return nil, Wrap(station.ID, KindInvalidPayload, err)
	}

	if err := b.validateTimestamp(station, record, now); err != nil {
		return nil, err
	}

	record.ID = uuid.NewString()
	record.StationID = station.ID
	record.TakenTimestamp = now

	if b.IgnoreEarlyReadings {
		loc, err := time.LoadLocation(station.Timezone)
		if err != nil {
			loc = time.UTC
		}
		if isEarlyReading(record, loc) {
			suppressDaily(record)
		}
	}

	return record, nil
}

func (b *Base) validateFields(station model.Station) error {
	fields := []string{station.Field1, station.Field2, station.Field3}
	for i := 0; i < b.RequiredFields; i++ {
		if fields[i] == "" {
			return Wrap(station.ID, KindMissingField, ErrMissingField)
		}
	}
	return nil
}

func (b *Base) validateTimestamp(station model.Station, record *model.Record, now time.Time) error {
	if record.SourceTimestamp.IsZero() {
		return Wrap(station.ID, KindMissingTimestamp, ErrMissingTimestamp)
	}
	if record.SourceTimestamp.After(now.Add(futureTolerance)) {
		return Wrap(station.ID, KindFutureTimestamp, ErrFutureTimestamp)
	}
	if now.Sub(record.SourceTimestamp) > maxRecordAge {
		return Wrap(station.ID, KindStaleTimestamp, ErrStaleTimestamp)
	}
	return nil
}

// isEarlyReading applies the first-hour-of-day cutoff: a reading whose
// source timestamp or whose taken timestamp falls in [00:00, 01:00) local
// time (loc, the station's timezone) is treated as carrying a stale daily
// rollover.
func isEarlyReading(record *model.Record, loc *time.Location) bool {
	return record.SourceTimestamp.In(loc).Hour() == 0 || record.TakenTimestamp.In(loc).Hour() == 0
}

// suppressDaily blanks the daily-derived half of a record — the fields a
// rollover-window reading can't be trusted to report correctly — while
// leaving the live half, which reflects the moment the reading was taken,
// untouched.
func suppressDaily(record *model.Record) {
	record.MaxTemperature = nil
	record.MinTemperature = nil
	record.MaxWindSpeed = nil
	record.MaxWindGust = nil
	record.CumulativeRain = nil
}

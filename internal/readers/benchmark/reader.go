// Package benchmark provides a synthetic reader used for latency
// performance testing: it sleeps for a fixed, source-representative
// duration instead of making a real network call, then returns a record
// timestamped thirty seconds in the past.
package benchmark

import (
	"context"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// sleepDurations are representative per-source round-trip times,
// measured against the real endpoints and frozen here so a benchmark run
// never depends on live network conditions.
var sleepDurations = map[string]time.Duration{
	"holfuy":        294130 * time.Microsecond,
	"wunderground":  411430 * time.Microsecond,
	"weatherlink_v1": 420560 * time.Microsecond,
	"realtime":      196110 * time.Microsecond,
	"meteoclimatic": 113430 * time.Microsecond,
	"ecowitt":       912120 * time.Microsecond,
	"weatherlink_v2": 836740 * time.Microsecond,
	"thingspeak":    310800 * time.Microsecond,
}

const defaultSleep = 200 * time.Millisecond

// Reader simulates the latency of a named connection type without making
// any network call.
type Reader struct {
	ConnectionType string
}

func New(connectionType string) *Reader {
	return &Reader{ConnectionType: connectionType}
}

func (r *Reader) Read(ctx context.Context, station model.Station, now time.Time) (*model.Record, error) {
	d, ok := sleepDurations[r.ConnectionType]
	if !ok {
		d = defaultSleep
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return nil, ctx.Err()
	case <-timer.C:
	}

	ts := now.Add(-30 * time.Second)
	return &model.Record{
		StationID:       station.ID,
		SourceTimestamp: ts,
		TakenTimestamp:  ts,
	}, nil
}

var _ readers.Reader = (*Reader)(nil)

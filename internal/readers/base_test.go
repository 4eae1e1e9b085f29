package readers

import (
	"context"
	"testing"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
)

type fakeAdapter struct {
	record *model.Record
	err    error
}

func (f *fakeAdapter) Fetch(ctx context.Context, station model.Station) (string, string, error) {
	return "live", "", nil
}

func (f *fakeAdapter) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	return f.record, f.err
}

func newTestReader(record *model.Record, ignoreEarly bool) *Base {
	adapter := &fakeAdapter{record: record}
	b := &Base{RequiredFields: 1, IgnoreEarlyReadings: ignoreEarly}
	b.Fetcher = adapter
	b.Parser = adapter
	return b
}

func TestReadMissingField(t *testing.T) {
	b := newTestReader(&model.Record{SourceTimestamp: time.Now()}, false)
	_, err := b.Read(context.Background(), model.Station{ID: "s1"}, time.Now())
	if err == nil {
		t.Fatal("expected missing field error")
	}
}

func TestReadStaleTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &model.Record{SourceTimestamp: now.Add(-2 * time.Hour)}
	b := newTestReader(record, false)
	_, err := b.Read(context.Background(), model.Station{ID: "s1", Field1: "x"}, now)
	if err == nil {
		t.Fatal("expected stale timestamp error")
	}
}

func TestReadFutureTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &model.Record{SourceTimestamp: now.Add(10 * time.Minute)}
	b := newTestReader(record, false)
	_, err := b.Read(context.Background(), model.Station{ID: "s1", Field1: "x"}, now)
	if err == nil {
		t.Fatal("expected future timestamp error")
	}
}

func TestReadEarlyReadingSuppressed(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	temp, maxTemp, cumRain := 8.0, 12.0, 3.0
	record := &model.Record{
		SourceTimestamp: now.Add(-10 * time.Minute),
		Temperature:     &temp,
		MaxTemperature:  &maxTemp,
		CumulativeRain:  &cumRain,
	}
	b := newTestReader(record, true)
	got, err := b.Read(context.Background(), model.Station{ID: "s1", Field1: "x"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MaxTemperature != nil {
		t.Errorf("MaxTemperature = %v, want nil (daily half suppressed)", got.MaxTemperature)
	}
	if got.CumulativeRain != nil {
		t.Errorf("CumulativeRain = %v, want nil (daily half suppressed)", got.CumulativeRain)
	}
	if got.StationID != "s1" {
		t.Errorf("StationID = %q, want s1", got.StationID)
	}
	if got.Temperature == nil || *got.Temperature != 8 {
		t.Errorf("Temperature = %v, want 8 (live half retained)", got.Temperature)
	}
}

func TestReadSuccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &model.Record{SourceTimestamp: now.Add(-5 * time.Minute)}
	b := newTestReader(record, false)
	got, err := b.Read(context.Background(), model.Station{ID: "s1", Field1: "x"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StationID != "s1" {
		t.Errorf("StationID = %q, want s1", got.StationID)
	}
	if got.ID == "" {
		t.Error("expected a record ID to be assigned")
	}
}

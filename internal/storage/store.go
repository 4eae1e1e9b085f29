// Package storage defines the collector's persistence contract and a
// concrete TimescaleDB-backed implementation.
package storage

import (
	"context"

	"github.com/chrissnell/wxgatherer/internal/model"
)

// Store is everything the collector needs from its backing database: the
// station catalog and a place to record runs, records, and incidents.
type Store interface {
	InitRun(ctx context.Context, run model.RunSummary) error
	SaveRunSummary(ctx context.Context, run model.RunSummary) error
	SaveRecord(ctx context.Context, record model.Record) error
	IncrementIncidentCount(ctx context.Context, stationID string) error

	GetAllActiveStations(ctx context.Context) ([]model.Station, error)
	GetStationsByConnectionType(ctx context.Context, connectionType string) ([]model.Station, error)
	GetStation(ctx context.Context, stationID string) (model.Station, error)
}

package timescaledb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/storage"
	"gorm.io/gorm"
)

// Store implements storage.Store against a TimescaleDB/Postgres
// database via gorm.
type Store struct {
	client *Client
}

var _ storage.Store = (*Store)(nil)

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) InitRun(ctx context.Context, run model.RunSummary) error {
	row := runRow{
		RunID:         run.RunID,
		StartedAt:     run.StartedAt,
		LaunchCommand: run.LaunchCommand,
		DryRun:        run.DryRun,
	}
	return s.client.DB.WithContext(ctx).Create(&row).Error
}

func (s *Store) SaveRunSummary(ctx context.Context, run model.RunSummary) error {
	stationErrors, err := json.Marshal(run.StationErrors)
	if err != nil {
		return fmt.Errorf("encoding station errors: %w", err)
	}

	updates := map[string]interface{}{
		"finished_at":    run.FinishedAt,
		"station_count":  run.StationCount,
		"success_count":  run.SuccessCount,
		"error_count":    run.ErrorCount,
		"no_data_count":  run.NoDataCount,
		"station_errors": string(stationErrors),
	}
	return s.client.DB.WithContext(ctx).Model(&runRow{}).Where("run_id = ?", run.RunID).Updates(updates).Error
}

func (s *Store) SaveRecord(ctx context.Context, record model.Record) error {
	row := recordRow{
		ID:              record.ID,
		RunID:           record.RunID,
		StationID:       record.StationID,
		Temperature:     record.Temperature,
		MaxTemperature:  record.MaxTemperature,
		MinTemperature:  record.MinTemperature,
		Humidity:        record.Humidity,
		Pressure:        record.Pressure,
		WindSpeed:       record.WindSpeed,
		MaxWindSpeed:    record.MaxWindSpeed,
		WindGust:        record.WindGust,
		MaxWindGust:     record.MaxWindGust,
		WindDirection:   record.WindDirection,
		Rain:            record.Rain,
		CumulativeRain:  record.CumulativeRain,
		SourceTimestamp: record.SourceTimestamp,
		TakenTimestamp:  record.TakenTimestamp,
		Flagged:         record.Flagged,
	}
	return s.client.DB.WithContext(ctx).Create(&row).Error
}

func (s *Store) IncrementIncidentCount(ctx context.Context, stationID string) error {
	return s.client.DB.WithContext(ctx).Model(&stationRow{}).
		Where("id = ?", stationID).
		UpdateColumn("incident_count", gorm.Expr("incident_count + 1")).Error
}

func (s *Store) GetAllActiveStations(ctx context.Context) ([]model.Station, error) {
	var rows []stationRow
	if err := s.client.DB.WithContext(ctx).Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading active stations: %w", err)
	}
	return toStations(rows), nil
}

func (s *Store) GetStationsByConnectionType(ctx context.Context, connectionType string) ([]model.Station, error) {
	var rows []stationRow
	if err := s.client.DB.WithContext(ctx).
		Where("active = ? AND connection_type = ?", true, connectionType).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading stations of type %s: %w", connectionType, err)
	}
	return toStations(rows), nil
}

func (s *Store) GetStation(ctx context.Context, stationID string) (model.Station, error) {
	var row stationRow
	if err := s.client.DB.WithContext(ctx).Where("id = ?", stationID).First(&row).Error; err != nil {
		return model.Station{}, fmt.Errorf("loading station %s: %w", stationID, err)
	}
	return toStation(row), nil
}

func toStations(rows []stationRow) []model.Station {
	out := make([]model.Station, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStation(r))
	}
	return out
}

func toStation(r stationRow) model.Station {
	return model.Station{
		ID:             r.ID,
		Name:           r.Name,
		ConnectionType: r.ConnectionType,
		Timezone:       r.Timezone,
		Active:         r.Active,
		PressureOffset: r.PressureOffset,
		Field1:         r.Field1,
		Field2:         r.Field2,
		Field3:         r.Field3,
	}
}

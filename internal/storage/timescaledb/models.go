package timescaledb

import "time"

// stationRow is the catalog table gorm maps Station onto.
type stationRow struct {
	ID             string  `gorm:"primaryKey;column:id"`
	Name           string  `gorm:"column:name;not null"`
	ConnectionType string  `gorm:"column:connection_type;not null"`
	Timezone       string  `gorm:"column:timezone;not null"`
	Active         bool    `gorm:"column:active;not null;default:true"`
	PressureOffset float64 `gorm:"column:pressure_offset;default:0"`
	Field1         string  `gorm:"column:field1"`
	Field2         string  `gorm:"column:field2"`
	Field3         string  `gorm:"column:field3"`
	IncidentCount  int     `gorm:"column:incident_count;default:0"`
}

func (stationRow) TableName() string { return "weather_stations" }

// recordRow is the hypertable gorm appends normalized readings to.
type recordRow struct {
	ID              string    `gorm:"column:id;primaryKey"`
	RunID           string    `gorm:"column:run_id;index"`
	StationID       string    `gorm:"column:station_id;not null;index"`
	Temperature     *float64  `gorm:"column:temperature"`
	MaxTemperature  *float64  `gorm:"column:max_temperature"`
	MinTemperature  *float64  `gorm:"column:min_temperature"`
	Humidity        *float64  `gorm:"column:humidity"`
	Pressure        *float64  `gorm:"column:pressure"`
	WindSpeed       *float64  `gorm:"column:wind_speed"`
	MaxWindSpeed    *float64  `gorm:"column:max_wind_speed"`
	WindGust        *float64  `gorm:"column:wind_gust"`
	MaxWindGust     *float64  `gorm:"column:max_wind_gust"`
	WindDirection   *float64  `gorm:"column:wind_direction"`
	Rain            *float64  `gorm:"column:rain"`
	CumulativeRain  *float64  `gorm:"column:cumulative_rain"`
	SourceTimestamp time.Time `gorm:"column:source_timestamp;not null;index"`
	TakenTimestamp  time.Time `gorm:"column:taken_timestamp;not null"`
	Flagged         bool      `gorm:"column:flagged;default:false"`
}

func (recordRow) TableName() string { return "weather_records" }

// runRow is one collector invocation's summary. StationErrors is stored
// as a JSON object mapping station ID to error message, since a run can
// touch an arbitrary number of stations.
type runRow struct {
	RunID         string    `gorm:"primaryKey;column:run_id"`
	StartedAt     time.Time `gorm:"column:started_at;not null"`
	FinishedAt    time.Time `gorm:"column:finished_at"`
	LaunchCommand string    `gorm:"column:launch_command"`
	StationCount  int       `gorm:"column:station_count"`
	SuccessCount  int       `gorm:"column:success_count"`
	ErrorCount    int       `gorm:"column:error_count"`
	NoDataCount   int       `gorm:"column:no_data_count"`
	DryRun        bool      `gorm:"column:dry_run"`
	StationErrors string    `gorm:"column:station_errors"`
}

func (runRow) TableName() string { return "collector_runs" }

package model

import "time"

// Record is the normalized shape every reader produces, regardless of the
// wire format it parsed. Pointer fields distinguish "absent" from "zero":
// a reading a station never reports stays nil rather than becoming 0.0,
// so the corrector and validator don't mistake silence for a measurement.
type Record struct {
	ID        string
	StationID string
	RunID     string

	Temperature    *float64
	MaxTemperature *float64
	MinTemperature *float64

	Humidity *float64

	Pressure *float64

	WindSpeed     *float64
	MaxWindSpeed  *float64
	WindGust      *float64
	MaxWindGust   *float64
	WindDirection *float64

	Rain           *float64
	CumulativeRain *float64

	// SourceTimestamp is when the station says the reading was taken.
	// TakenTimestamp is when the collector observed it (used, with
	// SourceTimestamp, for first-hour-of-the-day early-reading suppression).
	SourceTimestamp time.Time
	TakenTimestamp  time.Time

	// Flagged marks a record the validator judged suspicious — either a
	// blanked out-of-range value or a failed consistency check.
	Flagged bool
}

// RunStatus enumerates the terminal states of a single station's
// processing attempt within a run.
type RunStatus string

const (
	StatusOK     RunStatus = "ok"
	StatusError  RunStatus = "error"
	StatusNoData RunStatus = "no_data"
)

// StationResult is what the collector produces per station per run,
// whether or not the read actually succeeded.
type StationResult struct {
	Station Station
	Record  *Record
	Status  RunStatus
	Err     error
}

// RunSummary aggregates one invocation of the collector across every
// station it attempted.
type RunSummary struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	LaunchCommand string
	StationCount  int
	SuccessCount  int
	ErrorCount    int
	NoDataCount   int
	DryRun        bool

	// StationErrors maps a station identifier to the error message its
	// attempt failed with. A station with no entry either succeeded or
	// had nothing to report.
	StationErrors map[string]string
}

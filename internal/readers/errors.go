package readers

import "errors"

// ErrorKind classifies why a reader failed to produce a record, mirroring
// the fixed set of failure modes the collector's status and incident
// reporting switches on.
type ErrorKind string

const (
	KindMissingField        ErrorKind = "missing_field"
	KindInvalidPayload      ErrorKind = "invalid_payload"
	KindMissingTimestamp    ErrorKind = "missing_timestamp"
	KindFutureTimestamp     ErrorKind = "future_timestamp"
	KindStaleTimestamp      ErrorKind = "stale_timestamp"
	KindNoData              ErrorKind = "no_data"
	KindHTTPFailure         ErrorKind = "http_failure"
	KindUnknownConnection   ErrorKind = "unknown_connection_type"
	KindInvalidTimezone     ErrorKind = "invalid_timezone"
)

var (
	ErrMissingField      = errors.New("missing required connection field")
	ErrInvalidPayload    = errors.New("could not parse response payload")
	ErrMissingTimestamp  = errors.New("record has no usable timestamp")
	ErrFutureTimestamp   = errors.New("record timestamp is in the future")
	ErrStaleTimestamp    = errors.New("record timestamp is too old")
	ErrNoData            = errors.New("station returned no data")
	ErrHTTPFailure       = errors.New("http request failed")
	ErrUnknownConnection = errors.New("unknown connection type")
	ErrInvalidTimezone   = errors.New("station timezone is not supported")
)

// ReaderError wraps an underlying error (a sentinel or the error returned
// by a fetch or parse) with the kind and station context needed to report
// an incident. Error() includes the wrapped error's full text.
type ReaderError struct {
	Kind      ErrorKind
	StationID string
	Err       error
}

func (e *ReaderError) Error() string {
	return e.StationID + ": " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *ReaderError) Unwrap() error { return e.Err }

// Wrap builds a ReaderError for stationID, classifying err by kind.
func Wrap(stationID string, kind ErrorKind, err error) error {
	return &ReaderError{Kind: kind, StationID: stationID, Err: err}
}

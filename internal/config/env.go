// Package config loads the collector's environment-variable
// configuration and gates destructive/non-local runs on operator
// confirmation.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env holds every environment variable the collector requires.
type Env struct {
	DatabaseConnectionURL string
	MaxThreads            int

	WeatherlinkV1Endpoint     string
	WeatherlinkV2Endpoint     string
	WundergroundEndpoint      string
	WundergroundDailyEndpoint string
	HolfuyLiveEndpoint        string
	HolfuyHistoricEndpoint    string
	ThingspeakEndpoint        string
	EcowittEndpoint           string
	EcowittDailyEndpoint      string
}

var requiredVars = []string{
	"DATABASE_CONNECTION_URL",
	"MAX_THREADS",
	"WEATHERLINK_V1_ENDPOINT",
	"WEATHERLINK_V2_ENDPOINT",
	"WUNDERGROUND_ENDPOINT",
	"WUNDERGROUND_DAILY_ENDPOINT",
	"HOLFUY_LIVE_ENDPOINT",
	"HOLFUY_HISTORIC_ENDPOINT",
	"THINGSPEAK_ENDPOINT",
	"ECOWITT_ENDPOINT",
	"ECOWITT_DAILY_ENDPOINT",
}

// LoadEnv reads every required variable, failing fast with the names of
// everything missing rather than one at a time.
func LoadEnv() (Env, error) {
	values := make(map[string]string, len(requiredVars))
	var missing []string

	for _, name := range requiredVars {
		v := os.Getenv(name)
		if v == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = v
	}

	if len(missing) > 0 {
		return Env{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	maxThreads, err := strconv.Atoi(values["MAX_THREADS"])
	if err != nil {
		return Env{}, fmt.Errorf("MAX_THREADS must be an integer: %w", err)
	}

	return Env{
		DatabaseConnectionURL:     values["DATABASE_CONNECTION_URL"],
		MaxThreads:                maxThreads,
		WeatherlinkV1Endpoint:     values["WEATHERLINK_V1_ENDPOINT"],
		WeatherlinkV2Endpoint:     values["WEATHERLINK_V2_ENDPOINT"],
		WundergroundEndpoint:      values["WUNDERGROUND_ENDPOINT"],
		WundergroundDailyEndpoint: values["WUNDERGROUND_DAILY_ENDPOINT"],
		HolfuyLiveEndpoint:        values["HOLFUY_LIVE_ENDPOINT"],
		HolfuyHistoricEndpoint:    values["HOLFUY_HISTORIC_ENDPOINT"],
		ThingspeakEndpoint:        values["THINGSPEAK_ENDPOINT"],
		EcowittEndpoint:           values["ECOWITT_ENDPOINT"],
		EcowittDailyEndpoint:      values["ECOWITT_DAILY_ENDPOINT"],
	}, nil
}

// ConfirmNonLocalDatabase prompts the operator before proceeding against
// a database connection string that doesn't look local. Returns true if
// it's safe to proceed (either the target is local, or the operator
// confirmed).
func ConfirmNonLocalDatabase(connectionString string, in *bufio.Reader) bool {
	if strings.Contains(connectionString, "localhost") || strings.Contains(connectionString, "127.0.0.1") {
		return true
	}

	fmt.Printf("WARNING: database connection does not look local: %s\n", connectionString)
	fmt.Print("Continue anyway? [y/N]: ")

	line, err := in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

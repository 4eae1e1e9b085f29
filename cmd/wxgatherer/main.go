// Command wxgatherer polls a fleet of weather stations, normalizes their
// readings, and persists them to TimescaleDB.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chrissnell/wxgatherer/internal/collector"
	"github.com/chrissnell/wxgatherer/internal/config"
	"github.com/chrissnell/wxgatherer/internal/constants"
	"github.com/chrissnell/wxgatherer/internal/log"
	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
	"github.com/chrissnell/wxgatherer/internal/readers/benchmark"
	"github.com/chrissnell/wxgatherer/internal/readers/ecowitt"
	"github.com/chrissnell/wxgatherer/internal/readers/holfuy"
	"github.com/chrissnell/wxgatherer/internal/readers/meteoclimatic"
	"github.com/chrissnell/wxgatherer/internal/readers/realtime"
	"github.com/chrissnell/wxgatherer/internal/readers/thingspeak"
	"github.com/chrissnell/wxgatherer/internal/readers/weatherlinkv1"
	"github.com/chrissnell/wxgatherer/internal/readers/weatherlinkv2"
	"github.com/chrissnell/wxgatherer/internal/readers/wunderground"
	"github.com/chrissnell/wxgatherer/internal/storage"
	"github.com/chrissnell/wxgatherer/internal/storage/timescaledb"
	"github.com/google/uuid"
)

func main() {
	all := flag.Bool("all", false, "process every active station")
	connType := flag.String("type", "", "process only stations of this connection type")
	stationID := flag.String("id", "", "process only this station")
	testRun := flag.Bool("test-run", false, "alias for --dry-run")
	dryRun := flag.Bool("dry-run", false, "suppress persistence and run latency benchmarks")
	singleThread := flag.Bool("single-thread", false, "force sequential processing")
	flag.Parse()

	dryRunEffective := *dryRun || *testRun

	if err := log.Init(dryRunEffective, "wxgatherer.log"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Infof("wxgatherer %s (%s) starting", constants.Version, constants.CommitID)

	selectorCount := 0
	for _, set := range []bool{*all, *connType != "", *stationID != ""} {
		if set {
			selectorCount++
		}
	}
	if selectorCount != 1 {
		log.Fatalf("exactly one of --all, --type, or --id is required")
	}

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if !config.ConfirmNonLocalDatabase(env.DatabaseConnectionURL, bufio.NewReader(os.Stdin)) {
		log.Fatalf("aborting: database confirmation declined")
	}

	client, err := timescaledb.Connect(env.DatabaseConnectionURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	store := timescaledb.NewStore(client)

	stations, err := selectStations(context.Background(), store, *all, *connType, *stationID)
	if err != nil {
		log.Fatalf("loading stations: %v", err)
	}
	if len(stations) == 0 {
		log.Warn("no stations matched the given selector")
		return
	}

	factories := buildReaderFactories(env, dryRunEffective)

	c := collector.New(store, factories)

	runID := uuid.NewString()
	startedAt := time.Now().UTC().Truncate(time.Minute)
	launchCommand := strings.Join(os.Args, " ")
	log.Infof("starting run %s over %d station(s)", runID, len(stations))

	ctx := context.Background()

	if !dryRunEffective {
		if err := store.InitRun(ctx, model.RunSummary{
			RunID:         runID,
			StartedAt:     startedAt,
			LaunchCommand: launchCommand,
			DryRun:        dryRunEffective,
		}); err != nil {
			log.Errorf("recording run start: %v", err)
		}
	}

	run := c.Run(ctx, stations, collector.Options{
		SingleThread: *singleThread,
		DryRun:       dryRunEffective,
		MaxThreads:   env.MaxThreads,
		RunID:        runID,
		StartedAt:    startedAt,
	})
	run.LaunchCommand = launchCommand

	if !dryRunEffective {
		if err := store.SaveRunSummary(ctx, run); err != nil {
			log.Errorf("recording run summary: %v", err)
		}
	}

	log.Infof("run %s complete: %d ok, %d no-data, %d error",
		run.RunID, run.SuccessCount, run.NoDataCount, run.ErrorCount)
}

func selectStations(ctx context.Context, store storage.Store, all bool, connType, stationID string) ([]model.Station, error) {
	switch {
	case all:
		return store.GetAllActiveStations(ctx)
	case connType != "":
		return store.GetStationsByConnectionType(ctx, connType)
	case stationID != "":
		station, err := store.GetStation(ctx, stationID)
		if err != nil {
			return nil, err
		}
		return []model.Station{station}, nil
	default:
		return nil, fmt.Errorf("no selector provided")
	}
}

// buildReaderFactories wires each connection type to a constructor that
// produces a fresh reader per station. Under a dry run the benchmark
// reader stands in for every connection type so latency numbers reflect
// known-good reference timings instead of live network conditions.
func buildReaderFactories(env config.Env, dryRun bool) map[string]collector.ReaderFactory {
	real := map[string]collector.ReaderFactory{
		"ecowitt": func() readers.Reader {
			return ecowitt.New(env.EcowittEndpoint, env.EcowittDailyEndpoint)
		},
		"meteoclimatic": func() readers.Reader {
			// Meteoclimatic has no per-deployment endpoint; every station
			// resolves against the same public domain by station code.
			return meteoclimatic.New("https://www.meteoclimatic.net/feed/{station}")
		},
		"realtime": func() readers.Reader {
			return realtime.New()
		},
		"weatherlink_v1": func() readers.Reader {
			return weatherlinkv1.New(env.WeatherlinkV1Endpoint)
		},
		"weatherlink_v2": func() readers.Reader {
			return weatherlinkv2.New(env.WeatherlinkV2Endpoint)
		},
		"wunderground": func() readers.Reader {
			return wunderground.New(env.WundergroundEndpoint, env.WundergroundDailyEndpoint)
		},
		"holfuy": func() readers.Reader {
			return holfuy.New(env.HolfuyLiveEndpoint, env.HolfuyHistoricEndpoint)
		},
		"thingspeak": func() readers.Reader {
			return thingspeak.New(env.ThingspeakEndpoint)
		},
	}

	if !dryRun {
		return real
	}

	benched := make(map[string]collector.ReaderFactory, len(real))
	for connType := range real {
		ct := connType
		benched[ct] = func() readers.Reader { return benchmark.New(ct) }
	}
	return benched
}

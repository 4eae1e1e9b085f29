// Package collector orchestrates a polling run: selecting stations,
// dispatching concurrent reads through per-connection-type readers,
// post-processing results, and persisting the outcome.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chrissnell/wxgatherer/internal/log"
	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/postprocess"
	"github.com/chrissnell/wxgatherer/internal/readers"
	"github.com/chrissnell/wxgatherer/internal/storage"
	"gonum.org/v1/gonum/stat"
)

// sequentialThreshold is the station count below which processing runs
// sequentially regardless of MaxThreads — spinning up a worker pool for
// a handful of stations costs more than it saves.
const sequentialThreshold = 30

// ReaderFactory produces a fresh Reader instance for one station's read.
// A fresh instance per station is required: readers are not safe to
// reuse or share across concurrent reads.
type ReaderFactory func() readers.Reader

// Options configures one run of the collector.
type Options struct {
	SingleThread bool
	DryRun       bool
	MaxThreads   int

	// RunID and StartedAt identify this run for every record it persists
	// and for the run summary; both are generated by the caller so they
	// can be recorded before the run starts.
	RunID     string
	StartedAt time.Time
}

// Collector owns the reader-factory registry and the per-connection-type
// latency samples a run accumulates; incident counts are kept by the store.
type Collector struct {
	factories map[string]ReaderFactory
	store     storage.Store

	latencyMu sync.Mutex
	latency   map[string][]float64
}

// New constructs a Collector backed by store, with factories mapping a
// station's connection type to a reader constructor.
func New(store storage.Store, factories map[string]ReaderFactory) *Collector {
	return &Collector{
		factories: factories,
		store:     store,
		latency:   make(map[string][]float64),
	}
}

// Run processes every station in stations under opts, returning the
// run's summary. No station's failure stops another station's
// processing.
func (c *Collector) Run(ctx context.Context, stations []model.Station, opts Options) model.RunSummary {
	run := model.RunSummary{
		RunID:         opts.RunID,
		StartedAt:     opts.StartedAt,
		StationCount:  len(stations),
		DryRun:        opts.DryRun,
		StationErrors: make(map[string]string),
	}

	var results []model.StationResult
	if opts.SingleThread || len(stations) < sequentialThreshold {
		results = c.processSequential(ctx, stations, opts)
	} else {
		results = c.processConcurrent(ctx, stations, opts)
	}

	for _, r := range results {
		switch r.Status {
		case model.StatusOK:
			run.SuccessCount++
		case model.StatusNoData:
			run.NoDataCount++
		case model.StatusError:
			run.ErrorCount++
		}
		if r.Err != nil {
			run.StationErrors[r.Station.ID] = r.Err.Error()
		}
	}

	run.FinishedAt = time.Now().UTC()

	if opts.DryRun {
		c.logBenchmarkResults()
	}

	return run
}

func (c *Collector) processSequential(ctx context.Context, stations []model.Station, opts Options) []model.StationResult {
	results := make([]model.StationResult, 0, len(stations))
	for _, station := range stations {
		results = append(results, c.processStation(ctx, station, opts))
	}
	return results
}

func (c *Collector) processConcurrent(ctx context.Context, stations []model.Station, opts Options) []model.StationResult {
	maxThreads := opts.MaxThreads
	if maxThreads <= 0 {
		maxThreads = 1
	}

	chunks := splitIntoChunks(stations, maxThreads)

	resultsCh := make(chan []model.StationResult, len(chunks))
	var wg sync.WaitGroup

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []model.Station) {
			defer wg.Done()
			chunkResults := make([]model.StationResult, 0, len(chunk))
			for _, station := range chunk {
				chunkResults = append(chunkResults, c.processStation(ctx, station, opts))
			}
			resultsCh <- chunkResults
		}(chunk)
	}

	wg.Wait()
	close(resultsCh)

	var all []model.StationResult
	for chunkResults := range resultsCh {
		all = append(all, chunkResults...)
	}
	return all
}

// processStation reads, post-processes, and (unless this is a dry run)
// persists a single station's record. A panic inside a reader's tolerant
// parsing — which runs against operator-controlled wire formats this
// collector has never seen in testing — is recovered here and converted
// to an ordinary error result so it can't take the rest of a run with it.
func (c *Collector) processStation(ctx context.Context, station model.Station, opts Options) (result model.StationResult) {
	result = model.StationResult{Station: station}

	defer func() {
		if p := recover(); p != nil {
			result.Status = model.StatusError
			result.Err = fmt.Errorf("panic processing station %s: %v", station.ID, p)
			log.Errorf("recovered panic processing station %s: %v", station.ID, p)
			c.reportIncident(ctx, station, opts)
		}
	}()

	if !model.ValidTimezone(station.Timezone) {
		result.Status = model.StatusError
		result.Err = readers.Wrap(station.ID, readers.KindInvalidTimezone, readers.ErrInvalidTimezone)
		log.Errorf("station %s: %v", station.ID, result.Err)
		c.reportIncident(ctx, station, opts)
		return result
	}

	factory, ok := c.factories[station.ConnectionType]
	if !ok {
		result.Status = model.StatusError
		result.Err = readers.Wrap(station.ID, readers.KindUnknownConnection, readers.ErrUnknownConnection)
		log.Errorf("station %s: %v", station.ID, result.Err)
		c.reportIncident(ctx, station, opts)
		return result
	}

	reader := factory()

	started := time.Now()
	record, err := reader.Read(ctx, station, time.Now().UTC())
	elapsed := time.Since(started)

	c.recordLatency(station.ConnectionType, elapsed.Seconds())

	if err != nil {
		if isNoData(err) {
			result.Status = model.StatusNoData
		} else {
			result.Status = model.StatusError
		}
		result.Err = err
		log.Warnf("station %s: %v", station.ID, err)
		c.reportIncident(ctx, station, opts)
		return result
	}

	corrected := postprocess.Corrector{}.Correct(*record, station.PressureOffset, 1)
	validated := postprocess.Validator{}.Validate(corrected)
	validated.RunID = opts.RunID

	result.Record = &validated
	result.Status = model.StatusOK

	if !opts.DryRun {
		if err := c.store.SaveRecord(ctx, validated); err != nil {
			log.Errorf("station %s: saving record: %v", station.ID, err)
			result.Status = model.StatusError
			result.Err = err
			c.reportIncident(ctx, station, opts)
		}
	}

	return result
}

// isNoData reports whether err represents a station simply having
// nothing to report, as opposed to a real failure.
func isNoData(err error) bool {
	var rerr *readers.ReaderError
	if errors.As(err, &rerr) {
		return rerr.Kind == readers.KindNoData
	}
	return errors.Is(err, readers.ErrNoData)
}

func (c *Collector) reportIncident(ctx context.Context, station model.Station, opts Options) {
	if opts.DryRun {
		return
	}
	if err := c.store.IncrementIncidentCount(ctx, station.ID); err != nil {
		log.Errorf("station %s: incrementing incident count: %v", station.ID, err)
	}
}

func (c *Collector) recordLatency(connectionType string, seconds float64) {
	c.latencyMu.Lock()
	defer c.latencyMu.Unlock()
	c.latency[connectionType] = append(c.latency[connectionType], seconds)
}

// logBenchmarkResults reports the mean and median latency observed per
// connection type during a dry run.
func (c *Collector) logBenchmarkResults() {
	c.latencyMu.Lock()
	defer c.latencyMu.Unlock()

	types := make([]string, 0, len(c.latency))
	for t := range c.latency {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, connectionType := range types {
		samples := append([]float64(nil), c.latency[connectionType]...)
		sort.Float64s(samples)

		mean := stat.Mean(samples, nil)
		median := stat.Quantile(0.5, stat.Empirical, samples, nil)

		log.Infof("latency[%s]: n=%d mean=%.4fs median=%.4fs", connectionType, len(samples), mean, median)
	}
}

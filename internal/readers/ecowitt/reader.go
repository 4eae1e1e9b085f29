// Package ecowitt reads Ecowitt gateway JSON over the cloud API: current
// conditions plus a same-day history call for daily extremes.
package ecowitt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
	"github.com/chrissnell/wxgatherer/internal/readers"
)

// Reader implements readers.Reader for Ecowitt's live+history API.
// Field1=application key, Field2=api key, Field3=MAC address.
type Reader struct {
	readers.Base
	LiveEndpoint  string
	DailyEndpoint string
}

// New constructs a fresh Ecowitt reader bound to the given endpoints.
// A new instance must be used for every station/run.
func New(liveEndpoint, dailyEndpoint string) *Reader {
	r := &Reader{LiveEndpoint: liveEndpoint, DailyEndpoint: dailyEndpoint}
	r.Base = readers.Base{RequiredFields: 3, IgnoreEarlyReadings: true}
	r.Base.Fetcher = r
	r.Base.Parser = r
	return r
}

func (r *Reader) Fetch(ctx context.Context, station model.Station) (live, daily string, err error) {
	liveURL := fmt.Sprintf(
		"%s?application_key=%s&api_key=%s&mac=%s&temp_unitid=1&pressure_unitid=3&wind_speed_unitid=7&rainfall_unitid=12",
		r.LiveEndpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field2), url.QueryEscape(station.Field3))

	live, err = readers.Get(ctx, liveURL)
	if err != nil {
		return "", "", err
	}

	now := time.Now().UTC()
	start := now.Format("2006-01-02 00:00:00")
	end := now.Format("2006-01-02 15:04:05")
	dailyURL := fmt.Sprintf(
		"%s?application_key=%s&api_key=%s&mac=%s&temp_unitid=1&pressure_unitid=3&wind_speed_unitid=7&rainfall_unitid=12"+
			"&cycle_type=auto&start_date=%s&end_date=%s&call_back=outdoor,wind",
		r.DailyEndpoint, url.QueryEscape(station.Field1), url.QueryEscape(station.Field2), url.QueryEscape(station.Field3),
		url.QueryEscape(start), url.QueryEscape(end))

	daily, err = readers.Get(ctx, dailyURL)
	if err != nil {
		// daily history is supplementary; a live reading without daily
		// extremes is still a usable record.
		daily = ""
	}

	return live, daily, nil
}

func (r *Reader) Parse(station model.Station, live, daily string, now time.Time) (*model.Record, error) {
	var liveDoc struct {
		Data struct {
			Outdoor struct {
				Temperature struct {
					Time  string `json:"time"`
					Value string `json:"value"`
				} `json:"temperature"`
				Humidity struct {
					Value string `json:"value"`
				} `json:"humidity"`
			} `json:"outdoor"`
			Pressure struct {
				Relative struct {
					Value string `json:"value"`
				} `json:"relative"`
			} `json:"pressure"`
			Wind struct {
				WindSpeed struct {
					Value string `json:"value"`
				} `json:"wind_speed"`
				WindGust struct {
					Value string `json:"value"`
				} `json:"wind_gust"`
				WindDirection struct {
					Value string `json:"value"`
				} `json:"wind_direction"`
			} `json:"wind"`
			Rainfall struct {
				RainRate struct {
					Value string `json:"value"`
				} `json:"rain_rate"`
				Daily struct {
					Value string `json:"value"`
				} `json:"daily"`
			} `json:"rainfall"`
		} `json:"data"`
	}

	if err := json.Unmarshal([]byte(live), &liveDoc); err != nil {
		return nil, fmt.Errorf("parsing ecowitt live payload: %w", err)
	}

	ts := liveDoc.Data.Outdoor.Temperature.Time
	unixSeconds := readers.SafeInt(ts)
	if unixSeconds == nil {
		return nil, fmt.Errorf("ecowitt live payload missing outdoor.temperature.time")
	}

	record := &model.Record{
		SourceTimestamp: time.Unix(int64(*unixSeconds), 0).UTC(),
	}

	if v := readers.SafeFloat(liveDoc.Data.Outdoor.Temperature.Value); v != nil {
		c := readers.FahrenheitToCelsius(*v)
		record.Temperature = &c
	}
	record.Humidity = readers.SafeFloat(liveDoc.Data.Outdoor.Humidity.Value)
	if v := readers.SafeFloat(liveDoc.Data.Pressure.Relative.Value); v != nil {
		hpa := readers.PsiToHectopascals(*v)
		record.Pressure = &hpa
	}
	if v := readers.SafeFloat(liveDoc.Data.Wind.WindSpeed.Value); v != nil {
		kph := readers.MphToKph(*v)
		record.WindSpeed = &kph
	}
	if v := readers.SafeFloat(liveDoc.Data.Wind.WindGust.Value); v != nil {
		kph := readers.MphToKph(*v)
		record.WindGust = &kph
	}
	record.WindDirection = readers.SafeFloat(liveDoc.Data.Wind.WindDirection.Value)
	if v := readers.SafeFloat(liveDoc.Data.Rainfall.RainRate.Value); v != nil {
		mm := readers.InchesToMillimeters(*v)
		record.Rain = &mm
	}
	if v := readers.SafeFloat(liveDoc.Data.Rainfall.Daily.Value); v != nil {
		mm := readers.InchesToMillimeters(*v)
		record.CumulativeRain = &mm
	}

	// A rollover reading in the first two local hours of the day reports
	// yesterday's extremes under today's timestamp; skip computing daily
	// max/min from history in that window rather than mislabel them.
	loc, err := time.LoadLocation(station.Timezone)
	if err != nil {
		loc = time.UTC
	}
	if h := record.SourceTimestamp.In(loc).Hour(); h == 0 || h == 1 {
		return record, nil
	}

	if daily == "" {
		return record, nil
	}

	var dailyDoc struct {
		Outdoor struct {
			Temperature struct {
				List map[string]string `json:"list"`
			} `json:"temperature"`
		} `json:"outdoor"`
		Wind struct {
			WindSpeed struct {
				List map[string]string `json:"list"`
			} `json:"wind_speed"`
			WindGust struct {
				List map[string]string `json:"list"`
			} `json:"wind_gust"`
		} `json:"wind"`
	}
	if err := json.Unmarshal([]byte(daily), &dailyDoc); err != nil {
		return record, nil
	}

	maxT, minT := extremes(dailyDoc.Outdoor.Temperature.List)
	if maxT != nil {
		c := readers.FahrenheitToCelsius(*maxT)
		record.MaxTemperature = &c
	}
	if minT != nil {
		c := readers.FahrenheitToCelsius(*minT)
		record.MinTemperature = &c
	}

	maxW, _ := extremes(dailyDoc.Wind.WindSpeed.List)
	if maxW != nil {
		kph := readers.MphToKph(*maxW)
		record.MaxWindSpeed = &kph
	}

	maxG, _ := extremes(dailyDoc.Wind.WindGust.List)
	if maxG != nil {
		kph := readers.MphToKph(*maxG)
		record.MaxWindGust = &kph
	}

	return record, nil
}

func extremes(list map[string]string) (max, min *float64) {
	for _, raw := range list {
		v := readers.SafeFloat(raw)
		if v == nil {
			continue
		}
		if max == nil || *v > *max {
			m := *v
			max = &m
		}
		if min == nil || *v < *min {
			m := *v
			min = &m
		}
	}
	return max, min
}

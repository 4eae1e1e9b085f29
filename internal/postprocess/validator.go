package postprocess

import "github.com/chrissnell/wxgatherer/internal/model"

type safeRange struct {
	min, max float64
}

// safeRanges bounds each field to physically plausible values. A reading
// outside its range is blanked to nil and the record is flagged — the
// value is presumed a sensor fault, not a real extreme.
var safeRanges = map[string]safeRange{
	"temperature":     {-39, 50},
	"max_temperature": {-39, 50},
	"min_temperature": {-39, 50},
	"wind_speed":      {0, 500},
	"max_wind_speed":  {0, 500},
	"wind_gust":       {0, 500},
	"max_wind_gust":   {0, 500},
	"humidity":        {0, 100},
	"pressure":        {800, 1100},
	"wind_direction":  {0, 360},
	"rain":            {0, 500},
	"cumulative_rain": {0, 15000},
}

// Validator applies safe-range blanking and pairwise consistency checks.
// Consistency failures only flag a record; they never blank a value,
// since a min/max inversion could just as easily mean the station's
// rollover clock is wrong as mean either value is bad.
type Validator struct{}

// Validate returns a copy of record with out-of-range fields blanked and
// Flagged set if either pass found a problem.
func (v Validator) Validate(record model.Record) model.Record {
	out := record
	flagged := false

	clamp := func(field string, p *float64) *float64 {
		if p == nil {
			return nil
		}
		r, ok := safeRanges[field]
		if !ok {
			return p
		}
		if *p < r.min || *p > r.max {
			flagged = true
			return nil
		}
		return p
	}

	out.Temperature = clamp("temperature", out.Temperature)
	out.MaxTemperature = clamp("max_temperature", out.MaxTemperature)
	out.MinTemperature = clamp("min_temperature", out.MinTemperature)
	out.WindSpeed = clamp("wind_speed", out.WindSpeed)
	out.MaxWindSpeed = clamp("max_wind_speed", out.MaxWindSpeed)
	out.WindGust = clamp("wind_gust", out.WindGust)
	out.MaxWindGust = clamp("max_wind_gust", out.MaxWindGust)
	out.Humidity = clamp("humidity", out.Humidity)
	out.Pressure = clamp("pressure", out.Pressure)
	out.WindDirection = clamp("wind_direction", out.WindDirection)
	out.Rain = clamp("rain", out.Rain)
	out.CumulativeRain = clamp("cumulative_rain", out.CumulativeRain)

	if v.violatesConsistency(out) {
		flagged = true
	}

	out.Flagged = flagged
	return out
}

// violatesConsistency checks the fixed set of pairwise relationships a
// sane record must satisfy. Any missing operand makes a pair vacuously
// consistent — there's nothing to compare.
func (v Validator) violatesConsistency(r model.Record) bool {
	violated := false

	lte := func(a, b *float64) {
		if a != nil && b != nil && *a > *b {
			violated = true
		}
	}

	lte(r.MinTemperature, r.Temperature)
	lte(r.Temperature, r.MaxTemperature)
	lte(r.MinTemperature, r.MaxTemperature)
	lte(r.WindSpeed, r.MaxWindSpeed)
	lte(r.WindGust, r.MaxWindGust)
	lte(r.WindSpeed, r.WindGust)

	return violated
}

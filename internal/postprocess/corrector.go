// Package postprocess applies the collector's two deterministic,
// dependency-free transformations to a normalized record: pressure
// offset correction and safe-range/consistency validation.
package postprocess

import (
	"math"

	"github.com/chrissnell/wxgatherer/internal/model"
)

// defaultDecimals is the rounding precision applied when the caller
// passes zero decimals.
const defaultDecimals = 1

// Corrector applies a station's pressure offset and rounds the fields
// that are specified to a fixed decimal precision. It never sets the
// Flagged bit — that's the Validator's job.
type Corrector struct{}

// Correct returns a copy of record with the station's pressure offset
// applied (when both the offset and the pressure reading are present)
// and every rounded field rounded to the nearest value at decimals places.
func (c Corrector) Correct(record model.Record, pressureOffset float64, decimals int) model.Record {
	if decimals == 0 {
		decimals = defaultDecimals
	}

	out := record

	if out.Pressure != nil && pressureOffset != 0 {
		v := *out.Pressure + pressureOffset
		out.Pressure = &v
	}

	round := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		factor := math.Pow(10, float64(decimals))
		v := math.Round(*p*factor) / factor
		return &v
	}

	out.Temperature = round(out.Temperature)
	out.WindSpeed = round(out.WindSpeed)
	out.MaxWindSpeed = round(out.MaxWindSpeed)
	out.Humidity = round(out.Humidity)
	out.Pressure = round(out.Pressure)
	out.Rain = round(out.Rain)
	out.CumulativeRain = round(out.CumulativeRain)
	out.MaxTemperature = round(out.MaxTemperature)
	out.MinTemperature = round(out.MinTemperature)
	out.WindGust = round(out.WindGust)
	out.MaxWindGust = round(out.MaxWindGust)

	return out
}

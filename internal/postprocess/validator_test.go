package postprocess

import (
	"testing"

	"github.com/chrissnell/wxgatherer/internal/model"
)

func TestValidatorBlanksOutOfRange(t *testing.T) {
	record := model.Record{Temperature: f(200), Humidity: f(50)}
	out := Validator{}.Validate(record)
	if out.Temperature != nil {
		t.Errorf("Temperature = %v, want nil (blanked)", out.Temperature)
	}
	if !out.Flagged {
		t.Error("expected Flagged = true")
	}
	if out.Humidity == nil || *out.Humidity != 50 {
		t.Errorf("Humidity = %v, want unchanged 50", out.Humidity)
	}
}

func TestValidatorConsistencyFlagsWithoutBlanking(t *testing.T) {
	record := model.Record{Temperature: f(10), MaxTemperature: f(5)}
	out := Validator{}.Validate(record)
	if !out.Flagged {
		t.Error("expected Flagged = true for temperature > max_temperature")
	}
	if out.Temperature == nil || *out.Temperature != 10 {
		t.Errorf("Temperature = %v, want unchanged 10 (consistency failures don't blank)", out.Temperature)
	}
	if out.MaxTemperature == nil || *out.MaxTemperature != 5 {
		t.Errorf("MaxTemperature = %v, want unchanged 5", out.MaxTemperature)
	}
}

func TestValidatorPassesCleanRecord(t *testing.T) {
	record := model.Record{
		Temperature:    f(20),
		MinTemperature: f(10),
		MaxTemperature: f(25),
		WindSpeed:      f(10),
		WindGust:       f(15),
		MaxWindSpeed:   f(20),
		MaxWindGust:    f(25),
		Humidity:       f(60),
		Pressure:       f(1013),
		WindDirection:  f(180),
		Rain:           f(0),
		CumulativeRain: f(5),
	}
	out := Validator{}.Validate(record)
	if out.Flagged {
		t.Error("expected Flagged = false for a fully consistent record")
	}
}

func TestValidatorMissingOperandsAreVacuouslyConsistent(t *testing.T) {
	record := model.Record{Temperature: f(20)}
	out := Validator{}.Validate(record)
	if out.Flagged {
		t.Error("expected Flagged = false when comparison operands are absent")
	}
}

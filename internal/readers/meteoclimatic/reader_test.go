package meteoclimatic

import (
	"testing"
	"time"

	"github.com/chrissnell/wxgatherer/internal/model"
)

func TestParseFieldsIgnoresUnwhitelistedCodes(t *testing.T) {
	fields := parseFields("*UPD=2026-03-01 10:00:00*TMP=22.5*IGNORED=999*HUM=60*")
	if fields["UPD"] != "2026-03-01 10:00:00" {
		t.Errorf("UPD = %q", fields["UPD"])
	}
	if _, ok := fields["IGNORED"]; ok {
		t.Error("expected unwhitelisted code to be dropped")
	}
}

func TestParseRecordsSentinelVerbatim(t *testing.T) {
	line := "*UPD=2026-03-01 10:00:00*TMP=100*HUM=60*"
	r := New("https://example.invalid/{station}")
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	record, err := r.Parse(model.Station{ID: "s1", Field1: "ABC"}, line, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Temperature == nil || *record.Temperature != 100 {
		t.Errorf("Temperature = %v, want 100 recorded verbatim", record.Temperature)
	}
}

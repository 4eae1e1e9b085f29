package collector

import (
	"testing"

	"github.com/chrissnell/wxgatherer/internal/model"
)

func makeStations(n int) []model.Station {
	stations := make([]model.Station, n)
	for i := 0; i < n; i++ {
		stations[i] = model.Station{ID: string(rune('a' + i))}
	}
	return stations
}

func TestSplitIntoChunksNoDuplicatesWhenThreadsExceedHalfStations(t *testing.T) {
	// The regression case: more worker threads than half the station
	// count used to duplicate a station across chunks under the
	// original tail-append remainder distribution.
	stations := makeStations(10)
	chunks := splitIntoChunks(stations, 8)

	seen := make(map[string]bool)
	total := 0
	for _, chunk := range chunks {
		for _, s := range chunk {
			if seen[s.ID] {
				t.Fatalf("station %s appeared in more than one chunk", s.ID)
			}
			seen[s.ID] = true
			total++
		}
	}
	if total != len(stations) {
		t.Errorf("got %d stations across chunks, want %d", total, len(stations))
	}
}

func TestSplitIntoChunksEvenDistribution(t *testing.T) {
	stations := makeStations(9)
	chunks := splitIntoChunks(stations, 3)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk) != 3 {
			t.Errorf("chunk size = %d, want 3", len(chunk))
		}
	}
}

func TestSplitIntoChunksRemainderGoesToFirstChunks(t *testing.T) {
	stations := makeStations(10)
	chunks := splitIntoChunks(stations, 3)
	// 10 / 3 = 3 remainder 1: first chunk gets 4, rest get 3.
	want := []int{4, 3, 3}
	for i, chunk := range chunks {
		if len(chunk) != want[i] {
			t.Errorf("chunk[%d] size = %d, want %d", i, len(chunk), want[i])
		}
	}
}

func TestSplitIntoChunksMoreThreadsThanStations(t *testing.T) {
	stations := makeStations(3)
	chunks := splitIntoChunks(stations, 8)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3 (capped at station count)", len(chunks))
	}
}

package collector

import "github.com/chrissnell/wxgatherer/internal/model"

// splitIntoChunks partitions stations into k contiguous, non-overlapping
// chunks as evenly as possible: the first n mod k chunks get one extra
// item. Unlike a tail-append remainder distribution, no station can ever
// appear in two chunks, regardless of how k compares to n.
func splitIntoChunks(stations []model.Station, k int) [][]model.Station {
	n := len(stations)
	if k <= 0 {
		k = 1
	}
	if k > n {
		k = n
	}
	if k == 0 {
		return nil
	}

	base := n / k
	remainder := n % k

	chunks := make([][]model.Station, 0, k)
	offset := 0
	for i := 0; i < k; i++ {
		size := base
		if i < remainder {
			size++
		}
		chunks = append(chunks, stations[offset:offset+size])
		offset += size
	}
	return chunks
}

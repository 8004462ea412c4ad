package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "zero items", items: 0},
		{name: "single item", items: 1},
		{name: "fewer items than cores", items: 3},
		{name: "uneven split", items: 1001},
		{name: "large", items: 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times, want exactly once", i, h)
				}
			}
		})
	}
}

func TestParallelizeWithThresholdSequentialBelow(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential path got [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path invoked fn %d times, want 1", calls)
	}
}

func TestParallelizeWithThresholdParallelAbove(t *testing.T) {
	total := int32(0)
	ParallelizeWithThreshold(5000, 100, func(start, end int) {
		atomic.AddInt32(&total, int32(end-start))
	})
	if total != 5000 {
		t.Errorf("covered %d items, want 5000", total)
	}
}

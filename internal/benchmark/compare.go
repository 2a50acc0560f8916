package benchmark

import "fmt"

// Comparison is the change for one (steps, threads) point between two sweeps.
type Comparison struct {
	Steps   int64
	Threads int
	Prev    float64
	Curr    float64
	Diff    float64 // Percentage change, positive is slower
}

// Compare returns comparisons for points present in both sweeps, ordered
// by the current sweep's series and thread order.
func Compare(prev, curr Sweep) []Comparison {
	prevMap := make(map[int64]map[int]float64)
	for _, series := range prev.Series {
		points := make(map[int]float64, len(series.Samples))
		for _, s := range series.Samples {
			points[s.Threads] = s.Seconds
		}
		prevMap[series.Steps] = points
	}

	var comparisons []Comparison
	for _, series := range curr.Series {
		points, ok := prevMap[series.Steps]
		if !ok {
			continue
		}
		for _, s := range series.Samples {
			p, ok := points[s.Threads]
			if !ok {
				continue
			}
			comp := Comparison{
				Steps:   series.Steps,
				Threads: s.Threads,
				Prev:    p,
				Curr:    s.Seconds,
			}
			if p > 0 {
				comp.Diff = ((s.Seconds - p) / p) * 100
			}
			comparisons = append(comparisons, comp)
		}
	}
	return comparisons
}

// Regressions returns the comparisons slower than threshold percent.
func Regressions(comparisons []Comparison, threshold float64) []Comparison {
	var out []Comparison
	for _, c := range comparisons {
		if c.Diff > threshold {
			out = append(out, c)
		}
	}
	return out
}

func (c Comparison) String() string {
	return fmt.Sprintf("steps=%d threads=%d: %+.2f%%", c.Steps, c.Threads, c.Diff)
}

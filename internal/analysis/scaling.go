// Package analysis derives scaling figures (speedup, parallel efficiency)
// from the samples of a sweep.
package analysis

import (
	"sort"
	"time"

	"scalebench/internal/benchmark"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is one sample with its derived figures.
type Point struct {
	Threads    int
	Seconds    float64
	Speedup    float64 // baseline seconds / seconds
	Efficiency float64 // speedup / (threads / baseline threads)
}

// Report summarizes one series.
type Report struct {
	Steps           int64
	Samples         int
	Failures        int
	BaselineThreads int
	BestThreads     int
	BestSeconds     float64
	MaxSpeedup      float64
	MeanEfficiency  float64
	MeanOverhead    time.Duration // wall clock minus self-reported time
	Points          []Point
}

// Analyze computes a Report for series. The baseline is the sample with the
// lowest thread count; a series without samples yields a zero report.
func Analyze(series benchmark.Series) Report {
	r := Report{
		Steps:    series.Steps,
		Samples:  len(series.Samples),
		Failures: len(series.Failures),
	}
	if len(series.Samples) == 0 {
		return r
	}

	samples := append([]benchmark.Sample(nil), series.Samples...)
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Threads < samples[j].Threads })

	base := samples[0]
	r.BaselineThreads = base.Threads

	seconds := make([]float64, len(samples))
	speedups := make([]float64, len(samples))
	efficiencies := make([]float64, len(samples))
	overheads := make([]float64, 0, len(samples))

	for i, s := range samples {
		seconds[i] = s.Seconds
		p := Point{Threads: s.Threads, Seconds: s.Seconds}
		if s.Seconds > 0 {
			p.Speedup = base.Seconds / s.Seconds
			p.Efficiency = p.Speedup * float64(base.Threads) / float64(s.Threads)
		}
		speedups[i] = p.Speedup
		efficiencies[i] = p.Efficiency
		if s.WallClock > 0 {
			overheads = append(overheads, s.WallClock.Seconds()-s.Seconds)
		}
		r.Points = append(r.Points, p)
	}

	best := floats.MinIdx(seconds)
	r.BestThreads = samples[best].Threads
	r.BestSeconds = seconds[best]
	r.MaxSpeedup = floats.Max(speedups)
	r.MeanEfficiency = stat.Mean(efficiencies, nil)
	if len(overheads) > 0 {
		r.MeanOverhead = time.Duration(stat.Mean(overheads, nil) * float64(time.Second))
	}

	return r
}

// AnalyzeSweep returns one Report per series, in sweep order.
func AnalyzeSweep(sweep benchmark.Sweep) []Report {
	reports := make([]Report, 0, len(sweep.Series))
	for _, s := range sweep.Series {
		reports = append(reports, Analyze(s))
	}
	return reports
}

package benchmark

import "time"

// Sample is one successful run of the external program.
type Sample struct {
	Threads   int           `json:"threads"`
	Seconds   float64       `json:"seconds"`              // Self-reported by the program
	WallClock time.Duration `json:"wall_clock,omitempty"` // Measured around the subprocess
}

// Failure is a run that produced no sample.
type Failure struct {
	Threads int    `json:"threads"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Series holds every run for one workload size, in thread-count order.
type Series struct {
	Steps    int64     `json:"steps"`
	Samples  []Sample  `json:"samples"`
	Failures []Failure `json:"failures,omitempty"`
}

// Sweep is the full result of iterating workload sizes over thread counts.
type Sweep struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Executable string    `json:"executable"`
	Host       string    `json:"host,omitempty"`
	Threads    []int     `json:"threads"`
	Series     []Series  `json:"series"`
}

// Lookup returns the series for steps, or nil.
func (s *Sweep) Lookup(steps int64) *Series {
	for i := range s.Series {
		if s.Series[i].Steps == steps {
			return &s.Series[i]
		}
	}
	return nil
}

// SampleCount returns the number of recorded samples across all series.
func (s *Sweep) SampleCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Samples)
	}
	return n
}

// FailureCount returns the number of failed runs across all series.
func (s *Sweep) FailureCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Failures)
	}
	return n
}

// Seconds returns the duration recorded for threads, if any.
func (s *Series) Seconds(threads int) (float64, bool) {
	for _, sample := range s.Samples {
		if sample.Threads == threads {
			return sample.Seconds, true
		}
	}
	return 0, false
}

// ThreadRange returns the inclusive range min..max as a slice.
func ThreadRange(min, max int) []int {
	if max < min {
		return nil
	}
	threads := make([]int, 0, max-min+1)
	for t := min; t <= max; t++ {
		threads = append(threads, t)
	}
	return threads
}

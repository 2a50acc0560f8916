package telemetry

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scalebench/internal/benchmark"
	scerrors "scalebench/internal/errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepMetrics(t *testing.T) {
	m := NewSweepMetrics()

	m.SeriesStarted(100, 4)
	m.SampleRecorded(100, benchmark.Sample{Threads: 1, Seconds: 2.0, WallClock: 2100 * time.Millisecond}, 1, 4)
	m.SampleRecorded(100, benchmark.Sample{Threads: 2, Seconds: 1.0, WallClock: 1100 * time.Millisecond}, 2, 4)
	m.SampleFailed(100, 3, &scerrors.FormatError{Err: scerrors.ErrMarkerNotFound}, 3, 4)
	m.SampleFailed(100, 4, &scerrors.LaunchError{Executable: "./x", Err: io.EOF}, 4, 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(scerrors.KindFormat)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(scerrors.KindLaunch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LastSeconds.WithLabelValues("100", "2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Progress))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ReportedSeconds))
}

func TestSweepMetrics_Handler(t *testing.T) {
	m := NewSweepMetrics()
	m.SampleRecorded(1000, benchmark.Sample{Threads: 4, Seconds: 0.5}, 1, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "scalebench_runs_total")
	assert.Contains(t, body, `scalebench_last_seconds{steps="1000",threads="4"} 0.5`)
}

func TestStartMetricsServer(t *testing.T) {
	// Grab a free port
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartMetricsServer(ctx, addr, NewSweepMetrics())
	}()

	// Poll until server is up or timeout
	deadline := time.Now().Add(2 * time.Second)
	var lastErr error
	up := false
	for time.Now().Before(deadline) {
		resp, reqErr := http.Get(fmt.Sprintf("http://%s/metrics", addr))
		if reqErr == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				up = true
				break
			}
		}
		lastErr = reqErr
		time.Sleep(50 * time.Millisecond)
	}
	require.True(t, up, "metrics server not reachable: %v", lastErr)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("metrics server did not shut down")
	}
}

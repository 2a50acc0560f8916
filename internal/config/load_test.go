package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoad(t *testing.T) {
	// Cleanup
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		chdirTemp(t)

		require.NoError(t, Load(""))
		cfg, err := Get()
		require.NoError(t, err)

		assert.Equal(t, "./pi_calc", cfg.Executable)
		assert.Equal(t, []int64{100_000_000, 1_000_000_000, 3_000_000_000}, cfg.Steps)
		assert.Equal(t, 1, cfg.Threads.Min)
		assert.Equal(t, 50, cfg.Threads.Max)
		assert.Equal(t, "Czas", cfg.Marker)
		assert.Equal(t, time.Duration(0), cfg.Timeout)
		assert.Equal(t, "performance_chart.png", cfg.Chart.Output)
		assert.True(t, cfg.Chart.Show)
		assert.Equal(t, 12.0, cfg.Chart.Width)
		assert.Equal(t, 7.0, cfg.Chart.Height)
		assert.Equal(t, "json", cfg.Store.Type)
		assert.True(t, cfg.Store.Save)
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		chdirTemp(t)
		t.Setenv("SCALEBENCH_EXECUTABLE", "/opt/bench/pi")
		t.Setenv("SCALEBENCH_THREADS_MAX", "8")
		t.Setenv("SCALEBENCH_TIMEOUT", "90s")

		require.NoError(t, Load(""))
		cfg, err := Get()
		require.NoError(t, err)

		assert.Equal(t, "/opt/bench/pi", cfg.Executable)
		assert.Equal(t, 8, cfg.Threads.Max)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
	})

	t.Run("Load From File", func(t *testing.T) {
		viper.Reset()
		dir := chdirTemp(t)
		path := filepath.Join(dir, "bench.yaml")
		content := `
executable: ./pi_calc.exe
steps: [1000, 2000]
threads:
  min: 2
  max: 4
chart:
  output: out/chart.svg
  show: false
store:
  type: sqlite
  path: history.db
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		require.NoError(t, Load(path))
		cfg, err := Get()
		require.NoError(t, err)

		assert.Equal(t, "./pi_calc.exe", cfg.Executable)
		assert.Equal(t, []int64{1000, 2000}, cfg.Steps)
		assert.Equal(t, ThreadsConfig{Min: 2, Max: 4}, cfg.Threads)
		assert.Equal(t, "out/chart.svg", cfg.Chart.Output)
		assert.False(t, cfg.Chart.Show)
		assert.Equal(t, "sqlite", cfg.Store.Type)
		assert.Equal(t, "history.db", cfg.Store.Path)
	})

	t.Run("Explicit Missing File", func(t *testing.T) {
		viper.Reset()
		chdirTemp(t)

		err := Load("does-not-exist.yaml")
		assert.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	defer viper.Reset()
	viper.Reset()
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, WriteDefault(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "executable: ./pi_calc")

	err = WriteDefault(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWriteDefault_LeavesOutEnvironment(t *testing.T) {
	defer viper.Reset()
	viper.Reset()
	dir := chdirTemp(t)
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T000/B000/secret")
	t.Setenv("SCALEBENCH_EXECUTABLE", "/opt/bench/pi_omp")

	require.NoError(t, Load(""))
	require.Equal(t, "/opt/bench/pi_omp", viper.GetString("executable"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, WriteDefault(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "pi_omp")
	assert.Contains(t, string(data), "executable: ./pi_calc")
}

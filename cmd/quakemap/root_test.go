package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	url := cmd.Flags().Lookup("url")
	require.NotNil(t, url)
	assert.Equal(t, "u", url.Shorthand)

	out := cmd.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}

func TestRootCmd_InvalidURLFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--url", "ftp://example.com/feed.csv"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_URL")
}

func TestRootCmd_InvalidEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "yaml")
	cmd := newRootCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestExecute_ReportsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "extra argument", args: []string{"extra"}, want: `unknown command "extra"`},
		{name: "unknown flag", args: []string{"--bogus"}, want: "unknown flag: --bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			cmd := newRootCmd()
			cmd.SetErr(&stderr)

			assert.Equal(t, 1, execute(cmd, tt.args))
			assert.Contains(t, stderr.String(), "Error:")
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

// failingFeed serves 500 for every request and returns its URL.
func failingFeed(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/2.5_day.csv"
}

func TestRootCmd_URLFlagOverridesInvalidEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FEED_URL", "ftp://example.com/feed.csv")
	t.Setenv("OUTPUT_PATH", filepath.Join(dir, "earthquakes.png"))
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--url", failingFeed(t)})

	err := cmd.Execute()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "invalid FEED_URL")
	assert.Contains(t, err.Error(), "status 500")
}

func TestRun_WritesMetricsOnFailure(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "earthquakes.png")
	metricsPath := filepath.Join(dir, "quakemap.prom")

	t.Setenv("FEED_URL", failingFeed(t))
	t.Setenv("OUTPUT_PATH", outPath)
	t.Setenv("METRICS_TEXTFILE", metricsPath)
	t.Setenv("LOG_LEVEL", "error")

	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetErr(&stderr)

	require.Equal(t, 1, execute(cmd, []string{}))
	assert.Contains(t, stderr.String(), "fetch feed")

	_, err := os.Stat(outPath)
	assert.True(t, os.IsNotExist(err), "no image is written for a failed run")

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\nquakemap_last_success_timestamp_seconds 0\n")
	assert.Contains(t, string(data), "\nquakemap_feed_rows_total 0\n")
}

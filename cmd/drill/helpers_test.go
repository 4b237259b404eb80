package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/supplier-drilldown/internal/config"
)

func queryCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addQueryFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestQueryFromFlags(t *testing.T) {
	cmd := queryCommand(t,
		"--location", "Dhaka",
		"--category", "1,2",
		"--from", "2024-01-01",
		"--to", "2024-03-31",
		"--as-of", "2024-03-20",
		"--json",
	)

	criteria, asOf, err := queryFromFlags(cmd, config.Default())
	require.NoError(t, err)

	assert.Equal(t, []string{"Dhaka"}, criteria.Locations)
	assert.Equal(t, []string{"1", "2"}, criteria.Categories)
	require.NotNil(t, criteria.DateRange)
	assert.Equal(t, 2024, asOf.Year())
	assert.Equal(t, time.March, asOf.Month())
	assert.True(t, wantJSON(cmd))
}

func TestQueryFromFlags_ConfiguredAsOf(t *testing.T) {
	cfg := config.Default()
	cfg.Trend.AsOf = "2023-12-31"

	_, asOf, err := queryFromFlags(queryCommand(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), asOf)
}

func TestQueryFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "inverted range", args: []string{"--from", "2024-03-01", "--to", "2024-01-01"}},
		{name: "half range", args: []string{"--to", "2024-01-01"}},
		{name: "bad as-of", args: []string{"--as-of", "tomorrow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queryFromFlags(queryCommand(t, tt.args...), config.Default())
			assert.Error(t, err)
		})
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill", "config.yaml")

	cmd := configInitCmd()
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "sa-vs-calibration")

	again := configInitCmd()
	again.SetArgs([]string{path})
	again.SetErr(&bytes.Buffer{})
	assert.Error(t, again.Execute(), "refuses to overwrite without --force")

	forced := configInitCmd()
	forced.SetArgs([]string{path, "--force"})
	assert.NoError(t, forced.Execute())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

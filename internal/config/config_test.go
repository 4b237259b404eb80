package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/source"
	"github.com/Veraticus/supplier-drilldown/internal/storage"
	"github.com/Veraticus/supplier-drilldown/internal/view"
)

func loadYAML(t *testing.T, doc string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(doc)))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, SourceJSON, cfg.Source)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "records.json", cfg.Data.Records)
	assert.Len(t, cfg.Views, len(view.DefaultConfigs()))
}

func TestLoad_FromYAML(t *testing.T) {
	cfg, err := loadYAML(t, `
source: sqlite
database:
  path: /tmp/drill.db
trend:
  as_of: "2024-03-20"
views:
  - name: nc
    kind: buckets
    submission_field: supplierActions
    multiplicity: per_record
    prefilter:
      path: auditorAssignmentSubmission.type
      equals: "2"
    buckets:
      - label: Major
        type: 3
        subtype: 1
      - label: Any NC
        type: 3
`)
	require.NoError(t, err)

	assert.Equal(t, SourceSQLite, cfg.Source)
	assert.Equal(t, "/tmp/drill.db", cfg.DatabasePath())
	require.Len(t, cfg.Views, 1)

	v := cfg.Views[0]
	assert.Equal(t, view.KindBuckets, v.Kind)
	assert.Equal(t, "per_record", string(v.Multiplicity))
	assert.Equal(t, "2", v.Prefilter.Equals)
	require.Len(t, v.Buckets, 2)
	require.NotNil(t, v.Buckets[0].Subtype)
	assert.Equal(t, 1, *v.Buckets[0].Subtype)
	assert.Nil(t, v.Buckets[1].Subtype)

	asOf, err := cfg.AsOf(time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), asOf)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown source", doc: "source: sheets\n"},
		{name: "bad log level", doc: "logging:\n  level: loud\n"},
		{name: "bad as_of", doc: "trend:\n  as_of: March\n"},
		{name: "bad view", doc: "views:\n  - name: x\n    kind: pie\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.doc)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestBindEnv(t *testing.T) {
	t.Setenv("DRILL_SERVER_ADDR", ":9999")
	t.Setenv("DRILL_SOURCE", "sqlite")

	v := viper.New()
	BindEnv(v)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, SourceSQLite, cfg.Source)
}

func TestDefaultYAML_RoundTrips(t *testing.T) {
	data, err := DefaultYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "open-non-compliance")

	cfg, err := loadYAML(t, string(data))
	require.NoError(t, err)

	want := view.DefaultConfigs()
	require.Len(t, cfg.Views, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, cfg.Views[i].Name)
		assert.Equal(t, want[i].Kind, cfg.Views[i].Kind)
		assert.Equal(t, want[i].Buckets, cfg.Views[i].Buckets)
		assert.Equal(t, want[i].Metrics, cfg.Views[i].Metrics)
	}
}

func TestAsOf_DefaultsToNow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	got, err := (&Config{}).AsOf(now)
	require.NoError(t, err)
	assert.Equal(t, now, got)
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DRILL_TEST_DIR", "/data")

	tests := []struct {
		name string
		dir  string
		path string
		want string
	}{
		{name: "relative", dir: "/srv", path: "records.json", want: "/srv/records.json"},
		{name: "absolute", dir: "/srv", path: "/tmp/r.json", want: "/tmp/r.json"},
		{name: "empty", dir: "/srv", path: "", want: ""},
		{name: "env dir", dir: "$DRILL_TEST_DIR", path: "r.json", want: "/data/r.json"},
		{name: "home", dir: "", path: "~/r.json", want: filepath.Join(home, "r.json")},
		{name: "bare home", dir: "/srv", path: "~", want: home},
		{name: "home dir", dir: "~/data", path: "r.json", want: filepath.Join(home, "data", "r.json")},
		{name: "env path", dir: "/srv", path: "${DRILL_TEST_DIR}/r.json", want: "/data/r.json"},
		{name: "tilde mid path", dir: "", path: "a/~/r.json", want: "a/~/r.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.dir, tt.path))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DRILL_TEST_DB", "drill.db")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "drill.db"), ExpandPath("~/$DRILL_TEST_DB"))
	assert.Equal(t, "relative/drill.db", ExpandPath("relative/$DRILL_TEST_DB"))
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Data.Dir = "/srv/data"
	src, closer, err := cfg.OpenSource(ctx)
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	js, ok := src.(source.JSONSource)
	require.True(t, ok)
	assert.Equal(t, "/srv/data/records.json", js.RecordsPath)

	cfg.Source = SourceSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "drill.db")
	src, closer, err = cfg.OpenSource(ctx)
	require.NoError(t, err)
	defer closer.Close()
	_, ok = src.(*storage.SQLiteStore)
	assert.True(t, ok)
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/supplier-drilldown/internal/testutil"
	"github.com/Veraticus/supplier-drilldown/internal/view"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	snap := testutil.SampleSnapshot()
	dash, err := view.NewDashboard(view.DefaultConfigs(), view.NewDataset(snap.Records, snap.Categories, snap.Performance))
	require.NoError(t, err)

	ts := httptest.NewServer(New(dash, testutil.SampleAsOf).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type seriesBody struct {
	Name      string   `json:"name"`
	Direction string   `json:"direction"`
	Labels    []string `json:"labels"`
	Series    []struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	} `json:"series"`
	Filtered     int     `json:"filtered"`
	TrendPercent float64 `json:"trend_percent"`
}

func (b seriesBody) value(label string) float64 {
	for _, p := range b.Series {
		if p.Label == label {
			return p.Value
		}
	}
	return -1
}

type drilldownBody struct {
	Label   string           `json:"label"`
	Count   int              `json:"count"`
	Records []map[string]any `json:"records"`
	Joined  []map[string]any `json:"joined"`
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, ts, "/healthz", &body))
	assert.Equal(t, "ok", body["status"])
	assert.InDelta(t, 5, body["records"], 0.0001)
}

func TestListViews(t *testing.T) {
	ts := newTestServer(t)

	var body []map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, ts, "/views", &body))
	require.Len(t, body, len(view.DefaultConfigs()))
	assert.Equal(t, view.ViewAudits, body[0]["name"])
}

func TestFacets(t *testing.T) {
	ts := newTestServer(t)

	var body map[string][]string
	require.Equal(t, http.StatusOK, getJSON(t, ts, "/facets", &body))
	assert.Equal(t, []string{"Dhaka", "Chennai", "Lahore"}, body["locations"])
}

func TestGetView(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		want   map[string]float64
		name   string
		path   string
		status int
	}{
		{
			name:   "audits",
			path:   "/views/audits",
			status: http.StatusOK,
			want:   map[string]float64{"Audits Scheduled": 2, "Audits Completed": 1, "Audits Released": 2},
		},
		{
			name:   "location filter",
			path:   "/views/audits?location=Dhaka",
			status: http.StatusOK,
			want:   map[string]float64{"Audits Scheduled": 1, "Audits Completed": 0, "Audits Released": 2},
		},
		{
			name:   "date range",
			path:   "/views/audits?from=2024-03-01&to=2024-03-31",
			status: http.StatusOK,
			want:   map[string]float64{"Audits Scheduled": 1, "Audits Released": 1},
		},
		{
			name:   "esg",
			path:   "/views/esg",
			status: http.StatusOK,
			want:   map[string]float64{"Environmental": 15.5, "Social": 7, "Governance": 4},
		},
		{
			name:   "unknown view",
			path:   "/views/nope",
			status: http.StatusNotFound,
		},
		{
			name:   "half a date range",
			path:   "/views/audits?from=2024-03-01",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad as_of",
			path:   "/views/open-non-compliance?as_of=soon",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body seriesBody
			require.Equal(t, tt.status, getJSON(t, ts, tt.path, &body))
			for label, want := range tt.want {
				assert.InDelta(t, want, body.value(label), 0.0001, label)
			}
		})
	}
}

func TestGetView_TrendAsOf(t *testing.T) {
	ts := newTestServer(t)

	var body seriesBody
	require.Equal(t, http.StatusOK, getJSON(t, ts, "/views/open-non-compliance", &body))
	assert.InDelta(t, 100, body.TrendPercent, 0.0001)
	assert.Equal(t, "up", body.Direction)

	var earlier seriesBody
	require.Equal(t, http.StatusOK, getJSON(t, ts, "/views/open-non-compliance?as_of=2024-02-15", &earlier))
	assert.Zero(t, earlier.TrendPercent)
	assert.Equal(t, "flat", earlier.Direction)
}

func TestGetDrilldown(t *testing.T) {
	ts := newTestServer(t)

	t.Run("bucket", func(t *testing.T) {
		var body drilldownBody
		require.Equal(t, http.StatusOK, getJSON(t, ts, "/views/observations/drilldown/Regulatory%20Major%20NC", &body))
		assert.Equal(t, "Regulatory Major NC", body.Label)
		require.Len(t, body.Records, 1)
		assert.Equal(t, "a1", body.Records[0]["id"])
	})

	t.Run("msi cell with escaped slash", func(t *testing.T) {
		var body drilldownBody
		require.Equal(t, http.StatusOK, getJSON(t, ts, "/views/msi-rating/drilldown/Needs%20Improvement%2FPending", &body))
		assert.Equal(t, 2, body.Count)
		assert.Len(t, body.Joined, 2)
	})

	t.Run("filtered", func(t *testing.T) {
		var body drilldownBody
		require.Equal(t, http.StatusOK, getJSON(t, ts, "/views/audits/drilldown/Audits%20Scheduled?location=Lahore", &body))
		assert.Equal(t, 1, body.Count)
	})

	t.Run("unknown label", func(t *testing.T) {
		var body map[string]string
		require.Equal(t, http.StatusNotFound, getJSON(t, ts, "/views/audits/drilldown/Nope", &body))
		assert.Contains(t, body["error"], "Nope")
	})
}

func TestGetDashboard(t *testing.T) {
	ts := newTestServer(t)

	var body []seriesBody
	require.Equal(t, http.StatusOK, getJSON(t, ts, "/dashboard?category=1", &body))
	require.Len(t, body, len(view.DefaultConfigs()))
	for i, name := range []string{view.ViewAudits, view.ViewSelfAssessment, view.ViewObservations} {
		assert.Equal(t, name, body[i].Name)
	}
	assert.Equal(t, 2, body[0].Filtered)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	snap := testutil.SampleSnapshot()
	dash, err := view.NewDashboard(view.DefaultConfigs(), view.NewDataset(snap.Records, snap.Categories, snap.Performance))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(dash, time.Time{}).ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/testutil"
)

func TestDashboard_ComputeAll(t *testing.T) {
	d, err := NewDashboard(DefaultConfigs(), sampleDataset())
	require.NoError(t, err)

	results, err := d.ComputeAll(context.Background(), model.FilterCriteria{}, testutil.SampleAsOf)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultConfigs()))

	for i, name := range d.Names() {
		assert.Equal(t, name, results[i].Name)

		single, err := d.Compute(name, model.FilterCriteria{}, testutil.SampleAsOf)
		require.NoError(t, err)
		assert.Equal(t, single.Series, results[i].Series, name)
	}
}

func TestDashboard_ComputeAllPropagatesErrors(t *testing.T) {
	d, err := NewDashboard(DefaultConfigs(), sampleDataset())
	require.NoError(t, err)

	criteria := model.FilterCriteria{DateRange: dateRange("2024-05-01", "2024-04-01")}
	_, err = d.ComputeAll(context.Background(), criteria, testutil.SampleAsOf)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDashboard_ComputeAllCanceled(t *testing.T) {
	d, err := NewDashboard(DefaultConfigs(), sampleDataset())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.ComputeAll(ctx, model.FilterCriteria{}, testutil.SampleAsOf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboard_UnknownView(t *testing.T) {
	d, err := NewDashboard(DefaultConfigs(), sampleDataset())
	require.NoError(t, err)

	_, err = d.Compute("nope", model.FilterCriteria{}, testutil.SampleAsOf)
	assert.ErrorIs(t, err, common.ErrUnknownView)
	assert.True(t, common.IsNotFound(err))
}

func TestNewDashboard_RejectsInvalidConfigs(t *testing.T) {
	_, err := NewDashboard([]Config{{Name: "x", Kind: "nope"}}, sampleDataset())
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

package engine

import (
	"testing"

	"cacscope/domain/metrics"
	"cacscope/domain/series"
	"cacscope/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quarterlySeries(t *testing.T) series.Series {
	t.Helper()
	s, err := series.New(
		series.Observation{Period: "Q1 2024", Value: 225.60},
		series.Observation{Period: "Q2 2024", Value: 228.97},
		series.Observation{Period: "Q3 2024", Value: 234.24},
		series.Observation{Period: "Q4 2024", Value: 234.71},
	)
	require.NoError(t, err)
	return s
}

func TestComputeSummary_QuarterlyScenario(t *testing.T) {
	e := New()

	summary, err := e.ComputeSummary(quarterlySeries(t))
	require.NoError(t, err)

	assert.InDelta(t, 230.88, summary.Mean, 1e-9)
	assert.InDelta(t, 231.605, summary.Median, 1e-9)
	assert.InDelta(t, 3.7909, summary.StdDev, 5e-4)
	assert.InDelta(t, 1.6420, summary.CoefficientOfVariation, 5e-4)
	assert.InDelta(t, 225.60, summary.Min, 1e-9)
	assert.InDelta(t, 234.71, summary.Max, 1e-9)
	assert.InDelta(t, 9.11, summary.Range, 1e-9)
	assert.Equal(t, 4, summary.SampleSize)
}

func TestComputeSummary_OddCountMedian(t *testing.T) {
	s, err := series.New(
		series.Observation{Period: "P1", Value: 30},
		series.Observation{Period: "P2", Value: 10},
		series.Observation{Period: "P3", Value: 20},
	)
	require.NoError(t, err)

	summary, err := New().ComputeSummary(s)
	require.NoError(t, err)
	assert.InDelta(t, 20, summary.Median, 1e-9)
}

func TestComputeSummary_EmptySeries(t *testing.T) {
	s, err := series.New()
	require.NoError(t, err)

	_, err = New().ComputeSummary(s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmptySeries, errors.GetCode(err))
}

func TestComputeSummary_ZeroMeanFailsCoefficientOfVariation(t *testing.T) {
	s, err := series.New(
		series.Observation{Period: "P1", Value: 0},
		series.Observation{Period: "P2", Value: 0},
	)
	require.NoError(t, err)

	_, err = New().ComputeSummary(s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeDivisionByZero, errors.GetCode(err))
}

func TestComputeSummary_Properties(t *testing.T) {
	cases := []series.Series{
		quarterlySeries(t),
		series.MustNew(series.Observation{Period: "P1", Value: 42.5}),
		series.MustNew(
			series.Observation{Period: "P1", Value: 100},
			series.Observation{Period: "P2", Value: 100},
			series.Observation{Period: "P3", Value: 100},
		),
		series.MustNew(
			series.Observation{Period: "P1", Value: 5},
			series.Observation{Period: "P2", Value: 500},
		),
	}

	for _, s := range cases {
		summary, err := New().ComputeSummary(s)
		require.NoError(t, err)

		assert.LessOrEqual(t, summary.Min, summary.Median)
		assert.LessOrEqual(t, summary.Median, summary.Max)
		assert.LessOrEqual(t, summary.Min, summary.Mean)
		assert.LessOrEqual(t, summary.Mean, summary.Max)
		assert.GreaterOrEqual(t, summary.StdDev, 0.0)
	}
}

func TestComputeSummary_ZeroStdDevOnlyForIdenticalValues(t *testing.T) {
	identical := series.MustNew(
		series.Observation{Period: "P1", Value: 7},
		series.Observation{Period: "P2", Value: 7},
		series.Observation{Period: "P3", Value: 7},
	)
	summary, err := New().ComputeSummary(identical)
	require.NoError(t, err)
	assert.Zero(t, summary.StdDev)

	varied, err := New().ComputeSummary(quarterlySeries(t))
	require.NoError(t, err)
	assert.Greater(t, varied.StdDev, 0.0)
}

func TestComputeSummary_Idempotent(t *testing.T) {
	s := quarterlySeries(t)
	e := New()

	first, err := e.ComputeSummary(s)
	require.NoError(t, err)
	second, err := e.ComputeSummary(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeTrend_QuarterlyScenario(t *testing.T) {
	trend, err := New().ComputeTrend(quarterlySeries(t))
	require.NoError(t, err)

	require.Len(t, trend.Steps, 3)
	assert.InDelta(t, 1.4938, trend.Steps[0].GrowthPct, 5e-4)
	assert.InDelta(t, 2.3016, trend.Steps[1].GrowthPct, 5e-4)
	assert.InDelta(t, 0.2006, trend.Steps[2].GrowthPct, 5e-4)
	assert.Equal(t, "Q1 2024", trend.Steps[0].FromPeriod)
	assert.Equal(t, "Q2 2024", trend.Steps[0].ToPeriod)

	assert.Equal(t, metrics.DirectionIncreasing, trend.OverallDirection)

	require.Len(t, trend.Pace, 2)
	assert.Equal(t, metrics.PaceAccelerating, trend.Pace[0].Label)
	assert.Equal(t, "Q3 2024", trend.Pace[0].Period)
	assert.Equal(t, metrics.PaceDecelerating, trend.Pace[1].Label)
	assert.Equal(t, "Q4 2024", trend.Pace[1].Period)
}

func TestComputeTrend_SingleObservation(t *testing.T) {
	s := series.MustNew(series.Observation{Period: "P1", Value: 10})

	_, err := New().ComputeTrend(s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
}

func TestComputeTrend_EmptySeries(t *testing.T) {
	s, err := series.New()
	require.NoError(t, err)

	_, err = New().ComputeTrend(s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
}

func TestComputeTrend_ZeroPriorPeriodFailsWholeOperation(t *testing.T) {
	s := series.MustNew(
		series.Observation{Period: "P1", Value: 10},
		series.Observation{Period: "P2", Value: 0},
		series.Observation{Period: "P3", Value: 20},
	)

	trend, err := New().ComputeTrend(s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeDivisionByZero, errors.GetCode(err))
	// no partial record on failure
	assert.Empty(t, trend.Steps)
}

func TestComputeTrend_TwoObservationsOmitPace(t *testing.T) {
	s := series.MustNew(
		series.Observation{Period: "P1", Value: 10},
		series.Observation{Period: "P2", Value: 12},
	)

	trend, err := New().ComputeTrend(s)
	require.NoError(t, err)
	require.Len(t, trend.Steps, 1)
	assert.Nil(t, trend.Pace)
}

func TestComputeTrend_FlatSeries(t *testing.T) {
	s := series.MustNew(
		series.Observation{Period: "P1", Value: 50},
		series.Observation{Period: "P2", Value: 50},
		series.Observation{Period: "P3", Value: 50},
	)

	trend, err := New().ComputeTrend(s)
	require.NoError(t, err)
	assert.Equal(t, metrics.DirectionFlat, trend.OverallDirection)
	require.Len(t, trend.Pace, 1)
	assert.Equal(t, metrics.PaceSteady, trend.Pace[0].Label)
}

func TestComputeTrend_DecreasingSeries(t *testing.T) {
	s := series.MustNew(
		series.Observation{Period: "P1", Value: 100},
		series.Observation{Period: "P2", Value: 80},
	)

	trend, err := New().ComputeTrend(s)
	require.NoError(t, err)
	assert.Equal(t, metrics.DirectionDecreasing, trend.OverallDirection)
	assert.InDelta(t, -20, trend.Steps[0].GrowthPct, 1e-9)
}

func TestComputeTargetComparison_QuarterlyScenario(t *testing.T) {
	comparison, err := New().ComputeTargetComparison(quarterlySeries(t), 150.00)
	require.NoError(t, err)

	assert.InDelta(t, 150.00, comparison.Target, 1e-9)
	assert.InDelta(t, 230.88, comparison.MeanValue, 1e-9)
	assert.InDelta(t, 80.88, comparison.MeanGap, 1e-9)
	assert.InDelta(t, 53.92, comparison.MeanPctAboveTarget, 1e-2)

	require.Len(t, comparison.Periods, 4)
	assert.InDelta(t, 75.60, comparison.Periods[0].Gap, 1e-9)
	assert.InDelta(t, 50.40, comparison.Periods[0].PctAboveTarget, 1e-2)
	assert.Equal(t, "Q1 2024", comparison.Periods[0].Period)
}

func TestComputeTargetComparison_InvalidTarget(t *testing.T) {
	s := quarterlySeries(t)

	for _, target := range []float64{0, -150} {
		_, err := New().ComputeTargetComparison(s, target)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidTarget, errors.GetCode(err))
	}
}

func TestComputeTargetComparison_EmptySeries(t *testing.T) {
	s, err := series.New()
	require.NoError(t, err)

	_, err = New().ComputeTargetComparison(s, 150)
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmptySeries, errors.GetCode(err))
}

package engine

import (
	"fmt"

	"cacscope/domain/metrics"
	"cacscope/domain/series"
	"cacscope/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Engine derives summary, trend and target-gap records from an ordered
// observation series. It holds no state; every method is a pure function
// of its input and is safe to invoke from concurrent callers.
type Engine struct{}

// New creates a new engine
func New() *Engine {
	return &Engine{}
}

// ComputeSummary computes the descriptive statistics for a non-empty series.
// The standard deviation is the population form (divide by N).
func (e *Engine) ComputeSummary(s series.Series) (metrics.Summary, error) {
	if s.Len() == 0 {
		return metrics.Summary{}, errors.EmptySeries()
	}

	values := s.Values()

	mean := stat.Mean(values, nil)
	stdDev := stat.PopStdDev(values, nil)

	median, err := stats.Median(values)
	if err != nil {
		return metrics.Summary{}, errors.Wrap(err, "median computation failed")
	}
	minVal, err := stats.Min(values)
	if err != nil {
		return metrics.Summary{}, errors.Wrap(err, "min computation failed")
	}
	maxVal, err := stats.Max(values)
	if err != nil {
		return metrics.Summary{}, errors.Wrap(err, "max computation failed")
	}

	if mean == 0 {
		return metrics.Summary{}, errors.DivisionByZero("coefficient of variation is undefined for a zero mean")
	}

	return metrics.Summary{
		Mean:                   mean,
		Median:                 median,
		StdDev:                 stdDev,
		CoefficientOfVariation: stdDev / mean * 100,
		Min:                    minVal,
		Max:                    maxVal,
		Range:                  maxVal - minVal,
		SampleSize:             s.Len(),
	}, nil
}

// ComputeTrend computes period-over-period growth for a series of at least
// two observations. A zero prior-period value fails the whole operation
// with DIVISION_BY_ZERO - no partial record is returned. Pace labels are
// only present for series of three or more observations.
func (e *Engine) ComputeTrend(s series.Series) (metrics.Trend, error) {
	if s.Len() < 2 {
		return metrics.Trend{}, errors.InsufficientData(s.Len())
	}

	observations := s.Observations()
	steps := make([]metrics.GrowthStep, 0, len(observations)-1)
	for i := 1; i < len(observations); i++ {
		prev, curr := observations[i-1], observations[i]
		if prev.Value == 0 {
			return metrics.Trend{}, errors.DivisionByZero(
				fmt.Sprintf("growth from %q is undefined: prior-period value is zero", prev.Period))
		}
		steps = append(steps, metrics.GrowthStep{
			FromPeriod: prev.Period,
			ToPeriod:   curr.Period,
			GrowthPct:  (curr.Value - prev.Value) / prev.Value * 100,
		})
	}

	trend := metrics.Trend{
		Steps:            steps,
		OverallDirection: direction(observations[0].Value, observations[len(observations)-1].Value),
	}

	if len(steps) >= 2 {
		pace := make([]metrics.PaceStep, 0, len(steps)-1)
		for i := 1; i < len(steps); i++ {
			delta := steps[i].GrowthPct - steps[i-1].GrowthPct
			pace = append(pace, metrics.PaceStep{
				Period:   steps[i].ToPeriod,
				Label:    paceLabel(delta),
				DeltaPct: delta,
			})
		}
		trend.Pace = pace
	}

	return trend, nil
}

// ComputeTargetComparison compares every observation, and the series mean,
// against a positive target value.
func (e *Engine) ComputeTargetComparison(s series.Series, target float64) (metrics.TargetComparison, error) {
	if target <= 0 {
		return metrics.TargetComparison{}, errors.InvalidTarget(target)
	}
	if s.Len() == 0 {
		return metrics.TargetComparison{}, errors.EmptySeries()
	}

	observations := s.Observations()
	periods := make([]metrics.PeriodGap, len(observations))
	for i, obs := range observations {
		gap := obs.Value - target
		periods[i] = metrics.PeriodGap{
			Period:         obs.Period,
			Value:          obs.Value,
			Gap:            gap,
			PctAboveTarget: gap / target * 100,
		}
	}

	mean := stat.Mean(s.Values(), nil)
	meanGap := mean - target

	return metrics.TargetComparison{
		Target:             target,
		MeanValue:          mean,
		MeanGap:            meanGap,
		MeanPctAboveTarget: meanGap / target * 100,
		Periods:            periods,
	}, nil
}

func direction(first, last float64) metrics.Direction {
	switch {
	case last > first:
		return metrics.DirectionIncreasing
	case last < first:
		return metrics.DirectionDecreasing
	default:
		return metrics.DirectionFlat
	}
}

func paceLabel(delta float64) metrics.PaceLabel {
	switch {
	case delta > 0:
		return metrics.PaceAccelerating
	case delta < 0:
		return metrics.PaceDecelerating
	default:
		return metrics.PaceSteady
	}
}

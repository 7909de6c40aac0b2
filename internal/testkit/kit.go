package testkit

import (
	"cacscope/domain/series"
)

// Kit provides the canonical fiscal-2024 quarterly CAC fixture consumed
// by the CLI, the web servers and the tests.
type Kit struct {
	series series.Series
	target float64
}

// New creates a kit holding the 2024 quarterly dataset and the industry
// benchmark target.
func New() (*Kit, error) {
	s, err := series.New(
		series.Observation{Period: "Q1 2024", Value: 225.60},
		series.Observation{Period: "Q2 2024", Value: 228.97},
		series.Observation{Period: "Q3 2024", Value: 234.24},
		series.Observation{Period: "Q4 2024", Value: 234.71},
	)
	if err != nil {
		return nil, err
	}

	return &Kit{
		series: s,
		target: 150.00,
	}, nil
}

// Series returns the quarterly CAC observation series.
func (k *Kit) Series() series.Series {
	return k.series
}

// Target returns the industry benchmark CAC.
func (k *Kit) Target() float64 {
	return k.target
}

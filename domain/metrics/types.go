package metrics

// ============================================================================
// DERIVED RECORDS (value objects, recomputed on demand, never mutated)
// ============================================================================

// Summary holds the descriptive statistics for one observation series.
// StdDev is the population standard deviation (divide by N): the series
// is the entire observed population for the year, not a sample.
type Summary struct {
	Mean                   float64 `json:"mean"`
	Median                 float64 `json:"median"`
	StdDev                 float64 `json:"std_dev"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"` // StdDev / Mean * 100
	Min                    float64 `json:"min"`
	Max                    float64 `json:"max"`
	Range                  float64 `json:"range"` // Max - Min
	SampleSize             int     `json:"sample_size"`
}

// Direction is the qualitative first-to-last movement of a series.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionFlat       Direction = "flat"
)

// PaceLabel classifies how the period-over-period growth rate itself is
// moving between two consecutive growth steps.
type PaceLabel string

const (
	PaceAccelerating PaceLabel = "accelerating"
	PaceDecelerating PaceLabel = "decelerating"
	PaceSteady       PaceLabel = "steady"
)

// GrowthStep is the percentage change between two chronologically
// adjacent periods.
type GrowthStep struct {
	FromPeriod string  `json:"from_period"`
	ToPeriod   string  `json:"to_period"`
	GrowthPct  float64 `json:"growth_pct"` // (curr - prev) / prev * 100
}

// PaceStep labels one growth-rate transition. Period names the later
// period of the step whose growth rate is being compared to the prior one.
type PaceStep struct {
	Period   string    `json:"period"`
	Label    PaceLabel `json:"label"`
	DeltaPct float64   `json:"delta_pct"` // growth_pct[i] - growth_pct[i-1]
}

// Trend captures period-over-period growth plus derived direction and
// pace labels. Pace is omitted entirely for series shorter than three
// observations - it is not computed, not defaulted.
type Trend struct {
	Steps            []GrowthStep `json:"steps"`
	OverallDirection Direction    `json:"overall_direction"`
	Pace             []PaceStep   `json:"pace,omitempty"`
}

// PeriodGap is the gap to target for a single observation.
type PeriodGap struct {
	Period         string  `json:"period"`
	Value          float64 `json:"value"`
	Gap            float64 `json:"gap"`              // value - target
	PctAboveTarget float64 `json:"pct_above_target"` // gap / target * 100
}

// TargetComparison combines a target value with per-period and
// aggregate (mean-based) gap figures.
type TargetComparison struct {
	Target             float64     `json:"target"`
	MeanValue          float64     `json:"mean_value"`
	MeanGap            float64     `json:"mean_gap"`
	MeanPctAboveTarget float64     `json:"mean_pct_above_target"`
	Periods            []PeriodGap `json:"periods"`
}

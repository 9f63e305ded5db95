package simulation

const (
	// TrendUp and friends are the three classification labels.
	TrendUp       = "uptrend"
	TrendDown     = "downtrend"
	TrendSideways = "sideways"

	upBaselineThreshold   = 0.15
	downBaselineThreshold = -0.10
	upMoMThreshold        = 0.10
	downMoMThreshold      = -0.10
)

// TrendResult is the outcome of classifying one month of sales.
type TrendResult struct {
	Label            string
	GrowthVsBaseline float64
	// MoMGrowth is nil when there is no usable previous month. Absent and
	// zero are distinguishable in emitted records.
	MoMGrowth  *float64
	TrendScore float64
}

// ClassifyTrend is the single trend rule shared by the online engine signal
// and the offline aggregation, so the two pipelines can never diverge.
// prevSales is nil when no previous month exists; a previous month of zero
// sales also yields an undefined month-over-month growth.
func ClassifyTrend(sales, baseline float64, prevSales *float64) TrendResult {
	var growthVsBaseline float64
	if baseline > 0 {
		growthVsBaseline = (sales - baseline) / baseline
	}

	var momGrowth *float64
	if prevSales != nil && *prevSales > 0 {
		g := (sales - *prevSales) / *prevSales
		momGrowth = &g
	}

	mom := 0.0
	if momGrowth != nil {
		mom = *momGrowth
	}

	up := growthVsBaseline >= upBaselineThreshold || mom >= upMoMThreshold
	down := growthVsBaseline <= downBaselineThreshold || mom <= downMoMThreshold

	label := TrendSideways
	switch {
	case up && !down:
		label = TrendUp
	case down && !up:
		label = TrendDown
	}

	return TrendResult{
		Label:            label,
		GrowthVsBaseline: growthVsBaseline,
		MoMGrowth:        momGrowth,
		TrendScore:       0.7*growthVsBaseline + 0.3*mom,
	}
}

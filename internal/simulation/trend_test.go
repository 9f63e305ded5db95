package simulation

import (
	"math"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func TestClassifyTrend_UpOnBaselineGrowth(t *testing.T) {
	res := ClassifyTrend(120, 100, nil)
	if res.Label != TrendUp {
		t.Errorf("expected uptrend, got %s", res.Label)
	}
	if math.Abs(res.GrowthVsBaseline-0.20) > 1e-9 {
		t.Errorf("expected growth 0.20, got %v", res.GrowthVsBaseline)
	}
	if res.MoMGrowth != nil {
		t.Errorf("expected undefined MoM growth, got %v", *res.MoMGrowth)
	}
}

func TestClassifyTrend_DownOnBaselineDrop(t *testing.T) {
	res := ClassifyTrend(85, 100, nil)
	if res.Label != TrendDown {
		t.Errorf("expected downtrend, got %s", res.Label)
	}
}

func TestClassifyTrend_SidewaysOnSmallMoM(t *testing.T) {
	// sales == baseline, MoM +2%: neither threshold reached
	prev := 100.0 / 1.02
	res := ClassifyTrend(100, 100, &prev)
	if res.Label != TrendSideways {
		t.Errorf("expected sideways, got %s", res.Label)
	}
}

func TestClassifyTrend_MoMAloneTriggersUp(t *testing.T) {
	res := ClassifyTrend(110, 110, fptr(100)) // MoM +10%, baseline flat
	if res.Label != TrendUp {
		t.Errorf("expected uptrend on MoM signal, got %s", res.Label)
	}
}

func TestClassifyTrend_ConflictingSignalsResolveSideways(t *testing.T) {
	// Baseline growth says up (+20%), MoM says down (-20%)
	res := ClassifyTrend(120, 100, fptr(150))
	if res.Label != TrendSideways {
		t.Errorf("expected sideways on conflicting signals, got %s", res.Label)
	}
}

func TestClassifyTrend_ZeroBaseline(t *testing.T) {
	res := ClassifyTrend(50, 0, nil)
	if res.GrowthVsBaseline != 0 {
		t.Errorf("expected zero growth for zero baseline, got %v", res.GrowthVsBaseline)
	}
	if res.Label != TrendSideways {
		t.Errorf("expected sideways, got %s", res.Label)
	}
}

func TestClassifyTrend_ZeroPrevSalesIsUndefinedMoM(t *testing.T) {
	res := ClassifyTrend(100, 100, fptr(0))
	if res.MoMGrowth != nil {
		t.Errorf("expected undefined MoM for zero previous sales, got %v", *res.MoMGrowth)
	}
}

func TestClassifyTrend_Score(t *testing.T) {
	res := ClassifyTrend(120, 100, fptr(100)) // growth 0.2, mom 0.2
	want := 0.7*0.2 + 0.3*0.2
	if math.Abs(res.TrendScore-want) > 1e-9 {
		t.Errorf("expected score %v, got %v", want, res.TrendScore)
	}

	// Undefined MoM contributes 0 to the score
	res = ClassifyTrend(120, 100, nil)
	want = 0.7 * 0.2
	if math.Abs(res.TrendScore-want) > 1e-9 {
		t.Errorf("expected score %v, got %v", want, res.TrendScore)
	}
}

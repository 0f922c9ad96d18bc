package plan

import (
	"math"
	"testing"

	"github.com/kilianp07/heatplan/core/model"
	"github.com/kilianp07/heatplan/core/thermal"
)

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func newTestPlanner(t *testing.T, c model.Coefficients) *Planner {
	t.Helper()
	p, err := New(c, Config{})
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	return p
}

func flatForecast(n int) model.Forecast {
	return model.Forecast{
		Demand:      constant(1, n),
		Price:       constant(0.25, n),
		OutdoorTemp: constant(10, n),
	}
}

func TestPlanner_RejectsInvalidCoefficients(t *testing.T) {
	c := testCoefficients()
	c.OutdoorMax = c.OutdoorMin
	if _, err := New(c, Config{}); err == nil {
		t.Fatal("expected configuration error for degenerate outdoor range")
	} else if _, ok := err.(*model.ConfigurationError); !ok {
		t.Fatalf("expected *model.ConfigurationError, got %T", err)
	}
}

func TestPlanner_EmptyForecast(t *testing.T) {
	p := newTestPlanner(t, testCoefficients())
	res := p.Plan(model.Forecast{}, 0)
	if len(res.Offsets) != 0 || len(res.Buffer) != 0 {
		t.Fatalf("expected empty plan, got %v / %v", res.Offsets, res.Buffer)
	}
	if res.Fallback {
		t.Fatal("empty plan is not a fallback")
	}
}

func TestPlanner_MismatchedVectors(t *testing.T) {
	p := newTestPlanner(t, testCoefficients())
	// Horizon is the shorter of demand and price.
	res := p.Plan(model.Forecast{Demand: constant(1, 8), Price: constant(0.2, 5)}, 0)
	if len(res.Offsets) != 5 || len(res.Buffer) != 5 {
		t.Fatalf("expected horizon 5, got %d offsets", len(res.Offsets))
	}
}

func TestPlanner_Deterministic(t *testing.T) {
	p := newTestPlanner(t, testCoefficients())
	f := model.Forecast{
		Demand:      []float64{1, 2, 1, 0.5, 1, 2},
		Price:       []float64{0.1, 0.3, 0.2, 0.4, 0.1, 0.2},
		OutdoorTemp: []float64{5, 4, 3, 2, 1, 0},
		Humidity:    []float64{80, 85, 90},
	}
	first, err := p.PlanStrict(f, 0.2)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for i := 0; i < 10; i++ {
		res, err := p.PlanStrict(f, 0.2)
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		for s := range first.Offsets {
			if res.Offsets[s] != first.Offsets[s] {
				t.Fatalf("run %d diverged at step %d: %v vs %v", i, s, res.Offsets, first.Offsets)
			}
		}
		if res.Cost != first.Cost {
			t.Fatalf("run %d cost diverged: %v vs %v", i, res.Cost, first.Cost)
		}
	}
}

func TestPlanner_FeasibilityInvariants(t *testing.T) {
	p := newTestPlanner(t, testCoefficients())
	f := model.Forecast{
		Demand:      []float64{1, 1.5, 2, 1, 0.5, 1, 1, 2},
		Price:       []float64{0.1, 0.2, 0.4, 0.3, 0.1, 0.5, 0.2, 0.1},
		OutdoorTemp: []float64{-2, 0, 2, 4, 6, 8, 10, 12},
		Humidity:    constant(85, 8),
	}
	res := p.Plan(f, 0.5)
	c := p.Coefficients()
	for t2, o := range res.Offsets {
		supply := thermal.BaseSupply(f.OutdoorTemp[t2], c) + float64(o)
		if supply < c.WaterMin || supply > c.WaterMax {
			t.Fatalf("step %d: supply %v outside [%v, %v]", t2, supply, c.WaterMin, c.WaterMax)
		}
		if o < -4 || o > 4 {
			t.Fatalf("step %d: offset %d outside [-4, 4]", t2, o)
		}
		if t2 > 0 {
			if d := o - res.Offsets[t2-1]; d > 1 || d < -1 {
				t.Fatalf("step %d: offset moved by %d", t2, d)
			}
		}
	}
	for t2, b := range res.Buffer {
		if b < -1e-9 {
			t.Fatalf("step %d: buffer went negative: %v", t2, b)
		}
	}
}

func TestPlanner_CostNotWorseThanBaseline(t *testing.T) {
	// Scenario A: flat demand, price and weather.
	p := newTestPlanner(t, testCoefficients())
	res := p.Plan(flatForecast(6), 0)
	if len(res.Offsets) != 6 {
		t.Fatalf("expected horizon 6, got %d", len(res.Offsets))
	}
	if res.Cost > res.BaselineCost+1e-12 {
		t.Fatalf("plan cost %v exceeds zero-offset baseline %v", res.Cost, res.BaselineCost)
	}
}

func TestPlanner_PriceArbitrage(t *testing.T) {
	// Scenario B: cheap edges, expensive middle. The planner should bank
	// buffer early and run below the curve while power is expensive.
	p := newTestPlanner(t, testCoefficients())
	f := model.Forecast{
		Demand:      constant(1, 6),
		Price:       []float64{0.10, 0.15, 0.35, 0.35, 0.15, 0.10},
		OutdoorTemp: constant(10, 6),
	}
	res, err := p.PlanStrict(f, 0)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.Offsets[2]+res.Offsets[3] >= 0 {
		t.Fatalf("expected negative offsets during expensive steps, got %v", res.Offsets)
	}
	if res.Offsets[0]+res.Offsets[1] <= 0 {
		t.Fatalf("expected positive offsets during cheap lead-in, got %v", res.Offsets)
	}
	if res.Cost >= res.BaselineCost {
		t.Fatalf("arbitrage should beat the baseline: %v >= %v", res.Cost, res.BaselineCost)
	}
}

func TestPlanner_DefrostRaisesCost(t *testing.T) {
	// Scenario C: frosting conditions lower the effective COP and raise the
	// cost of the same plan.
	p := newTestPlanner(t, testCoefficients())
	frosty := model.Forecast{
		Demand:      constant(1, 4),
		Price:       constant(0.25, 4),
		OutdoorTemp: constant(2, 4),
		Humidity:    constant(90, 4),
	}
	mild := frosty
	mild.OutdoorTemp = constant(10, 4)

	frostRes := p.Plan(frosty, 0)
	mildRes := p.Plan(mild, 0)
	if frostRes.BaselineCost <= mildRes.BaselineCost {
		t.Fatalf("frosting should cost more: %v <= %v", frostRes.BaselineCost, mildRes.BaselineCost)
	}

	dry := frosty
	dry.Humidity = constant(0, 4)
	dryRes := p.Plan(dry, 0)
	if frostRes.BaselineCost <= dryRes.BaselineCost {
		t.Fatalf("humid frosting should cost more than dry: %v <= %v", frostRes.BaselineCost, dryRes.BaselineCost)
	}
}

func TestPlanner_TightWaterBand(t *testing.T) {
	// Scenario D: a 2 degree water band over a wide outdoor swing leaves no
	// room to move off the curve.
	c := testCoefficients()
	c.WaterMin = 46
	c.WaterMax = 48
	p := newTestPlanner(t, c)
	f := model.Forecast{
		Demand:      constant(1, 4),
		Price:       []float64{0.1, 0.4, 0.4, 0.1},
		OutdoorTemp: []float64{-10, 0, 10, 15},
	}
	res := p.Plan(f, 0)
	for t2, o := range res.Offsets {
		if o != 0 {
			t.Fatalf("step %d: expected zero offset in tight band, got %d", t2, o)
		}
	}
}

func TestPlanner_NegativeStartBufferFallsBack(t *testing.T) {
	// A borrowed buffer cannot be planned: every state violates the
	// non-negativity constraint, so the safe fallback applies.
	p := newTestPlanner(t, testCoefficients())
	if _, err := p.PlanStrict(flatForecast(4), -1); err != ErrInfeasible {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
	res := p.Plan(flatForecast(4), -1)
	if !res.Fallback {
		t.Fatal("expected fallback plan")
	}
	for _, o := range res.Offsets {
		if o != 0 {
			t.Fatalf("fallback must hold the curve, got %v", res.Offsets)
		}
	}
	for _, b := range res.Buffer {
		if b != -1 {
			t.Fatalf("fallback must hold the buffer constant, got %v", res.Buffer)
		}
	}
}

func TestPlanner_StartBufferEnablesDischarge(t *testing.T) {
	// With banked energy and a falling price profile the planner can go
	// negative immediately.
	p := newTestPlanner(t, testCoefficients())
	f := model.Forecast{
		Demand:      constant(2, 4),
		Price:       []float64{0.5, 0.5, 0.05, 0.05},
		OutdoorTemp: constant(10, 4),
	}
	res, err := p.PlanStrict(f, 2)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.Offsets[0] >= 0 {
		t.Fatalf("expected immediate discharge with banked buffer, got %v", res.Offsets)
	}
}

func TestPlanner_BufferTrajectoryMatchesOffsets(t *testing.T) {
	p := newTestPlanner(t, testCoefficients())
	f := model.Forecast{
		Demand:      []float64{1, 2, 1, 1},
		Price:       []float64{0.1, 0.4, 0.2, 0.1},
		OutdoorTemp: constant(8, 4),
	}
	res, err := p.PlanStrict(f, 0.3)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := BufferTrajectory(res.Offsets, f.Demand, 0.3, p.Coefficients())
	for i := range want {
		if math.Abs(res.Buffer[i]-want[i]) > 1e-12 {
			t.Fatalf("buffer mismatch at %d: %v vs %v", i, res.Buffer[i], want[i])
		}
	}
}

func TestPlanner_ExtendsShortWeatherVectors(t *testing.T) {
	p := newTestPlanner(t, testCoefficients())
	f := model.Forecast{
		Demand:      constant(1, 6),
		Price:       constant(0.2, 6),
		OutdoorTemp: []float64{3},
		Humidity:    nil,
	}
	res, err := p.PlanStrict(f, 0)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(res.Offsets) != 6 {
		t.Fatalf("expected horizon 6, got %d", len(res.Offsets))
	}
}

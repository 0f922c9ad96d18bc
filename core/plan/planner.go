// Package plan computes cost-minimal supply temperature offset plans for a
// heat pump over a discrete price and demand forecast. The search is a
// constrained dynamic program over (step, offset, cumulative offset sum)
// states with the thermal buffer as a feasibility constraint.
package plan

import (
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/heatplan/core/model"
	"github.com/kilianp07/heatplan/core/thermal"
)

// ErrInfeasible indicates that no offset plan satisfies the supply
// temperature bounds and buffer constraint over the horizon.
var ErrInfeasible = errors.New("no feasible offset plan")

// bufferTolerance absorbs floating point drift when pruning negative buffer
// states.
const bufferTolerance = 1e-9

// Defaults used when extending short outdoor and humidity vectors.
const (
	defaultOutdoorTemp = 5.0
	defaultHumidity    = 80.0
)

// Planner searches for the cost-minimal feasible offset trajectory. It is
// stateless across calls and safe for concurrent use.
type Planner struct {
	Config
	coeffs model.Coefficients
}

// New returns a Planner for the given installation. The coefficients are
// validated once here so planning itself cannot fail on configuration.
func New(coeffs model.Coefficients, cfg Config) (*Planner, error) {
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Planner{Config: cfg, coeffs: coeffs}, nil
}

// Coefficients returns the installation coefficients the planner was built
// with.
func (p *Planner) Coefficients() model.Coefficients { return p.coeffs }

// Plan computes the offset trajectory for the forecast, starting from the
// given buffer level. On infeasibility it falls back to all-zero offsets
// with the buffer held constant; it never returns an error.
func (p *Planner) Plan(f model.Forecast, startBuffer float64) Result {
	res, err := p.PlanStrict(f, startBuffer)
	if err != nil {
		return p.zeroPlan(f, startBuffer)
	}
	return res
}

// PlanStrict computes the offset trajectory and returns ErrInfeasible
// instead of falling back when no feasible plan exists.
func (p *Planner) PlanStrict(f model.Forecast, startBuffer float64) (Result, error) {
	h := f.Horizon()
	if h == 0 {
		return Result{PlanID: uuid.NewString(), Offsets: []int{}, Buffer: []float64{}}, nil
	}

	in := p.prepare(f, h)

	admissible := p.admissibleOffsets(in.baseSupply)
	if len(admissible) == 0 {
		return Result{}, ErrInfeasible
	}

	offsets, cost, ok := p.search(in, admissible, startBuffer)
	if !ok {
		return Result{}, ErrInfeasible
	}

	return Result{
		PlanID:       uuid.NewString(),
		Offsets:      offsets,
		Buffer:       BufferTrajectory(offsets, f.Demand, startBuffer, p.coeffs),
		Cost:         cost,
		BaselineCost: floats.Sum(in.zeroCosts),
	}, nil
}

// stepInputs holds the per-step vectors precomputed before the search.
type stepInputs struct {
	demand     []float64
	price      []float64
	outdoor    []float64
	humidity   []float64
	baseSupply []float64
	defrost    []float64
	zeroCosts  []float64
}

func (p *Planner) prepare(f model.Forecast, h int) stepInputs {
	in := stepInputs{
		demand:     f.Demand[:h],
		price:      f.Price[:h],
		outdoor:    extend(f.OutdoorTemp, h, defaultOutdoorTemp),
		humidity:   extend(f.Humidity, h, defaultHumidity),
		baseSupply: make([]float64, h),
		defrost:    make([]float64, h),
		zeroCosts:  make([]float64, h),
	}
	for t := 0; t < h; t++ {
		in.baseSupply[t] = thermal.BaseSupply(in.outdoor[t], p.coeffs)
		in.defrost[t] = thermal.DefrostFactor(in.outdoor[t], in.humidity[t])
		in.zeroCosts[t] = p.cost(in, t, 0)
	}
	return in
}

func (p *Planner) cost(in stepInputs, t, offset int) float64 {
	return stepCost(in.demand[t], in.price[t], in.outdoor[t], in.baseSupply[t], offset, in.defrost[t], p.PricePenalty, p.coeffs)
}

// admissibleOffsets returns the offsets that keep the supply temperature
// within bounds at every step of the horizon. The bound is applied globally
// so the rate-of-change constraint can never steer the plan into a step
// where its current offset is illegal.
func (p *Planner) admissibleOffsets(baseSupply []float64) []int {
	var out []int
	for o := -p.MaxOffset; o <= p.MaxOffset; o++ {
		ok := true
		for _, base := range baseSupply {
			supply := base + float64(o)
			if supply < p.coeffs.WaterMin || supply > p.coeffs.WaterMax {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, o)
		}
	}
	return out
}

// stateKey identifies a DP state within one step: the offset held during the
// step and the cumulative offset sum so far. Keeping the sum in the key
// preserves distinct buffer histories that share an offset.
type stateKey struct {
	offset int
	sum    int
}

// stateVal carries the best known path into a state.
type stateVal struct {
	cost       float64
	buffer     float64
	prevOffset int
	prevSum    int
}

// search runs the DP over the horizon and backtracks the cheapest feasible
// trajectory. Iteration orders are sorted so equal-cost ties resolve
// identically on every call.
func (p *Planner) search(in stepInputs, admissible []int, startBuffer float64) ([]int, float64, bool) {
	h := len(in.demand)
	layers := make([]map[stateKey]stateVal, h)

	layers[0] = make(map[stateKey]stateVal)
	for _, o := range admissible {
		buffer := BufferStep(startBuffer, o, in.demand[0], p.coeffs)
		if buffer < -bufferTolerance {
			continue
		}
		key := stateKey{offset: o, sum: o}
		val := stateVal{cost: p.cost(in, 0, o), buffer: buffer}
		if cur, ok := layers[0][key]; !ok || val.cost < cur.cost {
			layers[0][key] = val
		}
	}

	for t := 1; t < h; t++ {
		next := make(map[stateKey]stateVal)
		for _, key := range sortedKeys(layers[t-1]) {
			prev := layers[t-1][key]
			for _, o := range admissible {
				if abs(o-key.offset) > p.MaxStepDelta {
					continue
				}
				buffer := BufferStep(prev.buffer, o, in.demand[t], p.coeffs)
				if buffer < -bufferTolerance {
					continue
				}
				nk := stateKey{offset: o, sum: key.sum + o}
				nv := stateVal{
					cost:       prev.cost + p.cost(in, t, o),
					buffer:     buffer,
					prevOffset: key.offset,
					prevSum:    key.sum,
				}
				if cur, ok := next[nk]; !ok || nv.cost < cur.cost {
					next[nk] = nv
				}
			}
		}
		if len(next) == 0 {
			return nil, 0, false
		}
		layers[t] = next
	}

	final := layers[h-1]
	if len(final) == 0 {
		return nil, 0, false
	}

	// Among end states prefer low cost, nudged toward a drained buffer so
	// stored energy is not left stranded past the horizon.
	bestObjective := math.Inf(1)
	var bestKey stateKey
	for _, key := range sortedKeys(final) {
		val := final[key]
		objective := val.cost + p.TieBreakWeight*math.Abs(val.buffer)
		if objective < bestObjective {
			bestObjective = objective
			bestKey = key
		}
	}

	offsets := make([]int, h)
	key := bestKey
	for t := h - 1; t >= 0; t-- {
		val := layers[t][key]
		offsets[t] = key.offset
		key = stateKey{offset: val.prevOffset, sum: val.prevSum}
	}
	return offsets, final[bestKey].cost, true
}

// zeroPlan is the safe fallback: hold the heating curve, leave the buffer
// untouched.
func (p *Planner) zeroPlan(f model.Forecast, startBuffer float64) Result {
	h := f.Horizon()
	in := p.prepare(f, h)
	baseline := floats.Sum(in.zeroCosts)
	buffer := make([]float64, h)
	for t := range buffer {
		buffer[t] = startBuffer
	}
	return Result{
		PlanID:       uuid.NewString(),
		Offsets:      make([]int, h),
		Buffer:       buffer,
		Cost:         baseline,
		BaselineCost: baseline,
		Fallback:     true,
	}
}

// extend repeats the last known value (or the default when empty) to bring a
// forecast vector up to the horizon length.
func extend(v []float64, h int, def float64) []float64 {
	out := make([]float64, h)
	last := def
	for t := 0; t < h; t++ {
		if t < len(v) {
			last = v[t]
		}
		out[t] = last
	}
	return out
}

func sortedKeys(layer map[stateKey]stateVal) []stateKey {
	keys := make([]stateKey, 0, len(layer))
	for k := range layer {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].offset != keys[j].offset {
			return keys[i].offset < keys[j].offset
		}
		return keys[i].sum < keys[j].sum
	})
	return keys
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

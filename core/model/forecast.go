package model

// Forecast bundles the input vectors for one planning call. Demand and price
// determine the planning horizon; outdoor temperature and humidity may be
// shorter and are extended by the planner. All vectors are treated as
// immutable for the duration of the call.
type Forecast struct {
	// Demand is the forecast heat demand per step in kW. Negative values
	// represent surplus (e.g. solar gain covering the load).
	Demand []float64 `json:"demand"`
	// Price is the forecast electricity price per step.
	Price []float64 `json:"price"`
	// OutdoorTemp is the forecast outdoor temperature per step in degrees C.
	OutdoorTemp []float64 `json:"outdoor_temp"`
	// Humidity is the forecast relative humidity per step in percent.
	// Optional; missing steps default to 80.
	Humidity []float64 `json:"humidity"`
}

// Horizon returns the number of plannable steps, the shorter of the demand
// and price vectors. A zero horizon yields an empty plan.
func (f Forecast) Horizon() int {
	h := len(f.Demand)
	if len(f.Price) < h {
		h = len(f.Price)
	}
	return h
}

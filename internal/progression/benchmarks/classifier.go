package benchmarks

// Result is a raw benchmark attempt as submitted by a client.
// Which field matters depends on the metric of the matched standard:
// distance is carried in Rounds and power in Weight.
type Result struct {
	Rounds      *float64 `json:"rounds,omitempty"`
	Reps        *float64 `json:"reps,omitempty"`
	TimeSeconds *float64 `json:"time_seconds,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Measurement is the single value of a Result that a standard is judged on.
type Measurement struct {
	Metric Metric
	Value  float64
}

// MeasurementFor extracts the relevant value from r for the given standard.
// ok is false when r does not carry the field the metric needs.
func MeasurementFor(std Standard, r Result) (_ Measurement, ok bool) {
	m := Measurement{Metric: std.Metric}
	switch std.Metric {
	case MetricRounds:
		if r.Rounds == nil {
			return m, false
		}
		// 20 rounds + 8 reps -> 20.08
		m.Value = *r.Rounds
		if r.Reps != nil {
			m.Value += *r.Reps / 100
		}
	case MetricTime:
		if r.TimeSeconds == nil {
			return m, false
		}
		m.Value = *r.TimeSeconds
	case MetricDistance:
		if r.Rounds == nil {
			return m, false
		}
		m.Value = *r.Rounds
	case MetricWeight, MetricPower:
		if r.Weight == nil {
			return m, false
		}
		m.Value = *r.Weight
	default:
		return m, false
	}
	return m, true
}

// Classify returns the level the result earns on the named benchmark.
// When no classification is possible (unknown benchmark, missing value)
// the validated current level is returned unchanged.
func Classify(benchmarkName string, r Result, currentLevel string) Level {
	current := ValidateLevel(currentLevel)

	std, found := Lookup(benchmarkName)
	if !found {
		return current
	}

	m, ok := MeasurementFor(std, r)
	if !ok {
		return current
	}

	return std.Tier(m.Value)
}

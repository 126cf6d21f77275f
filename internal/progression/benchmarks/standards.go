package benchmarks

import "sort"

type Metric string

const (
	MetricRounds   Metric = "rounds"
	MetricTime     Metric = "time"
	MetricDistance Metric = "distance"
	MetricWeight   Metric = "weight"
	MetricPower    Metric = "power"
)

// LowerIsBetter reports whether smaller values are the better performance.
func (m Metric) LowerIsBetter() bool {
	return m == MetricTime
}

// Standard holds the tier thresholds for one benchmark.
type Standard struct {
	Name         string  `json:"name"`
	Metric       Metric  `json:"metric"`
	Elite        float64 `json:"elite"`
	Advanced     float64 `json:"advanced"`
	Intermediate float64 `json:"intermediate"`
	Beginner     float64 `json:"beginner"`
}

// Tier places value against the thresholds, scanning elite, advanced and
// intermediate in that order. A value equal to a threshold lands in that tier.
func (s Standard) Tier(value float64) Level {
	tiers := []struct {
		level     Level
		threshold float64
	}{
		{LevelElite, s.Elite},
		{LevelAdvanced, s.Advanced},
		{LevelIntermediate, s.Intermediate},
	}
	for _, t := range tiers {
		if s.Metric.LowerIsBetter() {
			if value <= t.threshold {
				return t.level
			}
		} else if value >= t.threshold {
			return t.level
		}
	}
	return LevelBeginner
}

// standards is keyed by the exact benchmark display name.
// time in seconds, distance in meters, weight in kg, power in watts.
var standards = map[string]Standard{
	// girls & hero WODs
	"Fran":   {Metric: MetricTime, Elite: 180, Advanced: 300, Intermediate: 480, Beginner: 720},
	"Grace":  {Metric: MetricTime, Elite: 150, Advanced: 240, Intermediate: 360, Beginner: 540},
	"Helen":  {Metric: MetricTime, Elite: 540, Advanced: 660, Intermediate: 840, Beginner: 1080},
	"Diane":  {Metric: MetricTime, Elite: 180, Advanced: 300, Intermediate: 480, Beginner: 720},
	"Isabel": {Metric: MetricTime, Elite: 150, Advanced: 240, Intermediate: 390, Beginner: 600},
	"Murph":  {Metric: MetricTime, Elite: 2400, Advanced: 3000, Intermediate: 3900, Beginner: 4800},
	"Cindy":  {Metric: MetricRounds, Elite: 30, Advanced: 20, Intermediate: 15, Beginner: 10},
	"Mary":   {Metric: MetricRounds, Elite: 20, Advanced: 13, Intermediate: 9, Beginner: 5},

	// endurance
	"5K Run":                      {Metric: MetricTime, Elite: 1080, Advanced: 1320, Intermediate: 1560, Beginner: 1860},
	"2K Row":                      {Metric: MetricTime, Elite: 405, Advanced: 450, Intermediate: 510, Beginner: 570},
	"12-Minute Run (Cooper Test)": {Metric: MetricDistance, Elite: 3000, Advanced: 2700, Intermediate: 2400, Beginner: 2000},

	// strength
	"Back Squat 1RM":  {Metric: MetricWeight, Elite: 180, Advanced: 140, Intermediate: 100, Beginner: 60},
	"Deadlift 1RM":    {Metric: MetricWeight, Elite: 220, Advanced: 170, Intermediate: 120, Beginner: 80},
	"Bench Press 1RM": {Metric: MetricWeight, Elite: 140, Advanced: 110, Intermediate: 80, Beginner: 50},

	// cycling
	"FTP Test": {Metric: MetricPower, Elite: 300, Advanced: 250, Intermediate: 200, Beginner: 150},
}

// Lookup finds the standard for the exact (case-sensitive) benchmark name.
// A missing entry is a normal outcome.
func Lookup(name string) (Standard, bool) {
	s, ok := standards[name]
	if !ok {
		return Standard{}, false
	}
	s.Name = name
	return s, true
}

// All returns every known standard, sorted by name.
func All() []Standard {
	all := make([]Standard, 0, len(standards))
	for name := range standards {
		s, _ := Lookup(name)
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

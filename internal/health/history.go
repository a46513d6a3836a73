package health

import "math"

// Totals is one day's tracked numbers.
type Totals struct {
	Steps            int
	CaloriesBurned   int
	CaloriesConsumed int
}

// Averages returns the rounded per-day mean of each field, or zero totals
// for an empty history.
func Averages(days []Totals) Totals {
	if len(days) == 0 {
		return Totals{}
	}
	var steps, burned, consumed int
	for _, d := range days {
		steps += d.Steps
		burned += d.CaloriesBurned
		consumed += d.CaloriesConsumed
	}
	n := float64(len(days))
	return Totals{
		Steps:            int(math.Round(float64(steps) / n)),
		CaloriesBurned:   int(math.Round(float64(burned) / n)),
		CaloriesConsumed: int(math.Round(float64(consumed) / n)),
	}
}

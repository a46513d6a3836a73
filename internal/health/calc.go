// Package health holds the pure calculations behind the dashboard: calorie
// estimates, BMI, calorie balance, goal progress and insight text.
package health

import "math"

// Reference body weight the step calorie model is normalised to.
const referenceWeightKg = 70

// Calories burned per step for the reference body.
const caloriesPerStep = 0.04

// CaloriesFromSteps estimates calories burned for the given step count,
// scaled linearly by body weight.
func CaloriesFromSteps(steps int, weightKg float64) int {
	perStep := caloriesPerStep * (weightKg / referenceWeightKg)
	return int(math.Round(float64(steps) * perStep))
}

// BMI returns weight / height² (height in metres) rounded to one decimal.
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return roundTo(weightKg/(h*h), 1)
}

// BMICategory maps a BMI value onto its WHO band.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// CalorieBalance is burned minus consumed. Zero or more is a deficit.
func CalorieBalance(burned, consumed int) int {
	return burned - consumed
}

// BalanceLabel names the sign of a calorie balance.
func BalanceLabel(balance int) string {
	if balance < 0 {
		return "surplus"
	}
	return "deficit"
}

// ProgressPercentage returns current/goal as a percentage capped at 100.
// A non-positive goal yields 0.
func ProgressPercentage(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, current/goal*100)
}

// ActiveMinutes is a rough estimate of active time: one minute per 100 steps.
func ActiveMinutes(steps int) int {
	return int(math.Round(float64(steps) / 100))
}

// Level buckets a progress percentage for display.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

func ProgressLevel(pct float64) Level {
	switch {
	case pct < 30:
		return LevelLow
	case pct < 70:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

package health

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Calories
// ============================================================

func TestCaloriesFromSteps(t *testing.T) {
	tests := []struct {
		steps  int
		weight float64
		want   int
	}{
		{10000, 70, 400},
		{0, 70, 0},
		{1750, 70, 70},
		{1750, 90, 90},
		{1000, 35, 20},
		{333, 70, 13},
	}
	for _, tt := range tests {
		got := CaloriesFromSteps(tt.steps, tt.weight)
		assert.Equal(t, tt.want, got, "CaloriesFromSteps(%d, %v)", tt.steps, tt.weight)
	}
}

func TestCaloriesFromStepsMatchesFormula(t *testing.T) {
	for _, w := range []float64{40, 55.5, 70, 82.3, 120} {
		want := int(math.Round(1750 * 0.04 * w / 70))
		assert.Equal(t, want, CaloriesFromSteps(1750, w), "weight %v", w)
	}
}

func TestCalorieBalance(t *testing.T) {
	assert.Equal(t, -300, CalorieBalance(500, 800))
	assert.Equal(t, 0, CalorieBalance(800, 800))
	assert.Equal(t, 200, CalorieBalance(1000, 800))
}

func TestBalanceLabel(t *testing.T) {
	assert.Equal(t, "surplus", BalanceLabel(-1))
	assert.Equal(t, "deficit", BalanceLabel(0))
	assert.Equal(t, "deficit", BalanceLabel(250))
}

// ============================================================
// BMI
// ============================================================

func TestBMI(t *testing.T) {
	assert.Equal(t, 24.2, BMI(70, 170))
	assert.Equal(t, 17.3, BMI(50, 170))
	assert.Equal(t, 22.9, BMI(70, 175))
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{17.3, "Underweight"},
		{18.4, "Underweight"},
		{18.5, "Normal weight"},
		{24.2, "Normal weight"},
		{25, "Overweight"},
		{29.9, "Overweight"},
		{30, "Obese"},
		{41, "Obese"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BMICategory(tt.bmi), "BMICategory(%v)", tt.bmi)
	}
}

// ============================================================
// Progress
// ============================================================

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 100.0, ProgressPercentage(12000, 10000))
	assert.Equal(t, 50.0, ProgressPercentage(5000, 10000))
	assert.Equal(t, 0.0, ProgressPercentage(0, 10000))
	assert.Equal(t, 0.0, ProgressPercentage(100, 0))
}

func TestProgressLevel(t *testing.T) {
	assert.Equal(t, LevelLow, ProgressLevel(0))
	assert.Equal(t, LevelLow, ProgressLevel(29.9))
	assert.Equal(t, LevelMedium, ProgressLevel(30))
	assert.Equal(t, LevelMedium, ProgressLevel(69))
	assert.Equal(t, LevelHigh, ProgressLevel(70))
	assert.Equal(t, LevelHigh, ProgressLevel(100))
}

func TestActiveMinutes(t *testing.T) {
	assert.Equal(t, 0, ActiveMinutes(0))
	assert.Equal(t, 50, ActiveMinutes(5000))
	assert.Equal(t, 2, ActiveMinutes(150))
}

// ============================================================
// Insights
// ============================================================

func TestInsightsGoodProgressWithSurplus(t *testing.T) {
	got := Insights(9000, 600, 2200, 10000)
	require.Len(t, got, 2)
	assert.Equal(t, InsightGoodProgress, got[0])
	assert.Equal(t, InsightSurplus, got[1])
}

func TestInsightsLowActivity(t *testing.T) {
	got := Insights(1000, 400, 300, 10000)
	assert.Equal(t, []string{InsightMoreActive, InsightBalanced}, got)
}

func TestInsightsGoalReachedWithDeficit(t *testing.T) {
	got := Insights(10000, 1200, 500, 10000)
	assert.Equal(t, []string{InsightGoalReached, InsightDeficit}, got)
}

func TestInsightsMidRangeGetsFiller(t *testing.T) {
	// 60% of goal sits between the low and good-progress bands.
	got := Insights(6000, 300, 300, 10000)
	assert.Equal(t, []string{InsightBalanced, InsightTrackConsistently}, got)
}

func TestInsightsBalanceBoundaries(t *testing.T) {
	assert.Equal(t, InsightBalanced, Insights(10000, 0, 500, 10000)[1])
	assert.Equal(t, InsightSurplus, Insights(10000, 0, 501, 10000)[1])
	assert.Equal(t, InsightBalanced, Insights(10000, 500, 0, 10000)[1])
	assert.Equal(t, InsightDeficit, Insights(10000, 501, 0, 10000)[1])
}

func TestInsightsNeverMoreThanThree(t *testing.T) {
	for steps := 0; steps <= 12000; steps += 500 {
		got := Insights(steps, 300, 300, 10000)
		assert.LessOrEqual(t, len(got), 3)
		assert.GreaterOrEqual(t, len(got), 2)
	}
}

// ============================================================
// History
// ============================================================

func TestAveragesEmpty(t *testing.T) {
	assert.Equal(t, Totals{}, Averages(nil))
}

func TestAverages(t *testing.T) {
	got := Averages([]Totals{
		{Steps: 5000, CaloriesBurned: 200, CaloriesConsumed: 300},
		{Steps: 8001, CaloriesBurned: 301, CaloriesConsumed: 1800},
	})
	assert.Equal(t, Totals{Steps: 6501, CaloriesBurned: 251, CaloriesConsumed: 1050}, got)
}

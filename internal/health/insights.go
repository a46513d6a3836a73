package health

const (
	InsightMoreActive   = "Try to be more active today to reach your step goal."
	InsightGoalReached  = "Great job reaching your step goal! Keep it up!"
	InsightGoodProgress = "You're making good progress towards your step goal today."

	InsightSurplus  = "You're in a significant calorie surplus today. Consider some light activity."
	InsightDeficit  = "You're in a significant calorie deficit. Make sure you're eating enough."
	InsightBalanced = "Your calorie intake and output are well balanced today."

	InsightTrackConsistently = "Track your meals and activity consistently for more personalized insights."
)

// Balance beyond which the calorie insight turns into a warning.
const balanceWarnThreshold = 500

// Insights builds up to three short recommendations from today's numbers.
// Step progress between 50% and 75% produces no step insight.
func Insights(steps, burned, consumed, stepsGoal int) []string {
	var insights []string

	pct := float64(steps) / float64(stepsGoal) * 100
	switch {
	case pct < 50:
		insights = append(insights, InsightMoreActive)
	case pct >= 100:
		insights = append(insights, InsightGoalReached)
	case pct >= 75:
		insights = append(insights, InsightGoodProgress)
	}

	balance := CalorieBalance(burned, consumed)
	switch {
	case balance < -balanceWarnThreshold:
		insights = append(insights, InsightSurplus)
	case balance > balanceWarnThreshold:
		insights = append(insights, InsightDeficit)
	default:
		insights = append(insights, InsightBalanced)
	}

	if len(insights) < 2 {
		insights = append(insights, InsightTrackConsistently)
	}
	return insights
}

package daily

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Logical keys in the durable store.
const (
	KeySteps          = "steps"
	KeyCaloriesBurned = "caloriesBurned"
	KeyMeals          = "meals"
	KeyGoals          = "goals"
	KeyWeight         = "weight"
	KeyHeight         = "height"
	KeyDailyLogs      = "dailyLogs"
	KeyLastLogDate    = "lastLogDate"
)

func encodeInt(n int) string {
	return strconv.Itoa(n)
}

func encodeFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCount(raw string) (int, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	return int(math.Round(f)), nil
}

func decodePositive(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if !(f > 0) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid measurement %q", raw)
	}
	return f, nil
}

func decodeMeals(raw string) ([]Meal, error) {
	var meals []Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		return nil, err
	}
	for _, m := range meals {
		if err := m.validate(); err != nil {
			return nil, err
		}
	}
	return meals, nil
}

func decodeGoals(raw string) (Goals, error) {
	var g Goals
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return Goals{}, err
	}
	if err := g.Validate(); err != nil {
		return Goals{}, err
	}
	return g, nil
}

func decodeLogs(raw string) ([]LogEntry, error) {
	var logs []LogEntry
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil, err
	}
	for _, e := range logs {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}
	return logs, nil
}

// encodeState renders every persisted key.
func encodeState(day Day, goals Goals, profile Profile, history []LogEntry, date string) (map[string]string, error) {
	meals := day.Meals
	if meals == nil {
		meals = []Meal{}
	}
	if history == nil {
		history = []LogEntry{}
	}
	mealsJSON, err := encodeJSON(meals)
	if err != nil {
		return nil, fmt.Errorf("encode meals: %w", err)
	}
	goalsJSON, err := encodeJSON(goals)
	if err != nil {
		return nil, fmt.Errorf("encode goals: %w", err)
	}
	logsJSON, err := encodeJSON(history)
	if err != nil {
		return nil, fmt.Errorf("encode daily logs: %w", err)
	}
	return map[string]string{
		KeySteps:          encodeInt(day.Steps),
		KeyCaloriesBurned: encodeInt(day.CaloriesBurned),
		KeyMeals:          mealsJSON,
		KeyGoals:          goalsJSON,
		KeyWeight:         encodeFloat(profile.WeightKg),
		KeyHeight:         encodeFloat(profile.HeightCm),
		KeyDailyLogs:      logsJSON,
		KeyLastLogDate:    date,
	}, nil
}

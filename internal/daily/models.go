package daily

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sadopc/healthtrackr/internal/health"
)

// Category is the meal slot a meal belongs to.
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
	Snack     Category = "snack"
)

// Categories lists meal categories in display order.
var Categories = []Category{Breakfast, Lunch, Dinner, Snack}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown meal category %q", ErrInvalid, s)
}

// Meal is a logged meal. Meals are never edited, only added or removed.
type Meal struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Time     time.Time `json:"time"`
	Category Category  `json:"category"`
}

// validate checks a stored meal against the rules AddMeal enforces.
func (m Meal) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("meal %q has no name", m.ID)
	}
	if m.Calories < 0 {
		return fmt.Errorf("meal %q has negative calories", m.ID)
	}
	if _, err := ParseCategory(string(m.Category)); err != nil {
		return fmt.Errorf("meal %q: %w", m.ID, err)
	}
	return nil
}

// MealInput is what the user submits when logging a meal.
type MealInput struct {
	Name     string
	Calories float64
	Category Category
	Time     time.Time // zero means now
}

func (in MealInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: meal name is required", ErrInvalid)
	}
	if math.IsNaN(in.Calories) || math.IsInf(in.Calories, 0) {
		return fmt.Errorf("%w: calories must be a number", ErrInvalid)
	}
	if in.Calories < 0 {
		return fmt.Errorf("%w: calories cannot be negative", ErrInvalid)
	}
	if _, err := ParseCategory(string(in.Category)); err != nil {
		return err
	}
	return nil
}

// Goals are the daily targets.
type Goals struct {
	Steps          int `json:"steps"`
	CaloriesIntake int `json:"caloriesIntake"`
	CaloriesBurn   int `json:"caloriesBurn"`
}

func DefaultGoals() Goals {
	return Goals{Steps: 10000, CaloriesIntake: 2000, CaloriesBurn: 500}
}

func (g Goals) Validate() error {
	if g.Steps <= 0 || g.CaloriesIntake <= 0 || g.CaloriesBurn <= 0 {
		return fmt.Errorf("%w: goals must be positive numbers", ErrInvalid)
	}
	return nil
}

// Profile holds body measurements in kg and cm.
type Profile struct {
	WeightKg float64
	HeightCm float64
}

func DefaultProfile() Profile {
	return Profile{WeightKg: 70, HeightCm: 170}
}

func (p Profile) Validate() error {
	if !(p.WeightKg > 0) || !(p.HeightCm > 0) ||
		math.IsInf(p.WeightKg, 0) || math.IsInf(p.HeightCm, 0) {
		return fmt.Errorf("%w: weight and height must be positive numbers", ErrInvalid)
	}
	return nil
}

// BMI of the profile, rounded to one decimal.
func (p Profile) BMI() float64 {
	return health.BMI(p.WeightKg, p.HeightCm)
}

// LogEntry is the archived totals of one finished day.
type LogEntry struct {
	Date             string `json:"date"`
	Steps            int    `json:"steps"`
	CaloriesBurned   int    `json:"caloriesBurned"`
	CaloriesConsumed int    `json:"caloriesConsumed"`
}

func (e LogEntry) validate() error {
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return fmt.Errorf("log entry date %q: %w", e.Date, err)
	}
	if e.Steps < 0 || e.CaloriesBurned < 0 || e.CaloriesConsumed < 0 {
		return fmt.Errorf("log entry %s has negative totals", e.Date)
	}
	return nil
}

func (e LogEntry) Totals() health.Totals {
	return health.Totals{
		Steps:            e.Steps,
		CaloriesBurned:   e.CaloriesBurned,
		CaloriesConsumed: e.CaloriesConsumed,
	}
}

// Day is the live, mutable state of the current day.
type Day struct {
	Steps          int
	CaloriesBurned int
	Meals          []Meal
}

// CaloriesConsumed sums the meal list. It is always recomputed.
func (d Day) CaloriesConsumed() int {
	total := 0
	for _, m := range d.Meals {
		total += m.Calories
	}
	return total
}

func (d Day) HasActivity() bool {
	return d.Steps > 0 || d.CaloriesBurned > 0 || len(d.Meals) > 0
}

// Snapshot is a read-only copy of the tracker state for display.
type Snapshot struct {
	Date             string
	Steps            int
	CaloriesBurned   int
	CaloriesConsumed int
	Meals            []Meal
	Goals            Goals
	Profile          Profile
	History          []LogEntry
}

// Insights for the snapshot's current numbers.
func (s Snapshot) Insights() []string {
	return health.Insights(s.Steps, s.CaloriesBurned, s.CaloriesConsumed, s.Goals.Steps)
}

// HistoryTotals converts archived entries for health.Averages.
func (s Snapshot) HistoryTotals() []health.Totals {
	out := make([]health.Totals, len(s.History))
	for i, e := range s.History {
		out[i] = e.Totals()
	}
	return out
}

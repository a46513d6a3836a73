// Package daily owns the tracked day: live counters, meals, goals, body
// profile and the archive of finished days, persisted to a key-value store.
package daily

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/sadopc/healthtrackr/internal/health"
)

var (
	// ErrInvalid marks rejected input. State is unchanged when it is returned.
	ErrInvalid = errors.New("invalid input")
	// ErrStorage marks a failed write. In-memory state is already updated.
	ErrStorage = errors.New("storage unavailable")
)

// KV is the durable string key-value store the tracker persists into.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// BatchSetter is implemented by stores that can write many keys at once.
type BatchSetter interface {
	SetAll(pairs map[string]string) error
}

type Option func(*Tracker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Tracker) { t.log = l }
}

// Tracker holds the current day and history. It is not safe for concurrent
// use; the UI drives it from a single goroutine.
type Tracker struct {
	kv  KV
	now func() time.Time
	log logrus.FieldLogger

	day        Day
	goals      Goals
	profile    Profile
	history    []LogEntry
	lastDate   string
	lastMealID int64
}

func New(kv KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:      kv,
		now:     time.Now,
		log:     logrus.StandardLogger(),
		goals:   DefaultGoals(),
		profile: DefaultProfile(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load rehydrates state from the store and archives the previous day if the
// calendar date moved on. Unreadable keys fall back to their defaults one by
// one. A store that cannot be read is reported as ErrStorage; in that case
// the tracker still works with whatever could be loaded.
func (t *Tracker) Load() error {
	t.day = Day{}
	t.goals = DefaultGoals()
	t.profile = DefaultProfile()
	t.history = nil
	t.lastDate = ""

	var problems, readErr error
	read := func(key string, decode func(raw string) error) bool {
		raw, ok, err := t.kv.Get(key)
		if err != nil {
			readErr = multierr.Append(readErr, fmt.Errorf("read %s: %w", key, err))
			return false
		}
		if !ok {
			return true
		}
		if err := decode(raw); err != nil {
			problems = multierr.Append(problems, fmt.Errorf("decode %s: %w", key, err))
		}
		return true
	}

	read(KeySteps, func(raw string) (err error) {
		t.day.Steps, err = decodeCount(raw)
		return err
	})
	read(KeyCaloriesBurned, func(raw string) (err error) {
		t.day.CaloriesBurned, err = decodeCount(raw)
		return err
	})
	read(KeyMeals, func(raw string) (err error) {
		t.day.Meals, err = decodeMeals(raw)
		return err
	})
	read(KeyGoals, func(raw string) error {
		g, err := decodeGoals(raw)
		if err == nil {
			t.goals = g
		}
		return err
	})
	read(KeyWeight, func(raw string) error {
		w, err := decodePositive(raw)
		if err == nil {
			t.profile.WeightKg = w
		}
		return err
	})
	read(KeyHeight, func(raw string) error {
		h, err := decodePositive(raw)
		if err == nil {
			t.profile.HeightCm = h
		}
		return err
	})
	read(KeyDailyLogs, func(raw string) (err error) {
		t.history, err = decodeLogs(raw)
		return err
	})
	markerRead := read(KeyLastLogDate, func(raw string) error {
		t.lastDate = strings.TrimSpace(raw)
		return nil
	})
	if !markerRead {
		// Unknown date: keep the stored day as today's rather than reset it.
		t.lastDate = t.Today()
	}

	for _, err := range multierr.Errors(problems) {
		t.log.WithError(err).Warn("using default for unreadable value")
	}
	if readErr != nil {
		t.log.WithError(readErr).Error("read health state")
	}

	for _, m := range t.day.Meals {
		if id, err := strconv.ParseInt(m.ID, 10, 64); err == nil && id > t.lastMealID {
			t.lastMealID = id
		}
	}

	if _, err := t.CheckRollover(); err != nil {
		return err
	}
	if readErr != nil {
		return fmt.Errorf("%w: %w", ErrStorage, readErr)
	}
	return nil
}

// CheckRollover archives and resets the day when the clock has moved to a
// new calendar date. It reports whether a reset happened.
func (t *Tracker) CheckRollover() (bool, error) {
	if !t.rollIfNeeded() {
		return false, nil
	}
	return true, t.persist()
}

func (t *Tracker) rollIfNeeded() bool {
	today := t.Today()
	if !NeedsReset(t.lastDate, today) {
		return false
	}
	if entry, ok := DetectRollover(t.lastDate, today, t.day); ok {
		t.history = appendEntry(t.history, entry)
		t.log.WithFields(logrus.Fields{
			"date":     entry.Date,
			"steps":    entry.Steps,
			"burned":   entry.CaloriesBurned,
			"consumed": entry.CaloriesConsumed,
		}).Info("archived finished day")
	}
	t.day = Day{}
	t.lastDate = today
	return true
}

// ResetDailyData archives the live counters now, whatever the date, and
// starts a fresh day.
func (t *Tracker) ResetDailyData() error {
	t.rollIfNeeded()
	date := t.lastDate
	if date == "" {
		date = t.Today()
	}
	if t.day.HasActivity() {
		t.history = appendEntry(t.history, archive(date, t.day))
		t.log.WithField("date", date).Info("day reset manually")
	}
	t.day = Day{}
	return t.persist()
}

// SetSteps replaces the step count. Negative values are stored as 0.
func (t *Tracker) SetSteps(n int) error {
	t.rollIfNeeded()
	t.day.Steps = max(0, n)
	return t.persist()
}

// AddSteps moves the step count by delta (never below 0) and sets calories
// burned to the estimate for the new count at the current weight.
func (t *Tracker) AddSteps(delta int) (int, error) {
	t.rollIfNeeded()
	t.day.Steps = max(0, t.day.Steps+delta)
	t.day.CaloriesBurned = health.CaloriesFromSteps(t.day.Steps, t.profile.WeightKg)
	return t.day.Steps, t.persist()
}

// SetCaloriesBurned replaces the burned counter. It is independent of steps.
func (t *Tracker) SetCaloriesBurned(n int) error {
	t.rollIfNeeded()
	t.day.CaloriesBurned = max(0, n)
	return t.persist()
}

// AddMeal validates in and appends it to today's meals.
func (t *Tracker) AddMeal(in MealInput) (Meal, error) {
	if err := in.validate(); err != nil {
		return Meal{}, err
	}
	t.rollIfNeeded()

	now := t.now()
	at := in.Time
	if at.IsZero() {
		at = now
	}
	cat, _ := ParseCategory(string(in.Category))
	m := Meal{
		ID:       t.nextMealID(now),
		Name:     strings.TrimSpace(in.Name),
		Calories: int(math.Round(in.Calories)),
		Time:     at,
		Category: cat,
	}
	t.day.Meals = append(t.day.Meals, m)
	return m, t.persist()
}

// RemoveMeal drops the meal with the given id. Unknown ids are ignored.
func (t *Tracker) RemoveMeal(id string) error {
	idx := -1
	for i, m := range t.day.Meals {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	t.rollIfNeeded()
	meals := make([]Meal, 0, len(t.day.Meals)-1)
	meals = append(meals, t.day.Meals[:idx]...)
	meals = append(meals, t.day.Meals[idx+1:]...)
	t.day.Meals = meals
	return t.persist()
}

func (t *Tracker) SetGoals(g Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}
	t.rollIfNeeded()
	t.goals = g
	return t.persist()
}

func (t *Tracker) SetProfile(weightKg, heightCm float64) error {
	p := Profile{WeightKg: weightKg, HeightCm: heightCm}
	if err := p.Validate(); err != nil {
		return err
	}
	t.rollIfNeeded()
	t.profile = p
	return t.persist()
}

func (t *Tracker) nextMealID(now time.Time) string {
	id := now.UnixNano()
	if id <= t.lastMealID {
		id = t.lastMealID + 1
	}
	t.lastMealID = id
	return strconv.FormatInt(id, 10)
}

// persist writes the whole state and stamps today's date as the marker.
func (t *Tracker) persist() error {
	today := t.Today()
	t.lastDate = today

	pairs, err := encodeState(t.day, t.goals, t.profile, t.history, today)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if b, ok := t.kv.(BatchSetter); ok {
		err = b.SetAll(pairs)
	} else {
		keys := make([]string, 0, len(pairs))
		for k := range pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			err = multierr.Append(err, t.kv.Set(k, pairs[k]))
		}
	}
	if err != nil {
		t.log.WithError(err).Error("persist health state")
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Today is the current local calendar date.
func (t *Tracker) Today() string {
	return DateOf(t.now())
}

func (t *Tracker) Steps() int          { return t.day.Steps }
func (t *Tracker) CaloriesBurned() int { return t.day.CaloriesBurned }
func (t *Tracker) Goals() Goals        { return t.goals }
func (t *Tracker) Profile() Profile    { return t.profile }
func (t *Tracker) LastLogDate() string { return t.lastDate }

// CaloriesConsumed is recomputed from the meal list on every call.
func (t *Tracker) CaloriesConsumed() int {
	return t.day.CaloriesConsumed()
}

func (t *Tracker) Meals() []Meal {
	return append([]Meal(nil), t.day.Meals...)
}

func (t *Tracker) History() []LogEntry {
	return append([]LogEntry(nil), t.history...)
}

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Date:             t.Today(),
		Steps:            t.day.Steps,
		CaloriesBurned:   t.day.CaloriesBurned,
		CaloriesConsumed: t.day.CaloriesConsumed(),
		Meals:            t.Meals(),
		Goals:            t.goals,
		Profile:          t.profile,
		History:          t.History(),
	}
}

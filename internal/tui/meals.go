package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/healthtrackr/internal/daily"
)

type mealsModel struct {
	tracker *daily.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName     *string
	formCalories *string
	formCategory *string
}

func newMealsModel(t *daily.Tracker) mealsModel {
	name, cal, cat := "", "", string(daily.Breakfast)
	return mealsModel{
		tracker:      t,
		formName:     &name,
		formCalories: &cal,
		formCategory: &cat,
	}
}

func (m *mealsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m mealsModel) update(msg tea.Msg) (mealsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		meals := m.tracker.Meals()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(meals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			return m.showNewMealForm()
		case key.Matches(msg, keys.Delete):
			if len(meals) == 0 {
				return m, nil
			}
			meal := meals[min(m.cursor, len(meals)-1)]
			if err := m.tracker.RemoveMeal(meal.ID); err != nil {
				return m, errorCmd(err)
			}
			m.cursor = max(0, min(m.cursor, len(meals)-2))
			return m, statusCmd(fmt.Sprintf("Removed %s", meal.Name))
		}
	}
	return m, nil
}

func (m mealsModel) showNewMealForm() (mealsModel, tea.Cmd) {
	*m.formName = ""
	*m.formCalories = ""
	*m.formCategory = string(daily.Breakfast)

	catOptions := make([]huh.Option[string], len(daily.Categories))
	for i, c := range daily.Categories {
		catOptions[i] = huh.NewOption(strings.ToUpper(string(c[:1]))+string(c[1:]), string(c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Meal Name").Placeholder("e.g. Greek salad").
				Value(m.formName).Validate(validateMealName),
			huh.NewInput().Title("Calories").Placeholder("e.g. 350").
				Value(m.formCalories).Validate(func(s string) error {
				_, err := parseCalories(s)
				return err
			}),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(m.formCategory),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m mealsModel) updateForm(msg tea.Msg) (mealsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		return m.submitMeal()
	}

	return m, cmd
}

func (m mealsModel) submitMeal() (mealsModel, tea.Cmd) {
	cal, err := parseCalories(*m.formCalories)
	if err != nil {
		return m, errorCmd(fmt.Errorf("%w: %v", daily.ErrInvalid, err))
	}
	meal, err := m.tracker.AddMeal(daily.MealInput{
		Name:     *m.formName,
		Calories: cal,
		Category: daily.Category(*m.formCategory),
	})
	if err != nil {
		return m, errorCmd(err)
	}
	m.cursor = len(m.tracker.Meals()) - 1
	return m, statusCmd(fmt.Sprintf("Logged %s (%s kcal)", meal.Name, formatNumber(meal.Calories)))
}

func validateMealName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func parseCalories(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("calories are required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("calories must be a number")
	}
	if v < 0 {
		return 0, errors.New("calories cannot be negative")
	}
	return v, nil
}

func (m mealsModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Meal")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}
	return m.renderMealList(w)
}

func (m mealsModel) renderMealList(w int) string {
	meals := m.tracker.Meals()
	goals := m.tracker.Goals()
	consumed := m.tracker.CaloriesConsumed()

	title := titleStyle.Render("Today's Meals")
	total := highlightStyle.Render(fmt.Sprintf("%s / %s kcal", formatNumber(consumed), formatNumber(goals.CaloriesIntake)))
	header := fmt.Sprintf("%s  %s", title, total)

	if len(meals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No meals logged today. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-6s %-24s %-10s %8s", "", "Time", "Name", "Category", "kcal")))

	for i, meal := range meals {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-6s %-24s %-10s %8s",
			cursor,
			categoryDot(string(meal.Category)),
			meal.Time.Local().Format("15:04"),
			truncate(meal.Name, 24),
			meal.Category,
			formatNumber(meal.Calories),
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: log meal  d: remove  ↑/↓: select"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

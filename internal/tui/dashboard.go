package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/healthtrackr/internal/daily"
	"github.com/sadopc/healthtrackr/internal/health"
)

type dashboardModel struct {
	tracker *daily.Tracker
	width   int
	height  int

	increment int
	bar       progress.Model
}

func newDashboardModel(t *daily.Tracker, increment int) dashboardModel {
	return dashboardModel{
		tracker:   t,
		increment: increment,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(10, w-20)
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.AddSteps):
			return d.addSteps(d.increment)
		case key.Matches(msg, keys.SubSteps):
			return d.addSteps(-d.increment)
		}
	}
	return d, nil
}

// addSteps moves the counter and recomputes calories burned from the new
// count, like the step buttons always do.
func (d dashboardModel) addSteps(delta int) (dashboardModel, tea.Cmd) {
	steps, err := d.tracker.AddSteps(delta)
	if err != nil {
		return d, errorCmd(err)
	}
	return d, statusCmd(fmt.Sprintf("Steps: %s", formatNumber(steps)))
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	snap := d.tracker.Snapshot()
	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStepsPanel(snap, contentWidth),
		d.renderCaloriesPanel(snap, contentWidth),
		d.renderBodyPanel(snap, contentWidth),
		d.renderInsightsPanel(snap, contentWidth),
	)
}

func (d dashboardModel) renderStepsPanel(s daily.Snapshot, w int) string {
	pct := health.ProgressPercentage(float64(s.Steps), float64(s.Goals.Steps))

	title := titleStyle.Render("Steps")
	count := bigNumberStyle.Render(formatNumber(s.Steps))
	goal := mutedStyle.Render(fmt.Sprintf("of %s  (%s)", formatNumber(s.Goals.Steps), levelStyle(pct).Render(formatPercent(pct))))
	extra := mutedStyle.Render(fmt.Sprintf("≈ %d active min  ·  %s kcal from steps",
		health.ActiveMinutes(s.Steps),
		formatNumber(health.CaloriesFromSteps(s.Steps, s.Profile.WeightKg)),
	))
	hint := mutedStyle.Render(fmt.Sprintf("+/-: %s steps", formatNumber(d.increment)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		fmt.Sprintf("%s %s", count, goal),
		d.bar.ViewAs(pct/100),
		extra,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderCaloriesPanel(s daily.Snapshot, w int) string {
	burnPct := health.ProgressPercentage(float64(s.CaloriesBurned), float64(s.Goals.CaloriesBurn))
	intakePct := health.ProgressPercentage(float64(s.CaloriesConsumed), float64(s.Goals.CaloriesIntake))
	balance := health.CalorieBalance(s.CaloriesBurned, s.CaloriesConsumed)

	balanceStyle := successStyle
	if balance < 0 {
		balanceStyle = warningStyle
	}

	rows := []string{
		titleStyle.Render("Calories"),
		fmt.Sprintf("  %-10s %8s / %-8s %s",
			"Burned", formatNumber(s.CaloriesBurned), formatNumber(s.Goals.CaloriesBurn),
			levelStyle(burnPct).Render(formatPercent(burnPct))),
		fmt.Sprintf("  %-10s %8s / %-8s %s",
			"Consumed", formatNumber(s.CaloriesConsumed), formatNumber(s.Goals.CaloriesIntake),
			highlightStyle.Render(formatPercent(intakePct))),
		fmt.Sprintf("  %-10s %s", "Balance",
			balanceStyle.Render(fmt.Sprintf("%s kcal %s", formatNumber(abs(balance)), health.BalanceLabel(balance)))),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderBodyPanel(s daily.Snapshot, w int) string {
	bmi := s.Profile.BMI()
	content := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("BMI"),
		highlightStyle.Render(fmt.Sprintf("%.1f", bmi)),
		mutedStyle.Render(fmt.Sprintf("%s · %.1f kg · %.0f cm", health.BMICategory(bmi), s.Profile.WeightKg, s.Profile.HeightCm)),
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderInsightsPanel(s daily.Snapshot, w int) string {
	rows := []string{titleStyle.Render("Insights")}
	for _, insight := range s.Insights() {
		rows = append(rows, "  "+accentStyle.Render("›")+" "+insight)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

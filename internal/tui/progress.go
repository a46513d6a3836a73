package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/healthtrackr/internal/daily"
	"github.com/sadopc/healthtrackr/internal/health"
)

type progressMetric int

const (
	metricSteps progressMetric = iota
	metricBurned
	metricConsumed
)

var metricNames = []string{"Steps", "Burned", "Consumed"}

type progressModel struct {
	tracker *daily.Tracker
	width   int
	height  int

	metric progressMetric
	days   int // entries per page
	offset int // pages back from the most recent

	chart barchart.Model
}

func newProgressModel(t *daily.Tracker, days int) progressModel {
	return progressModel{
		tracker: t,
		days:    days,
		chart:   barchart.New(60, 12),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.buildChart()
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if (p.offset+1)*p.days < len(p.tracker.History()) {
				p.offset++
			}
		case key.Matches(msg, keys.Right):
			if p.offset > 0 {
				p.offset--
			}
		case key.Matches(msg, keys.Up):
			p.metric = (p.metric + progressMetric(len(metricNames)) - 1) % progressMetric(len(metricNames))
		case key.Matches(msg, keys.Down):
			p.metric = (p.metric + 1) % progressMetric(len(metricNames))
		default:
			return p, nil
		}
		p.buildChart()
	}
	return p, nil
}

// page returns the history window currently shown, oldest first.
func (p progressModel) page() []daily.LogEntry {
	history := p.tracker.History()
	end := len(history) - p.offset*p.days
	if end <= 0 {
		return nil
	}
	start := max(0, end-p.days)
	return history[start:end]
}

func (p progressModel) value(e daily.LogEntry) int {
	switch p.metric {
	case metricBurned:
		return e.CaloriesBurned
	case metricConsumed:
		return e.CaloriesConsumed
	default:
		return e.Steps
	}
}

func (p progressModel) goal() int {
	g := p.tracker.Goals()
	switch p.metric {
	case metricBurned:
		return g.CaloriesBurn
	case metricConsumed:
		return g.CaloriesIntake
	default:
		return g.Steps
	}
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if p.height > 30 {
		chartHeight = 16
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, e := range p.page() {
		v := p.value(e)
		pct := health.ProgressPercentage(float64(v), float64(p.goal()))
		bars = append(bars, barchart.BarData{
			Label: dayLabel(e.Date),
			Values: []barchart.BarValue{{
				Name:  metricNames[p.metric],
				Value: float64(v),
				Style: levelStyle(pct),
			}},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon 02")
}

func (p progressModel) view() string {
	w := p.width - 4

	var tabs []string
	for i, name := range metricNames {
		if progressMetric(i) == p.metric {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Progress"), "  ", lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), "  ", p.rangeLabel(),
	)

	nav := mutedStyle.Render("  ←/→: older/newer  ↑/↓: switch metric")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", p.chart.View(), "", p.renderAverages(), "", p.renderTable(w), "", nav,
		),
	)
}

func (p progressModel) rangeLabel() string {
	page := p.page()
	if len(page) == 0 {
		return ""
	}
	return subtitleStyle.Render(fmt.Sprintf("%s to %s", formatDate(page[0].Date), formatDate(page[len(page)-1].Date)))
}

func (p progressModel) renderAverages() string {
	totals := p.tracker.Snapshot().HistoryTotals()
	avg := health.Averages(totals)
	return fmt.Sprintf("  %s  steps %s  ·  burned %s kcal  ·  consumed %s kcal  %s",
		titleStyle.Render("Daily average"),
		highlightStyle.Render(formatNumber(avg.Steps)),
		highlightStyle.Render(formatNumber(avg.CaloriesBurned)),
		highlightStyle.Render(formatNumber(avg.CaloriesConsumed)),
		mutedStyle.Render(fmt.Sprintf("(%d days)", len(totals))),
	)
}

func (p progressModel) renderTable(w int) string {
	page := p.page()
	if len(page) == 0 {
		return mutedStyle.Render("  No finished days yet. Days are archived at midnight or with r on the dashboard.")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-14s %10s %10s %10s %10s", "Date", "Steps", "Burned", "Consumed", "Balance")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-6, 58)))))

	for i := len(page) - 1; i >= 0; i-- {
		e := page[i]
		balance := health.CalorieBalance(e.CaloriesBurned, e.CaloriesConsumed)
		rows = append(rows, fmt.Sprintf("  %-14s %10s %10s %10s %10s",
			formatDate(e.Date),
			formatNumber(e.Steps),
			formatNumber(e.CaloriesBurned),
			formatNumber(e.CaloriesConsumed),
			formatNumber(balance),
		))
	}
	return strings.Join(rows, "\n")
}

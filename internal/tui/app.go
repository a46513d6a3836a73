package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/healthtrackr/internal/daily"
)

// Options tune the interactive views.
type Options struct {
	StepIncrement int
	HistoryDays   int
}

// App is the root Bubble Tea model.
type App struct {
	tracker *daily.Tracker
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	confirmReset  bool
	confirmCursor int

	dashboard dashboardModel
	meals     mealsModel
	progress  progressModel
	profile   profileModel

	help   help.Model
	status string
}

func NewApp(t *daily.Tracker, opts Options) App {
	if opts.StepIncrement <= 0 {
		opts.StepIncrement = 1000
	}
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 7
	}

	h := help.New()
	h.ShowAll = false

	return App{
		tracker:    t,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(t, opts.StepIncrement),
		meals:      newMealsModel(t),
		progress:   newProgressModel(t, opts.HistoryDays),
		profile:    newProfileModel(t),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd wakes the app once a minute to notice midnight.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// checkRollover runs on the update loop; the tracker is not safe for
// concurrent use so it must not move into a command goroutine.
func (a App) checkRollover() tea.Cmd {
	rolled, err := a.tracker.CheckRollover()
	if err != nil {
		return errorCmd(err)
	}
	if rolled {
		date := a.tracker.Today()
		return func() tea.Msg { return dayRolledMsg{date: date} }
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.meals.setSize(a.width, contentHeight)
		a.progress.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.confirmReset {
			return a.updateResetConfirm(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Reset):
			a.confirmReset = true
			a.confirmCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewMeals
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewProgress
			a.progress.buildChart()
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewProfile
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewProgress {
				a.progress.buildChart()
			}
			return a, nil
		}

	case tickMsg:
		return a, tea.Batch(tickCmd(), a.checkRollover())

	case dayRolledMsg:
		a.status = "New day started: " + formatDate(msg.date)
		a.progress.offset = 0
		a.progress.buildChart()
		return a, nil

	case resetDoneMsg:
		a.status = "Day archived. Counters reset."
		a.progress.offset = 0
		a.progress.buildChart()
		return a, nil

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.status = errorStyle.Render(msg.text)
		}
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewMeals:
		a.meals, cmd = a.meals.update(msg)
	case viewProgress:
		a.progress, cmd = a.progress.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewMeals:
		return a.meals.formActive
	case viewProfile:
		return a.profile.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewMeals:
		content = a.meals.view()
	case viewProgress:
		content = a.progress.view()
	case viewProfile:
		content = a.profile.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.confirmReset {
		content = a.renderResetConfirm()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("healthtrackr")
	date := mutedStyle.Render(" " + formatDate(a.tracker.Today()))
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(date)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, date, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	right := ""
	if a.status != "" {
		right = mutedStyle.Render(" " + a.status)
	}

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var resetChoices = []string{"Cancel", "End day and reset"}

func (a App) renderResetConfirm() string {
	rows := []string{
		titleStyle.Render("End Day"),
		"",
		"Archive today's totals to history and reset the counters?",
		"",
	}
	for i, c := range resetChoices {
		cursor := "  "
		style := normalItemStyle
		if i == a.confirmCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+c))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: confirm  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateResetConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.confirmCursor > 0 {
			a.confirmCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.confirmCursor < len(resetChoices)-1 {
			a.confirmCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.confirmReset = false
		if a.confirmCursor == 1 {
			return a, a.doReset()
		}
	case key.Matches(msg, keys.Back):
		a.confirmReset = false
	}
	return a, nil
}

func (a App) doReset() tea.Cmd {
	if err := a.tracker.ResetDailyData(); err != nil {
		return errorCmd(err)
	}
	return func() tea.Msg { return resetDoneMsg{} }
}

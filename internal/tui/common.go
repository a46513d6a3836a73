package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/healthtrackr/internal/daily"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewMeals
	viewProgress
	viewProfile
)

var viewNames = []string{"Dashboard", "Meals", "Progress", "Profile"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// dayRolledMsg is sent when the calendar day changed while the app was open.
type dayRolledMsg struct {
	date string
}

type resetDoneMsg struct{}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// errorCmd turns a tracker error into a status-bar message. Rejected input
// and failed saves read differently to the user.
func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		switch {
		case errors.Is(err, daily.ErrInvalid):
			return statusMsg{text: fmt.Sprintf("Invalid input: %v", err), isError: true}
		case errors.Is(err, daily.ErrStorage):
			return statusMsg{text: "Not saved: storage unavailable", isError: true}
		default:
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	return humanize.Comma(int64(n))
}

// formatDate renders an ISO date as "Mon, Jan 2".
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

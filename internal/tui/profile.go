package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/healthtrackr/internal/daily"
	"github.com/sadopc/healthtrackr/internal/health"
)

type profileModel struct {
	tracker *daily.Tracker
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formWeight *string
	formHeight *string
	stepsGoal  *string
	intakeGoal *string
	burnGoal   *string
}

func newProfileModel(t *daily.Tracker) profileModel {
	w, h, sg, ig, bg := "", "", "", "", ""
	return profileModel{
		tracker:    t,
		formWeight: &w,
		formHeight: &h,
		stepsGoal:  &sg,
		intakeGoal: &ig,
		burnGoal:   &bg,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return p.showForm()
		}
	}
	return p, nil
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	prof := p.tracker.Profile()
	goals := p.tracker.Goals()
	*p.formWeight = strconv.FormatFloat(prof.WeightKg, 'f', -1, 64)
	*p.formHeight = strconv.FormatFloat(prof.HeightCm, 'f', -1, 64)
	*p.stepsGoal = strconv.Itoa(goals.Steps)
	*p.intakeGoal = strconv.Itoa(goals.CaloriesIntake)
	*p.burnGoal = strconv.Itoa(goals.CaloriesBurn)

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Weight (kg)").Value(p.formWeight).Validate(validateMeasure),
			huh.NewInput().Title("Height (cm)").Value(p.formHeight).Validate(validateMeasure),
		).Title("Body"),
		huh.NewGroup(
			huh.NewInput().Title("Daily steps").Value(p.stepsGoal).Validate(validateGoal),
			huh.NewInput().Title("Calorie intake (kcal)").Value(p.intakeGoal).Validate(validateGoal),
			huh.NewInput().Title("Calorie burn (kcal)").Value(p.burnGoal).Validate(validateGoal),
		).Title("Goals"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		return p, p.save()
	}

	return p, cmd
}

// save applies the form. Parsing rejects every bad field before anything is
// written. A failed write still applies both halves in memory.
func (p profileModel) save() tea.Cmd {
	weight, err1 := parseMeasure(*p.formWeight)
	height, err2 := parseMeasure(*p.formHeight)
	steps, err3 := parseGoal(*p.stepsGoal)
	intake, err4 := parseGoal(*p.intakeGoal)
	burn, err5 := parseGoal(*p.burnGoal)
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return errorCmd(fmt.Errorf("%w: %v", daily.ErrInvalid, err))
	}

	err := p.tracker.SetProfile(weight, height)
	if errors.Is(err, daily.ErrInvalid) {
		return errorCmd(err)
	}
	goalsErr := p.tracker.SetGoals(daily.Goals{Steps: steps, CaloriesIntake: intake, CaloriesBurn: burn})
	if err := errors.Join(err, goalsErr); err != nil {
		return errorCmd(err)
	}
	return statusCmd("Profile saved")
}

func parseMeasure(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("must be a number")
	}
	if v <= 0 {
		return 0, errors.New("must be greater than zero")
	}
	return v, nil
}

func parseGoal(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	if v <= 0 {
		return 0, errors.New("must be greater than zero")
	}
	return v, nil
}

func validateMeasure(s string) error {
	_, err := parseMeasure(s)
	return err
}

func validateGoal(s string) error {
	_, err := parseGoal(s)
	return err
}

func (p profileModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Edit Profile")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	prof := p.tracker.Profile()
	goals := p.tracker.Goals()
	bmi := prof.BMI()

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(22).Render(label), highlightStyle.Render(value))
	}

	rows := []string{
		titleStyle.Render("Profile"),
		"",
		row("Weight", fmt.Sprintf("%.1f kg", prof.WeightKg)),
		row("Height", fmt.Sprintf("%.0f cm", prof.HeightCm)),
		row("BMI", fmt.Sprintf("%.1f (%s)", bmi, health.BMICategory(bmi))),
		"",
		titleStyle.Render("Daily Goals"),
		"",
		row("Steps", formatNumber(goals.Steps)),
		row("Calorie intake", formatNumber(goals.CaloriesIntake)+" kcal"),
		row("Calorie burn", formatNumber(goals.CaloriesBurn)+" kcal"),
		"",
		mutedStyle.Render("Press enter to edit"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

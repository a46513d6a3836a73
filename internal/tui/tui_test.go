package tui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/healthtrackr/internal/daily"
	"github.com/sadopc/healthtrackr/internal/health"
	"github.com/sadopc/healthtrackr/internal/store"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) nextDay() { c.t = c.t.AddDate(0, 0, 1) }

func newTestTracker(t *testing.T) (*daily.Tracker, *testClock) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	clk := &testClock{t: time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local)}
	tr := daily.New(s, daily.WithClock(clk.now), daily.WithLogger(log))
	if err := tr.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return tr, clk
}

// seedHistory archives n days with increasing step counts.
func seedHistory(t *testing.T, tr *daily.Tracker, clk *testClock, n int) {
	t.Helper()
	for i := range n {
		if err := tr.SetSteps((i + 1) * 1000); err != nil {
			t.Fatal(err)
		}
		clk.nextDay()
		if _, err := tr.CheckRollover(); err != nil {
			t.Fatal(err)
		}
	}
}

// readOnlyKV serves reads but rejects every write, like a full disk.
type readOnlyKV struct{}

func (readOnlyKV) Get(string) (string, bool, error) { return "", false, nil }
func (readOnlyKV) Set(string, string) error         { return errors.New("disk full") }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sizedApp(t *testing.T) (App, *daily.Tracker, *testClock) {
	t.Helper()
	tr, clk := newTestTracker(t)
	app := NewApp(tr, Options{StepIncrement: 1000, HistoryDays: 7})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), tr, clk
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1,234"},
		{-1500, "-1,500"},
		{1000000, "1,000,000"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.n); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2024-03-05"); got != "Tue, Mar 5" {
		t.Fatalf("formatDate = %q", got)
	}
	if got := formatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("bad dates should pass through, got %q", got)
	}
}

func TestDayLabel(t *testing.T) {
	if got := dayLabel("2024-03-05"); got != "Tue 05" {
		t.Fatalf("dayLabel = %q", got)
	}
	if got := dayLabel(""); got != "" {
		t.Fatalf("empty date should stay empty, got %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(42.4); got != "42%" {
		t.Fatalf("formatPercent = %q", got)
	}
	if got := formatPercent(100); got != "100%" {
		t.Fatalf("formatPercent = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("salad", 10); got != "salad" {
		t.Fatalf("short strings unchanged, got %q", got)
	}
	if got := truncate("chicken caesar salad", 8); got != "chicken…" {
		t.Fatalf("truncate = %q", got)
	}
}

// ============================================================
// Form parsing
// ============================================================

func TestParseCalories(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"350", 350, false},
		{" 120.5 ", 120.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-10", 0, true},
	}
	for _, tt := range tests {
		got, err := parseCalories(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCalories(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCalories(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateMealName(t *testing.T) {
	if validateMealName("Oatmeal") != nil {
		t.Fatal("non-empty name should be valid")
	}
	if validateMealName("   ") == nil {
		t.Fatal("blank name should be rejected")
	}
}

func TestParseMeasureAndGoal(t *testing.T) {
	if v, err := parseMeasure("72.5"); err != nil || v != 72.5 {
		t.Fatalf("parseMeasure = %v, %v", v, err)
	}
	for _, bad := range []string{"", "x", "0", "-3", "Inf", "NaN"} {
		if _, err := parseMeasure(bad); err == nil {
			t.Errorf("parseMeasure(%q) should fail", bad)
		}
	}
	if v, err := parseGoal("8000"); err != nil || v != 8000 {
		t.Fatalf("parseGoal = %v, %v", v, err)
	}
	for _, bad := range []string{"", "1.5", "0", "-100"} {
		if _, err := parseGoal(bad); err == nil {
			t.Errorf("parseGoal(%q) should fail", bad)
		}
	}
}

func TestErrorCmdClassifies(t *testing.T) {
	msg := errorCmd(daily.ErrInvalid)().(statusMsg)
	if !msg.isError || !strings.HasPrefix(msg.text, "Invalid input") {
		t.Fatalf("unexpected status for invalid input: %+v", msg)
	}
	msg = errorCmd(daily.ErrStorage)().(statusMsg)
	if !msg.isError || !strings.Contains(msg.text, "Not saved") {
		t.Fatalf("unexpected status for storage error: %+v", msg)
	}
}

// ============================================================
// View names
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	if viewNames[viewDashboard] != "Dashboard" || viewNames[viewProfile] != "Profile" {
		t.Fatalf("unexpected view names: %v", viewNames)
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardAddSteps(t *testing.T) {
	tr, _ := newTestTracker(t)
	d := newDashboardModel(tr, 1000)

	d, cmd := d.update(runeKey('+'))
	if cmd == nil {
		t.Fatal("adding steps should report a status")
	}
	if tr.Steps() != 1000 {
		t.Fatalf("steps = %d, want 1000", tr.Steps())
	}
	if want := health.CaloriesFromSteps(1000, 70); tr.CaloriesBurned() != want {
		t.Fatalf("burned = %d, want %d", tr.CaloriesBurned(), want)
	}

	d, _ = d.update(runeKey('-'))
	d, _ = d.update(runeKey('-'))
	if tr.Steps() != 0 {
		t.Fatalf("steps should not go below zero, got %d", tr.Steps())
	}
}

func TestDashboardView(t *testing.T) {
	tr, _ := newTestTracker(t)
	d := newDashboardModel(tr, 1000)
	d.setSize(100, 40)

	out := d.view()
	for _, want := range []string{"Steps", "Calories", "BMI", "Insights", health.InsightMoreActive} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}

	d.setSize(10, 10)
	if d.view() != "Terminal too small" {
		t.Fatal("narrow terminals should show a notice")
	}
}

// ============================================================
// Meals
// ============================================================

func TestMealsSubmit(t *testing.T) {
	tr, _ := newTestTracker(t)
	m := newMealsModel(tr)

	*m.formName = "Oatmeal"
	*m.formCalories = "350"
	*m.formCategory = string(daily.Breakfast)
	m, cmd := m.submitMeal()
	if cmd == nil {
		t.Fatal("submit should report a status")
	}
	if msg := cmd().(statusMsg); msg.isError {
		t.Fatalf("unexpected error: %s", msg.text)
	}
	if len(tr.Meals()) != 1 || tr.CaloriesConsumed() != 350 {
		t.Fatalf("meal not logged: %+v", tr.Meals())
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should point at the new meal, got %d", m.cursor)
	}
}

func TestMealsSubmitRejectsBadInput(t *testing.T) {
	tr, _ := newTestTracker(t)
	m := newMealsModel(tr)

	*m.formName = "Soup"
	*m.formCalories = "lots"
	_, cmd := m.submitMeal()
	if msg := cmd().(statusMsg); !msg.isError {
		t.Fatal("bad calories should surface an error")
	}
	if len(tr.Meals()) != 0 {
		t.Fatal("no meal should be logged")
	}
}

func TestMealsDelete(t *testing.T) {
	tr, _ := newTestTracker(t)
	for _, name := range []string{"Eggs", "Salad"} {
		if _, err := tr.AddMeal(daily.MealInput{Name: name, Calories: 200, Category: daily.Lunch}); err != nil {
			t.Fatal(err)
		}
	}

	m := newMealsModel(tr)
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, cmd := m.update(runeKey('d'))
	if cmd == nil {
		t.Fatal("delete should report a status")
	}
	meals := tr.Meals()
	if len(meals) != 1 || meals[0].Name != "Eggs" {
		t.Fatalf("wrong meal removed: %+v", meals)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to the last meal, got %d", m.cursor)
	}

	m, _ = m.update(runeKey('d'))
	if _, cmd := m.update(runeKey('d')); cmd != nil {
		t.Fatal("delete on an empty list should do nothing")
	}
}

func TestMealsNewOpensForm(t *testing.T) {
	tr, _ := newTestTracker(t)
	m := newMealsModel(tr)
	m.setSize(100, 30)

	m, _ = m.update(runeKey('n'))
	if !m.formActive || m.form == nil {
		t.Fatal("n should open the meal form")
	}
	if !strings.Contains(m.view(), "Log Meal") {
		t.Fatal("form view should be shown")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Progress
// ============================================================

func TestProgressPaging(t *testing.T) {
	tr, clk := newTestTracker(t)
	seedHistory(t, tr, clk, 10)

	p := newProgressModel(tr, 7)
	p.setSize(100, 30)

	page := p.page()
	if len(page) != 7 {
		t.Fatalf("first page has %d entries, want 7", len(page))
	}
	if page[6].Steps != 10000 {
		t.Fatalf("newest entry should be last, got %+v", page[6])
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyLeft})
	if p.offset != 1 || len(p.page()) != 3 {
		t.Fatalf("older page: offset %d, len %d", p.offset, len(p.page()))
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyLeft})
	if p.offset != 1 {
		t.Fatal("cannot page past the oldest entry")
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyRight})
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyRight})
	if p.offset != 0 {
		t.Fatalf("offset = %d, want 0", p.offset)
	}
}

func TestProgressMetricCycle(t *testing.T) {
	tr, _ := newTestTracker(t)
	p := newProgressModel(tr, 7)

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyDown})
	if p.metric != metricBurned {
		t.Fatalf("metric = %d, want burned", p.metric)
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyUp})
	if p.metric != metricConsumed {
		t.Fatalf("metric should wrap to consumed, got %d", p.metric)
	}
}

func TestProgressViewEmptyAndFilled(t *testing.T) {
	tr, clk := newTestTracker(t)
	p := newProgressModel(tr, 7)
	p.setSize(100, 30)
	if !strings.Contains(p.view(), "No finished days yet") {
		t.Fatal("empty history should show a hint")
	}

	seedHistory(t, tr, clk, 2)
	p.buildChart()
	out := p.view()
	if !strings.Contains(out, "Daily average") || !strings.Contains(out, "2,000") {
		t.Fatalf("filled view missing totals:\n%s", out)
	}
}

// ============================================================
// Profile
// ============================================================

func TestProfileSave(t *testing.T) {
	tr, _ := newTestTracker(t)
	p := newProfileModel(tr)

	*p.formWeight = "80"
	*p.formHeight = "180"
	*p.stepsGoal = "12000"
	*p.intakeGoal = "2200"
	*p.burnGoal = "600"
	if msg := p.save()().(statusMsg); msg.isError {
		t.Fatalf("unexpected error: %s", msg.text)
	}
	if got := tr.Profile(); got.WeightKg != 80 || got.HeightCm != 180 {
		t.Fatalf("profile = %+v", got)
	}
	if got := tr.Goals(); got != (daily.Goals{Steps: 12000, CaloriesIntake: 2200, CaloriesBurn: 600}) {
		t.Fatalf("goals = %+v", got)
	}
}

func TestProfileSaveRejectsWithoutPartialWrite(t *testing.T) {
	tr, _ := newTestTracker(t)
	p := newProfileModel(tr)

	*p.formWeight = "80"
	*p.formHeight = "180"
	*p.stepsGoal = "0"
	*p.intakeGoal = "2200"
	*p.burnGoal = "600"
	if msg := p.save()().(statusMsg); !msg.isError {
		t.Fatal("zero goal should be rejected")
	}
	if tr.Profile() != daily.DefaultProfile() || tr.Goals() != daily.DefaultGoals() {
		t.Fatal("rejected form must not change profile or goals")
	}
}

func TestProfileSaveStorageFailureAppliesBothHalves(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	tr := daily.New(readOnlyKV{}, daily.WithLogger(log))
	if err := tr.Load(); !errors.Is(err, daily.ErrStorage) {
		t.Fatalf("load on a read-only store: %v", err)
	}
	p := newProfileModel(tr)

	*p.formWeight = "80"
	*p.formHeight = "180"
	*p.stepsGoal = "12000"
	*p.intakeGoal = "2200"
	*p.burnGoal = "600"
	msg := p.save()().(statusMsg)
	if !msg.isError || !strings.Contains(msg.text, "Not saved") {
		t.Fatalf("failed write should be reported, got %+v", msg)
	}
	if got := tr.Profile(); got.WeightKg != 80 || got.HeightCm != 180 {
		t.Fatalf("profile = %+v", got)
	}
	if got := tr.Goals(); got != (daily.Goals{Steps: 12000, CaloriesIntake: 2200, CaloriesBurn: 600}) {
		t.Fatalf("goals should still be applied, got %+v", got)
	}
}

func TestProfileEditOpensForm(t *testing.T) {
	tr, _ := newTestTracker(t)
	p := newProfileModel(tr)
	p.setSize(100, 30)

	if !strings.Contains(p.view(), "Daily Goals") {
		t.Fatal("profile view should list goals")
	}
	p, _ = p.update(runeKey('e'))
	if !p.formActive {
		t.Fatal("e should open the form")
	}
	if *p.stepsGoal != "10000" {
		t.Fatalf("form should be prefilled, got %q", *p.stepsGoal)
	}
}

// ============================================================
// App
// ============================================================

func TestNewApp(t *testing.T) {
	tr, _ := newTestTracker(t)
	app := NewApp(tr, Options{})

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp || app.confirmReset {
		t.Fatal("overlays should be hidden by default")
	}
	if app.dashboard.increment != 1000 || app.progress.days != 7 {
		t.Fatal("zero options should fall back to defaults")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _, _ := sizedApp(t)

	views := []viewState{viewDashboard, viewMeals, viewProgress, viewProfile}
	for _, v := range views {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _, _ := sizedApp(t)

	m, _ := app.Update(runeKey('3'))
	app = m.(App)
	if app.activeView != viewProgress {
		t.Fatalf("activeView = %d, want progress", app.activeView)
	}
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewProfile {
		t.Fatalf("activeView = %d, want profile", app.activeView)
	}
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(App).activeView != viewDashboard {
		t.Fatal("tab should wrap to the dashboard")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _, _ := sizedApp(t)

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	if !strings.Contains(header, "Tue, Mar 5") {
		t.Fatal("header should show today's date")
	}
}

func TestAppLoadingState(t *testing.T) {
	tr, _ := newTestTracker(t)
	app := NewApp(tr, Options{})
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _, _ := sizedApp(t)

	m, _ := app.Update(statusMsg{text: "test status"})
	if !strings.Contains(m.(App).renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppResetConfirm(t *testing.T) {
	app, tr, _ := sizedApp(t)
	if err := tr.SetSteps(4200); err != nil {
		t.Fatal(err)
	}

	m, _ := app.Update(runeKey('r'))
	app = m.(App)
	if !app.confirmReset {
		t.Fatal("r should open the confirmation")
	}
	if !strings.Contains(app.View(), "End Day") {
		t.Fatal("confirmation should replace the content")
	}

	// Cancel is the default choice.
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = m.(App)
	if app.confirmReset || tr.Steps() != 4200 {
		t.Fatal("cancel should close without resetting")
	}

	m, _ = app.Update(runeKey('r'))
	m, _ = m.(App).Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.(App).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("confirmed reset should report back")
	}
	if tr.Steps() != 0 {
		t.Fatalf("steps = %d after reset", tr.Steps())
	}
	history := tr.History()
	if len(history) != 1 || history[0].Steps != 4200 {
		t.Fatalf("day not archived: %+v", history)
	}

	m, _ = m.(App).Update(cmd())
	if !strings.Contains(m.(App).status, "archived") {
		t.Fatalf("status = %q", m.(App).status)
	}
}

func TestAppTickRollsOverDay(t *testing.T) {
	app, tr, clk := sizedApp(t)
	if err := tr.SetSteps(3000); err != nil {
		t.Fatal(err)
	}

	m, cmd := app.Update(tickMsg(clk.t))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if len(tr.History()) != 0 {
		t.Fatal("same-day tick must not archive")
	}

	clk.nextDay()
	m, _ = m.(App).Update(tickMsg(clk.t))
	if tr.Steps() != 0 || len(tr.History()) != 1 {
		t.Fatalf("tick after midnight should roll over: steps %d, history %+v", tr.Steps(), tr.History())
	}

	m, _ = m.(App).Update(dayRolledMsg{date: tr.Today()})
	if !strings.Contains(m.(App).status, "New day") {
		t.Fatalf("status = %q", m.(App).status)
	}
}

func TestAppFormCapturesKeys(t *testing.T) {
	app, _, _ := sizedApp(t)

	m, _ := app.Update(runeKey('2'))
	m, _ = m.(App).Update(runeKey('n'))
	app = m.(App)
	if !app.isFormActive() {
		t.Fatal("meal form should be active")
	}
	m, _ = app.Update(runeKey('q'))
	if m.(App).activeView != viewMeals || !m.(App).isFormActive() {
		t.Fatal("keys should go to the form while it is open")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles
// ============================================================

func TestLevelStyle(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{10, "error"},
		{50, "warning"},
		{90, "success"},
	}
	styles := map[string]any{
		"error":   errorStyle.GetForeground(),
		"warning": warningStyle.GetForeground(),
		"success": successStyle.GetForeground(),
	}
	for _, tt := range tests {
		if got := levelStyle(tt.pct).GetForeground(); got != styles[tt.want] {
			t.Errorf("levelStyle(%v) = %v, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"bigNumber", func() string { return bigNumberStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"categoryDot", func() string { return categoryDot("lunch") }},
	}
	for _, s := range styles {
		if s.fn() == "" {
			t.Errorf("%s style rendered empty", s.name)
		}
	}
}

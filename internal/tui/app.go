// internal/tui/app.go
//
// This is the terminal UI for the roadmap builder.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the roadmap being edited plus a little UI state
// 2. Update: turns key presses into new roadmap states
// 3. View: renders either the edit list or the timeline
//
// The roadmap itself is a value (roadmap.State); every edit replaces it with a
// new one, so an export command can render a snapshot while editing goes on.

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LearnData-lab/RoadmapBuilder/internal/export"
	"github.com/LearnData-lab/RoadmapBuilder/internal/logbook"
	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

// Mode selects which view is on screen.
type Mode int

const (
	ModeEdit     Mode = iota // one editable row per initiative
	ModeTimeline             // read-only quarter columns
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "List View"
	case ModeTimeline:
		return "Timeline View"
	}
	return "Unknown View"
}

// editTarget is what the text input is currently bound to.
type editTarget int

const (
	editNone editTarget = iota
	editField
	editNorthStar
)

type exportFinishedMsg struct {
	path string
	err  error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook attaches the activity log.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithSaver sets where exports are written.
func WithSaver(s *export.Saver) AppOption {
	return func(a *App) {
		if s != nil {
			a.saver = s
		}
	}
}

// WithMode picks the view shown on start.
func WithMode(m Mode) AppOption {
	return func(a *App) {
		a.mode = m
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	roadmap roadmap.State
	mode    Mode

	// Edit-list cursor: selected initiative and focused field.
	cursor int
	field  int

	editing editTarget
	input   textinput.Model

	saver   *export.Saver
	logbook *logbook.Logbook

	keys      keyMap
	help      help.Model
	statusMsg string

	width  int
	height int
}

// NewApp creates an App editing the given roadmap.
func NewApp(state roadmap.State, opts ...AppOption) *App {
	input := textinput.New()
	input.Prompt = "› "
	app := &App{
		roadmap: state,
		mode:    ModeEdit,
		input:   input,
		saver:   export.NewSaver("."),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.logInfo("Session opened · %d initiative(s)", state.Len())
	return app
}

// Roadmap returns the current roadmap state.
func (a *App) Roadmap() roadmap.State {
	return a.roadmap
}

// Mode returns the active view.
func (a *App) Mode() Mode {
	return a.mode
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.input.Width = max(10, msg.Width-30)
		return a, nil

	case exportFinishedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Export failed: %v", msg.err)
			a.logError("Export failed: %v", msg.err)
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Exported timeline → %s", msg.path)
		a.logInfo("Exported timeline to %s", msg.path)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.editing != editNone {
			return a.updateEditing(msg)
		}
		return a.handleKey(msg)
	}

	if a.editing != editNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logInfo("Session closed")
		return a, tea.Quit
	case key.Matches(msg, a.keys.ToggleView):
		return a.toggleMode()
	case key.Matches(msg, a.keys.Export):
		a.statusMsg = "Exporting timeline..."
		return a, a.exportCmd()
	case key.Matches(msg, a.keys.NorthStar):
		return a, a.beginEdit(editNorthStar, a.roadmap.NorthStar)
	}
	if a.mode != ModeEdit {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Add):
		return a.addInitiative()
	case key.Matches(msg, a.keys.Delete):
		return a.deleteSelected()
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < a.roadmap.Len()-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.NextField):
		a.field = (a.field + 1) % len(roadmap.Fields())
	case key.Matches(msg, a.keys.PrevField):
		a.field = (a.field - 1 + len(roadmap.Fields())) % len(roadmap.Fields())
	case key.Matches(msg, a.keys.NextValue):
		a.cycleSelected(1)
	case key.Matches(msg, a.keys.PrevValue):
		a.cycleSelected(-1)
	case key.Matches(msg, a.keys.MoveUp):
		a.moveSelected(-1)
	case key.Matches(msg, a.keys.MoveDown):
		a.moveSelected(1)
	case key.Matches(msg, a.keys.Edit):
		return a, a.editSelected()
	}
	return a, nil
}

func (a *App) toggleMode() (tea.Model, tea.Cmd) {
	if a.mode == ModeEdit {
		a.mode = ModeTimeline
	} else {
		a.mode = ModeEdit
	}
	a.statusMsg = a.mode.String()
	return a, nil
}

func (a *App) addInitiative() (tea.Model, tea.Cmd) {
	next, init := a.roadmap.Add()
	a.roadmap = next
	a.cursor = next.Len() - 1
	a.field = 0
	a.statusMsg = "Initiative added"
	a.logInfo("Added initiative %s", init.ID)
	return a, nil
}

func (a *App) deleteSelected() (tea.Model, tea.Cmd) {
	init, ok := a.selected()
	if !ok {
		return a, nil
	}
	a.roadmap = a.roadmap.Delete(init.ID)
	if a.cursor >= a.roadmap.Len() {
		a.cursor = max(0, a.roadmap.Len()-1)
	}
	a.statusMsg = fmt.Sprintf("Deleted %q", init.DisplayTitle())
	a.logInfo("Deleted initiative %s (%s)", init.ID, init.DisplayTitle())
	return a, nil
}

func (a *App) moveSelected(delta int) {
	init, ok := a.selected()
	if !ok {
		return
	}
	a.roadmap = a.roadmap.Move(init.ID, delta)
	for i, candidate := range a.roadmap.Initiatives {
		if candidate.ID == init.ID {
			a.cursor = i
			break
		}
	}
}

// cycleSelected steps an enumerated field through its registry. Quarter and
// status can only ever hold registry members this way.
func (a *App) cycleSelected(delta int) {
	init, ok := a.selected()
	if !ok {
		return
	}
	f := a.focusedField()
	var value string
	switch f {
	case roadmap.FieldQuarter:
		value = string(roadmap.NextQuarter(init.Quarter, delta))
	case roadmap.FieldStatus:
		value = string(roadmap.NextStatus(init.Status, delta))
	default:
		return
	}
	a.apply(init.ID, f, value)
}

func (a *App) editSelected() tea.Cmd {
	init, ok := a.selected()
	if !ok {
		return nil
	}
	f := a.focusedField()
	if f.Enumerated() {
		a.cycleSelected(1)
		return nil
	}
	value, _ := init.Get(f)
	return a.beginEdit(editField, value)
}

func (a *App) beginEdit(target editTarget, value string) tea.Cmd {
	a.editing = target
	a.input.SetValue(value)
	a.input.CursorEnd()
	if target == editNorthStar {
		a.input.Placeholder = "What's your North Star metric or strategic goal?"
	} else {
		a.input.Placeholder = placeholderFor(a.focusedField())
	}
	return a.input.Focus()
}

// updateEditing feeds keys to the text input and writes every change straight
// through to the roadmap.
func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Done) {
		a.finishEdit()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	value := a.input.Value()
	switch a.editing {
	case editNorthStar:
		a.roadmap = a.roadmap.SetNorthStar(value)
	case editField:
		if init, ok := a.selected(); ok {
			a.apply(init.ID, a.focusedField(), value)
		}
	}
	return a, cmd
}

func (a *App) finishEdit() {
	switch a.editing {
	case editNorthStar:
		a.logInfo("North star updated")
	case editField:
		if init, ok := a.selected(); ok {
			a.logInfo("Edited %s of %s", a.focusedField(), init.ID)
		}
	}
	a.editing = editNone
	a.input.Blur()
	a.input.Reset()
}

func (a *App) apply(id string, f roadmap.Field, value string) {
	next, err := a.roadmap.Update(id, f, value)
	if err != nil {
		// Enumerated fields are only ever set from their registries.
		if errors.Is(err, roadmap.ErrInvalidQuarter) || errors.Is(err, roadmap.ErrInvalidStatus) {
			a.logError("Rejected %s=%q: %v", f, value, err)
		}
		a.statusMsg = err.Error()
		return
	}
	a.roadmap = next
}

func (a *App) exportCmd() tea.Cmd {
	snapshot := a.roadmap
	saver := a.saver
	return func() tea.Msg {
		path, err := saver.Save(export.Render(snapshot))
		return exportFinishedMsg{path: path, err: err}
	}
}

func (a *App) selected() (roadmap.Initiative, bool) {
	if a.cursor < 0 || a.cursor >= a.roadmap.Len() {
		return roadmap.Initiative{}, false
	}
	return a.roadmap.Initiatives[a.cursor], true
}

func (a *App) focusedField() roadmap.Field {
	return roadmap.Fields()[a.field]
}

// summary is the per-status tally shown in the timeline footer.
func (a *App) summary() []roadmap.Tally {
	return roadmap.CountByStatus(a.roadmap.Initiatives)
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

func placeholderFor(f roadmap.Field) string {
	switch f {
	case roadmap.FieldTitle:
		return "What needs to be done?"
	case roadmap.FieldOwner:
		return "Who owns this?"
	case roadmap.FieldDescription:
		return "Brief description of the initiative"
	case roadmap.FieldDependencies:
		return "What does this depend on?"
	case roadmap.FieldGaps:
		return "What do we still need to figure out?"
	}
	return strings.TrimSpace(f.Label())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

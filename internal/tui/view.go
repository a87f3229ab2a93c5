package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LearnData-lab/RoadmapBuilder/internal/export"
	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	northStarStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#CCCCCC")).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3b82f6")).
			PaddingLeft(1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EEEEEE"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	tabActive    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2563eb")).Padding(0, 1)
	tabInactive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Padding(0, 1)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

// statusBadge draws a status with its registry colors. The SVG export reads
// the same palette, so both renderings agree.
func statusBadge(info roadmap.StatusInfo) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(info.Palette.Text)).
		Background(lipgloss.Color(info.Palette.Background)).
		Bold(true).
		Padding(0, 1).
		Render(info.Label)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 120
	}
	var body string
	switch a.mode {
	case ModeTimeline:
		body = a.renderTimeline(width - 4)
	default:
		body = a.renderEditList(width - 4)
	}
	sections := []string{
		a.renderHeader(),
		panelStyle.Width(max(20, width-2)).Render(body),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.statusMsg != "" {
		sections = append(sections, mutedStyle.Render(a.statusMsg))
	}
	sections = append(sections, a.help.View(helpKeys{keys: a.keys, mode: a.mode, editing: a.editing != editNone}))
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("★ " + strings.ToUpper(export.Title))
	tabs := make([]string, 0, 2)
	for _, m := range []Mode{ModeEdit, ModeTimeline} {
		if m == a.mode {
			tabs = append(tabs, tabActive.Render(m.String()))
		} else {
			tabs = append(tabs, tabInactive.Render(m.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, head, "   ", strings.Join(tabs, " "))
}

func (a *App) renderNorthStar(width int) string {
	if a.editing == editNorthStar {
		return lipgloss.JoinVertical(lipgloss.Left,
			sectionStyle.Render("North Star Goal"),
			a.input.View(),
		)
	}
	text := a.roadmap.NorthStar
	if strings.TrimSpace(text) == "" {
		text = mutedStyle.Render("No north star yet. Press \"n\" to set one.")
	}
	return northStarStyle.Width(max(20, width)).Render(text)
}

func (a *App) renderLegend() string {
	badges := make([]string, 0, len(roadmap.Statuses()))
	for _, info := range roadmap.Statuses() {
		badges = append(badges, statusBadge(info))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Status Legend"),
		strings.Join(badges, " "),
	)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, _ := a.logbook.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

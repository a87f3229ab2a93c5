package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

// EmptyListMessage is shown in the edit list when there is nothing to edit.
const EmptyListMessage = `No initiatives yet. Press "a" to add one.`

var (
	rowStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	rowSelectedStyle = rowStyle.BorderForeground(lipgloss.Color("#5B8DEF"))
	fieldLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Width(34)
	fieldFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Width(34)
)

func (a *App) renderEditList(width int) string {
	sections := []string{
		titleStyle.Render("North Star Roadmap"),
		a.renderNorthStar(width),
		"",
		a.renderLegend(),
		"",
	}
	if a.roadmap.Len() == 0 {
		sections = append(sections, mutedStyle.Render(EmptyListMessage))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
	for i, init := range a.roadmap.Initiatives {
		sections = append(sections, a.renderRow(i, init, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderRow(idx int, init roadmap.Initiative, width int) string {
	selected := idx == a.cursor
	lines := make([]string, 0, len(roadmap.Fields())+1)
	lines = append(lines, fmt.Sprintf("#%d", idx+1))
	for fi, f := range roadmap.Fields() {
		focused := selected && fi == a.field
		label := fieldLabelStyle.Render(f.Label())
		if focused {
			label = fieldFocusStyle.Render("▸ " + f.Label())
		}
		lines = append(lines, label+a.renderFieldValue(init, f, focused))
	}
	style := rowStyle
	if selected {
		style = rowSelectedStyle
	}
	return style.Width(max(20, width-2)).Render(strings.Join(lines, "\n"))
}

func (a *App) renderFieldValue(init roadmap.Initiative, f roadmap.Field, focused bool) string {
	if focused && a.editing == editField {
		return a.input.View()
	}
	switch f {
	case roadmap.FieldStatus:
		value := statusBadge(init.Status.Info())
		if focused {
			value = "‹ " + value + " ›"
		}
		return value
	case roadmap.FieldQuarter:
		if focused {
			return "‹ " + string(init.Quarter) + " ›"
		}
		return string(init.Quarter)
	}
	value, _ := init.Get(f)
	if value == "" {
		return mutedStyle.Render(placeholderFor(f))
	}
	return value
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

// EmptyColumnMessage fills a quarter column that has no initiatives.
const EmptyColumnMessage = "No initiatives"

const (
	columnGap      = 1
	minColumnWidth = 16
)

var (
	quarterLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EEEEEE")).Align(lipgloss.Center)
	axisStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	placeholderStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888")).Align(lipgloss.Center).PaddingTop(1)
	ownerLabelStyle   = lipgloss.NewStyle().Bold(true)
	gapsStyle         = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#A0AEC0"))
)

func (a *App) renderTimeline(width int) string {
	groups := roadmap.GroupByQuarter(a.roadmap.Initiatives)
	colWidth := columnWidth(width, len(groups))
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("North Star Roadmap"),
		a.renderNorthStar(width),
		"",
		a.renderLegend(),
		"",
		renderAxis(groups, colWidth),
		renderColumns(groups, colWidth),
		"",
		renderSummary(a.summary(), width),
	)
}

func columnWidth(width, columns int) int {
	if columns == 0 {
		return minColumnWidth
	}
	return max(minColumnWidth, (width-columnGap*(columns-1))/columns)
}

func renderAxis(groups roadmap.Grouping, colWidth int) string {
	labels := make([]string, 0, len(groups))
	for i, b := range groups {
		cell := lipgloss.JoinVertical(lipgloss.Center,
			quarterLabelStyle.Width(colWidth).Render(string(b.Quarter)),
			axisStyle.Width(colWidth).Align(lipgloss.Center).Render("●"),
		)
		labels = append(labels, cell)
		if i < len(groups)-1 {
			labels = append(labels, strings.Repeat(" ", columnGap))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	rule := axisStyle.Render(strings.Repeat("━", lipgloss.Width(row)))
	return lipgloss.JoinVertical(lipgloss.Left, row, rule)
}

func renderColumns(groups roadmap.Grouping, colWidth int) string {
	columns := make([]string, 0, len(groups))
	for i, b := range groups {
		columns = append(columns, renderColumn(b, colWidth))
		if i < len(groups)-1 {
			columns = append(columns, strings.Repeat(" ", columnGap))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderColumn(b roadmap.Bucket, colWidth int) string {
	if len(b.Initiatives) == 0 {
		return placeholderStyle.Width(colWidth).Render(EmptyColumnMessage)
	}
	cards := make([]string, 0, len(b.Initiatives))
	for _, init := range b.Initiatives {
		cards = append(cards, renderCard(init, colWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderCard mirrors the exported card: title, owner when present, status
// badge, and the open-questions note when present.
func renderCard(init roadmap.Initiative, colWidth int) string {
	info := init.Status.Info()
	lines := []string{lipgloss.NewStyle().Bold(true).Render(init.DisplayTitle())}
	if init.Owner != "" {
		lines = append(lines, ownerLabelStyle.Render("Owner:")+" "+init.Owner)
	}
	lines = append(lines, statusBadge(info))
	if init.Gaps != "" {
		lines = append(lines, gapsStyle.Render("⚠ "+init.Gaps))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(info.Palette.Border)).
		Padding(0, 1).
		Width(max(minColumnWidth, colWidth) - 2).
		Render(strings.Join(lines, "\n"))
}

func renderSummary(tallies []roadmap.Tally, width int) string {
	tileWidth := max(minColumnWidth, (width-columnGap*(len(tallies)-1))/max(1, len(tallies))) - 2
	tiles := make([]string, 0, len(tallies))
	for i, tally := range tallies {
		p := tally.Status.Palette
		tile := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Foreground(lipgloss.Color(p.Text)).
			Align(lipgloss.Center).
			Width(tileWidth).
			Render(fmt.Sprintf("%d\n%s", tally.Count, tally.Status.Label))
		tiles = append(tiles, tile)
		if i < len(tallies)-1 {
			tiles = append(tiles, strings.Repeat(" ", columnGap))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Summary"),
		lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
	)
}

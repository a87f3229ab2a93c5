package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

// Title is the heading printed at the top of every export.
const Title = "North Star Roadmap"

// Text budgets, in runes, applied before escaping.
const (
	TitleBudget = 30
	OwnerBudget = 20
	GapsBudget  = 25

	truncationMarker = "..."
	fontFamily       = "Arial, sans-serif"
)

var xmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	"'", "&apos;",
	`"`, "&quot;",
)

// EscapeXML maps the five reserved markup characters to entities. Invalid
// UTF-8 becomes U+FFFD and runes XML 1.0 cannot carry are dropped.
func EscapeXML(s string) string {
	s = strings.Map(xmlChar, strings.ToValidUTF8(s, "\uFFFD"))
	return xmlEscaper.Replace(s)
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return -1
	}
	return r
}

// Truncate keeps at most limit runes of s.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Render produces the complete SVG document for the roadmap.
func Render(state roadmap.State) []byte {
	groups := roadmap.GroupByQuarter(state.Initiatives)
	l := ComputeLayout(groups)
	w := &writer{}

	w.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, l.Width, l.Height, l.Width, l.Height)
	w.printf(`<rect width="%d" height="%d" fill="white"/>`, l.Width, l.Height)

	w.printf(`<text x="40" y="50" font-family="%s" font-size="36" font-weight="bold" fill="#1e3a8a">%s</text>`, fontFamily, EscapeXML(Title))
	w.printf(`<text id="north-star" x="40" y="90" font-family="%s" font-size="18" fill="#475569" font-style="italic">%s</text>`, fontFamily, EscapeXML(state.NorthStar))

	renderLegend(w)
	renderTimeline(w, l)
	renderSummary(w, l, roadmap.CountByStatus(state.Initiatives))

	w.printf(`</svg>`)
	return w.buf.Bytes()
}

func renderLegend(w *writer) {
	w.printf(`<text x="40" y="%d" font-family="%s" font-size="16" font-weight="bold" fill="#111827">Status Legend:</text>`, HeaderHeight+25, fontFamily)
	y := HeaderHeight + 40
	for i, info := range roadmap.Statuses() {
		x := SideMargin + i*CellStride
		p := info.Palette
		w.printf(`<g class="legend" id="legend-%s">`, info.Value)
		w.printf(`<rect x="%d" y="%d" width="%d" height="35" fill="%s" stroke="%s" stroke-width="2" rx="6"/>`, x, y, CellWidth, p.Background, p.Border)
		w.printf(`<text x="%d" y="%d" font-family="%s" font-size="14" font-weight="600" fill="%s" text-anchor="middle">%s</text>`, x+CellWidth/2, y+22, fontFamily, p.Text, EscapeXML(info.Label))
		w.printf(`</g>`)
	}
}

func renderTimeline(w *writer, l Layout) {
	axis := l.TimelineTop
	w.printf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#cbd5e1" stroke-width="3"/>`, SideMargin, axis, l.Width-SideMargin, axis)
	for _, col := range l.Columns {
		cx := num(col.Center)
		w.printf(`<g class="quarter">`)
		w.printf(`<text x="%s" y="%d" font-family="%s" font-size="18" font-weight="bold" fill="#1f2937" text-anchor="middle">%s</text>`, cx, axis-15, fontFamily, EscapeXML(string(col.Bucket.Quarter)))
		w.printf(`<circle cx="%s" cy="%d" r="6" fill="#6b7280"/>`, cx, axis)
		for idx, init := range col.Bucket.Initiatives {
			renderCard(w, col, l.CardTop(idx), init)
		}
		w.printf(`</g>`)
	}
}

func renderCard(w *writer, col Column, top float64, init roadmap.Initiative) {
	info := init.Status.Info()
	p := info.Palette
	left := col.Center - CardWidth/2
	inner := left + 10
	w.printf(`<g class="card" id="card-%s">`, EscapeXML(init.ID))
	w.printf(`<rect x="%s" y="%s" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="2" rx="8"/>`, num(left), num(top), CardWidth, CardHeight, p.Background, p.Border)
	w.printf(`<text class="card-title" x="%s" y="%s" font-family="%s" font-size="14" font-weight="bold" fill="#111827" text-anchor="middle">%s</text>`,
		num(col.Center), num(top+25), fontFamily, EscapeXML(Truncate(init.DisplayTitle(), TitleBudget)))
	if init.Owner != "" {
		w.printf(`<text class="card-owner" x="%s" y="%s" font-family="%s" font-size="11" fill="#374151">Owner: %s</text>`,
			num(inner), num(top+50), fontFamily, EscapeXML(Truncate(init.Owner, OwnerBudget)))
	}
	w.printf(`<rect x="%s" y="%s" width="180" height="24" fill="%s" stroke="%s" stroke-width="1" rx="4"/>`, num(inner), num(top+65), p.Background, p.Border)
	w.printf(`<text class="card-status" x="%s" y="%s" font-family="%s" font-size="10" font-weight="600" fill="%s" text-anchor="middle">%s</text>`,
		num(inner+90), num(top+81), fontFamily, p.Text, EscapeXML(info.Label))
	if init.Gaps != "" {
		w.printf(`<text class="card-gaps" x="%s" y="%s" font-family="%s" font-size="10" fill="#6b7280" font-style="italic">⚠ %s%s</text>`,
			num(inner), num(top+102), fontFamily, EscapeXML(Truncate(init.Gaps, GapsBudget)), truncationMarker)
	}
	w.printf(`</g>`)
}

func renderSummary(w *writer, l Layout, tallies []roadmap.Tally) {
	top := l.SummaryTop
	w.printf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#e5e7eb" stroke-width="2"/>`, SideMargin, top+10, l.Width-SideMargin, top+10)
	w.printf(`<text x="40" y="%d" font-family="%s" font-size="16" font-weight="bold" fill="#111827">Summary</text>`, top+32, fontFamily)
	for i, tally := range tallies {
		x := SideMargin + i*CellStride
		p := tally.Status.Palette
		w.printf(`<g class="summary" id="summary-%s">`, tally.Status.Value)
		w.printf(`<rect x="%d" y="%d" width="%d" height="70" fill="%s" stroke="%s" stroke-width="2" rx="8"/>`, x, top+42, CellWidth, p.Background, p.Border)
		w.printf(`<text class="summary-count" x="%d" y="%d" font-family="%s" font-size="32" font-weight="bold" fill="%s" text-anchor="middle">%d</text>`, x+CellWidth/2, top+82, fontFamily, p.Text, tally.Count)
		w.printf(`<text class="summary-label" x="%d" y="%d" font-family="%s" font-size="12" font-weight="600" fill="%s" text-anchor="middle">%s</text>`, x+CellWidth/2, top+102, fontFamily, p.Text, EscapeXML(tally.Status.Label))
		w.printf(`</g>`)
	}
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) printf(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

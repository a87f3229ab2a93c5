// Package export renders a roadmap as a standalone SVG document that mirrors
// the timeline view, and saves it under a fixed file name.
package export

import "github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"

// Fixed geometry, in pixels.
const (
	Width = 1600

	HeaderHeight      = 180
	LegendHeight      = 100
	SummaryHeight     = 120
	MinTimelineHeight = 400

	CardStride   = 140
	ColumnMargin = 100
	CardWidth    = 220
	CardHeight   = 120

	SideMargin = 40
	CellStride = 240
	CellWidth  = 220
)

// Column is the horizontal slot of one quarter.
type Column struct {
	Bucket roadmap.Bucket
	Left   float64
	Center float64
}

// CardTop returns the y coordinate of the idx-th card in the column.
func (l Layout) CardTop(idx int) float64 {
	return float64(l.TimelineTop + 40 + idx*CardStride)
}

// Layout is the computed geometry for one export.
type Layout struct {
	Width          int
	Height         int
	TimelineTop    int
	TimelineHeight int
	SummaryTop     int
	Columns        []Column
}

// TimelineHeight returns the height of the timeline band: the tallest
// column decides, and an empty roadmap still gets MinTimelineHeight.
func TimelineHeight(groups roadmap.Grouping) int {
	height := MinTimelineHeight
	for _, b := range groups {
		if h := len(b.Initiatives)*CardStride + ColumnMargin; h > height {
			height = h
		}
	}
	return height
}

// ComputeLayout places the bands and quarter columns.
func ComputeLayout(groups roadmap.Grouping) Layout {
	timeline := TimelineHeight(groups)
	l := Layout{
		Width:          Width,
		TimelineTop:    HeaderHeight + LegendHeight,
		TimelineHeight: timeline,
		Height:         HeaderHeight + LegendHeight + timeline + SummaryHeight,
	}
	l.SummaryTop = l.TimelineTop + timeline
	if len(groups) == 0 {
		return l
	}
	span := float64(Width-2*SideMargin) / float64(len(groups))
	l.Columns = make([]Column, len(groups))
	for i, b := range groups {
		left := SideMargin + float64(i)*span
		l.Columns[i] = Column{Bucket: b, Left: left, Center: left + span/2}
	}
	return l
}

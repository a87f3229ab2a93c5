// internal/roadmap/registry.go
//
// Fixed registries for statuses and quarters. Both the terminal renderer and
// the SVG export read their labels and colors from here, so a status can only
// ever look one way.

package roadmap

import "fmt"

// Status is the planning state of an initiative.
type Status string

const (
	StatusCommitted     Status = "committed"
	StatusAvailable     Status = "available"
	StatusNeedsDecision Status = "needs-decision"
	StatusKnowledgeGap  Status = "knowledge-gap"
)

// Palette is the literal color triple used to draw a status.
type Palette struct {
	Background string
	Border     string
	Text       string
}

// StatusInfo describes how a status is labelled and colored.
type StatusInfo struct {
	Value   Status
	Label   string
	Palette Palette
	// Accent is the saturated swatch used where only one color fits.
	Accent string
}

var statuses = []StatusInfo{
	{
		Value:   StatusCommitted,
		Label:   "Committed",
		Palette: Palette{Background: "#dcfce7", Border: "#86efac", Text: "#166534"},
		Accent:  "#22c55e",
	},
	{
		Value:   StatusAvailable,
		Label:   "Available to Pick Up",
		Palette: Palette{Background: "#dbeafe", Border: "#93c5fd", Text: "#1e40af"},
		Accent:  "#3b82f6",
	},
	{
		Value:   StatusNeedsDecision,
		Label:   "Needs Decision",
		Palette: Palette{Background: "#fef3c7", Border: "#fde047", Text: "#854d0e"},
		Accent:  "#eab308",
	},
	{
		Value:   StatusKnowledgeGap,
		Label:   "Knowledge Gap",
		Palette: Palette{Background: "#fee2e2", Border: "#fca5a5", Text: "#991b1b"},
		Accent:  "#ef4444",
	},
}

// Statuses returns the status registry in display order.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(statuses))
	copy(out, statuses)
	return out
}

// Valid reports whether s is a registry member.
func (s Status) Valid() bool {
	_, ok := lookupStatus(s)
	return ok
}

// Info returns the registry descriptor for s. Edits are constrained to
// registry members, so a miss is a programming error and panics.
func (s Status) Info() StatusInfo {
	info, ok := lookupStatus(s)
	if !ok {
		panic(fmt.Sprintf("roadmap: status %q is not registered", string(s)))
	}
	return info
}

// Label is shorthand for s.Info().Label.
func (s Status) Label() string {
	return s.Info().Label
}

func lookupStatus(s Status) (StatusInfo, bool) {
	for _, info := range statuses {
		if info.Value == s {
			return info, true
		}
	}
	return StatusInfo{}, false
}

// Quarter is a calendar period label on the timeline axis.
type Quarter string

var quarters = []Quarter{
	"Q1 2026",
	"Q2 2026",
	"Q3 2026",
	"Q4 2026",
	"Q1 2027",
	"Q2 2027",
}

// Quarters returns the quarter registry in timeline order.
func Quarters() []Quarter {
	out := make([]Quarter, len(quarters))
	copy(out, quarters)
	return out
}

// DefaultQuarter is assigned to newly created initiatives.
func DefaultQuarter() Quarter {
	return quarters[0]
}

// Valid reports whether q is a registry member.
func (q Quarter) Valid() bool {
	return indexOf(quarters, q) >= 0
}

// NextQuarter steps through the registry, wrapping at either end.
func NextQuarter(q Quarter, delta int) Quarter {
	return quarters[step(indexOf(quarters, q), delta, len(quarters))]
}

// NextStatus steps through the registry, wrapping at either end.
func NextStatus(s Status, delta int) Status {
	idx := -1
	for i, info := range statuses {
		if info.Value == s {
			idx = i
			break
		}
	}
	return statuses[step(idx, delta, len(statuses))].Value
}

func indexOf[T comparable](values []T, target T) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func step(idx, delta, n int) int {
	if idx < 0 {
		return 0
	}
	return ((idx+delta)%n + n) % n
}

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

type node struct {
	name  string
	attrs map[string]string
	text  string
}

// parseDocument decodes the SVG and returns every element in document order.
func parseDocument(t *testing.T, doc []byte) []*node {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var (
		nodes []*node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("document is not well-formed: %v\n%s", err, doc)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			n := &node{name: tok.Name.Local, attrs: map[string]string{}}
			for _, a := range tok.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			nodes = append(nodes, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(tok)
			}
		}
	}
	if len(stack) != 0 {
		t.Fatalf("unclosed elements: %d", len(stack))
	}
	return nodes
}

func byClass(nodes []*node, class string) []*node {
	var out []*node
	for _, n := range nodes {
		if n.attrs["class"] == class {
			out = append(out, n)
		}
	}
	return out
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("init-%d", n)
	}
}

func sampleState(t *testing.T) roadmap.State {
	t.Helper()
	s := roadmap.New(
		roadmap.WithIDSource(counterIDs()),
		roadmap.WithNorthStar("Double weekly active teams"),
		roadmap.WithInitiatives(
			roadmap.Initiative{Title: "Billing revamp", Quarter: "Q1 2026", Owner: "Payments", Status: roadmap.StatusCommitted},
			roadmap.Initiative{Title: "", Quarter: "Q1 2026", Status: roadmap.StatusAvailable, Gaps: "Which regions first?"},
			roadmap.Initiative{Title: "Search", Quarter: "Q3 2026", Status: roadmap.StatusNeedsDecision},
		),
	)
	return s
}

func TestRenderRootDeclaresSize(t *testing.T) {
	doc := Render(sampleState(t))
	nodes := parseDocument(t, doc)
	root := nodes[0]
	if root.name != "svg" {
		t.Fatalf("root = %s, want svg", root.name)
	}
	height := HeaderHeight + LegendHeight + MinTimelineHeight + SummaryHeight
	if root.attrs["width"] != "1600" || root.attrs["height"] != strconv.Itoa(height) {
		t.Fatalf("size = %sx%s, want 1600x%d", root.attrs["width"], root.attrs["height"], height)
	}
	if want := fmt.Sprintf("0 0 1600 %d", height); root.attrs["viewBox"] != want {
		t.Fatalf("viewBox = %q, want %q", root.attrs["viewBox"], want)
	}
}

func TestTimelineHeightFollowsTallestColumn(t *testing.T) {
	s := roadmap.New(roadmap.WithIDSource(counterIDs()))
	if got := TimelineHeight(roadmap.GroupByQuarter(s.Initiatives)); got != MinTimelineHeight {
		t.Fatalf("empty timeline = %d, want %d", got, MinTimelineHeight)
	}
	for i := 0; i < 5; i++ {
		s, _ = s.Add()
	}
	groups := roadmap.GroupByQuarter(s.Initiatives)
	if got, want := TimelineHeight(groups), 5*CardStride+ColumnMargin; got != want {
		t.Fatalf("timeline = %d, want %d", got, want)
	}
	l := ComputeLayout(groups)
	if l.Height != HeaderHeight+LegendHeight+800+SummaryHeight {
		t.Fatalf("height = %d", l.Height)
	}
	if l.SummaryTop != l.TimelineTop+l.TimelineHeight {
		t.Fatalf("summary top = %d", l.SummaryTop)
	}
	last := l.CardTop(4) + CardHeight
	if last > float64(l.SummaryTop) {
		t.Fatalf("last card bottom %v overlaps summary at %d", last, l.SummaryTop)
	}
	if len(l.Columns) != len(roadmap.Quarters()) {
		t.Fatalf("columns = %d", len(l.Columns))
	}
	for i := 1; i < len(l.Columns); i++ {
		if l.Columns[i].Left-l.Columns[i-1].Left < CardWidth {
			t.Fatalf("columns %d and %d overlap", i-1, i)
		}
	}
}

func TestRenderEscapesReservedCharacters(t *testing.T) {
	title := `<a>&'b'"c"`
	s := roadmap.New(roadmap.WithIDSource(counterIDs()), roadmap.WithNorthStar(`Grow "fast" & <safe>`))
	s, init := s.Add()
	s, _ = s.Update(init.ID, roadmap.FieldTitle, title)
	s, _ = s.Update(init.ID, roadmap.FieldOwner, "R&D <core>")
	nodes := parseDocument(t, Render(s))
	titles := byClass(nodes, "card-title")
	if len(titles) != 1 || titles[0].text != title {
		t.Fatalf("parsed title = %+v, want %q", titles, title)
	}
	owners := byClass(nodes, "card-owner")
	if len(owners) != 1 || owners[0].text != "Owner: R&D <core>" {
		t.Fatalf("parsed owner = %+v", owners)
	}
	for _, n := range nodes {
		if n.attrs["id"] == "north-star" && n.text != `Grow "fast" & <safe>` {
			t.Fatalf("north star = %q", n.text)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<>&'"`); got != "&lt;&gt;&amp;&apos;&quot;" {
		t.Fatalf("EscapeXML = %q", got)
	}
}

func TestRenderStaysWellFormedForControlCharacters(t *testing.T) {
	s := roadmap.New(roadmap.WithIDSource(counterIDs()), roadmap.WithNorthStar("north\x0bstar"))
	var ids []string
	for _, title := range []string{"a\x01b", "a\x0bb", "bad\xffutf8", "tab\tok\uFFFE"} {
		var init roadmap.Initiative
		s, init = s.Add()
		s, _ = s.Update(init.ID, roadmap.FieldTitle, title)
		ids = append(ids, init.ID)
	}
	s, _ = s.Update(ids[0], roadmap.FieldOwner, "own\x00er")
	s, _ = s.Update(ids[0], roadmap.FieldGaps, "gap\x1f")
	nodes := parseDocument(t, Render(s))
	var got []string
	for _, n := range byClass(nodes, "card-title") {
		got = append(got, n.text)
	}
	want := []string{"ab", "ab", "bad\uFFFDutf8", "tab\tok"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("titles = %q, want %q", got, want)
	}
	if owner := byClass(nodes, "card-owner")[0].text; owner != "Owner: owner" {
		t.Fatalf("owner = %q", owner)
	}
}

func TestRenderTruncatesBeforeEscaping(t *testing.T) {
	title := strings.Repeat("&", 40)
	s := roadmap.New(roadmap.WithIDSource(counterIDs()))
	s, init := s.Add()
	s, _ = s.Update(init.ID, roadmap.FieldTitle, title)
	s, _ = s.Update(init.ID, roadmap.FieldGaps, strings.Repeat("é", 30))
	nodes := parseDocument(t, Render(s))
	if got := byClass(nodes, "card-title")[0].text; got != strings.Repeat("&", TitleBudget) {
		t.Fatalf("title = %q", got)
	}
	gaps := byClass(nodes, "card-gaps")[0].text
	if want := "⚠ " + strings.Repeat("é", GapsBudget) + "..."; gaps != want {
		t.Fatalf("gaps = %q, want %q", gaps, want)
	}
}

func TestRenderOmitsMissingOptionalFields(t *testing.T) {
	s := roadmap.New(roadmap.WithIDSource(counterIDs()))
	s, _ = s.Add()
	nodes := parseDocument(t, Render(s))
	if n := len(byClass(nodes, "card-owner")); n != 0 {
		t.Fatalf("owner elements = %d, want 0", n)
	}
	if n := len(byClass(nodes, "card-gaps")); n != 0 {
		t.Fatalf("gaps elements = %d, want 0", n)
	}
	titles := byClass(nodes, "card-title")
	if len(titles) != 1 || titles[0].text != roadmap.UntitledLabel {
		t.Fatalf("title = %+v, want Untitled", titles)
	}
	badges := byClass(nodes, "card-status")
	if len(badges) != 1 || badges[0].text != "Available to Pick Up" {
		t.Fatalf("badge = %+v", badges)
	}
}

func TestRenderSummaryMatchesTally(t *testing.T) {
	s := sampleState(t)
	counts := SummaryCounts(t, Render(s))
	for _, tally := range roadmap.CountByStatus(s.Initiatives) {
		if counts[tally.Status.Value] != tally.Count {
			t.Fatalf("%s: export %d, tally %d", tally.Status.Value, counts[tally.Status.Value], tally.Count)
		}
	}
	want := map[roadmap.Status]int{roadmap.StatusCommitted: 1, roadmap.StatusAvailable: 1, roadmap.StatusNeedsDecision: 1, roadmap.StatusKnowledgeGap: 0}
	for status, n := range want {
		if counts[status] != n {
			t.Fatalf("%s = %d, want %d", status, counts[status], n)
		}
	}
}

func TestRenderQuarterLabelsInOrder(t *testing.T) {
	nodes := parseDocument(t, Render(sampleState(t)))
	var labels []string
	for _, n := range nodes {
		if n.name == "text" && strings.HasPrefix(n.text, "Q") && len(n.text) == 7 {
			labels = append(labels, n.text)
		}
	}
	var want []string
	for _, q := range roadmap.Quarters() {
		want = append(want, string(q))
	}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
}

// SummaryCounts reads the per-status counts out of an exported document.
func SummaryCounts(t *testing.T, doc []byte) map[roadmap.Status]int {
	t.Helper()
	nodes := parseDocument(t, doc)
	counts := map[roadmap.Status]int{}
	var current roadmap.Status
	for _, n := range nodes {
		if n.attrs["class"] == "summary" {
			current = roadmap.Status(strings.TrimPrefix(n.attrs["id"], "summary-"))
		}
		if n.attrs["class"] == "summary-count" {
			v, err := strconv.Atoi(n.text)
			if err != nil {
				t.Fatalf("summary count %q: %v", n.text, err)
			}
			counts[current] = v
		}
	}
	return counts
}

func TestSaveWritesFixedNameWithoutLeftovers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	saver := NewSaver(dir)
	for i := 0; i < 3; i++ {
		doc := []byte(fmt.Sprintf("<svg>%d</svg>", i))
		path, err := saver.Save(doc)
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if filepath.Base(path) != DefaultFilename {
			t.Fatalf("path = %s", path)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, DefaultFilename))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "<svg>2</svg>" {
		t.Fatalf("export = %q, want last document", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("leftover files: %v", names)
	}
}

func TestSaveRequiresDirectory(t *testing.T) {
	if _, err := NewSaver(" ").Save([]byte("x")); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestSaveCleansUpWhenRenameFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, DefaultFilename)
	if err := os.MkdirAll(filepath.Join(blocker, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSaver(dir).Save([]byte("<svg/>")); err == nil {
		t.Fatalf("expected error when %s is a non-empty directory", DefaultFilename)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".roadmap-export-") {
			t.Fatalf("staged file %s left behind", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want only the blocking directory", len(entries))
	}
}

func TestSaveWritesWorldReadableFile(t *testing.T) {
	path, err := NewSaver(t.TempDir()).Save([]byte("<svg/>"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o644 {
		t.Fatalf("mode = %v, want -rw-r--r--", mode)
	}
}

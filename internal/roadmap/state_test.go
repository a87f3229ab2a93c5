package roadmap

import (
	"errors"
	"fmt"
	"testing"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("init-%d", n)
	}
}

func TestAddUsesDefaults(t *testing.T) {
	s, init := New(WithIDSource(counterIDs())).Add()
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if init.Quarter != DefaultQuarter() || init.Quarter != "Q1 2026" {
		t.Fatalf("quarter = %q, want Q1 2026", init.Quarter)
	}
	if init.Status != StatusAvailable {
		t.Fatalf("status = %q, want available", init.Status)
	}
	if init.Title != "" || init.Owner != "" || init.Gaps != "" {
		t.Fatalf("expected empty text fields, got %+v", init)
	}
}

func TestAddKeepsIdentitiesDistinct(t *testing.T) {
	s := New()
	for i := 0; i < 200; i++ {
		s, _ = s.Add()
	}
	seen := map[string]struct{}{}
	for _, init := range s.Initiatives {
		if init.ID == "" {
			t.Fatalf("empty identity")
		}
		if _, dup := seen[init.ID]; dup {
			t.Fatalf("duplicate identity %s", init.ID)
		}
		seen[init.ID] = struct{}{}
	}
}

func TestAddSkipsCollidingIdentity(t *testing.T) {
	ids := []string{"a", "a", "b"}
	next := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	s := New(WithIDSource(next))
	s, first := s.Add()
	s, second := s.Add()
	if first.ID == second.ID {
		t.Fatalf("identities collided: %s", first.ID)
	}
	if second.ID != "b" {
		t.Fatalf("second id = %s, want b", second.ID)
	}
}

func TestUpdateTouchesOneField(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	s, a := s.Add()
	s, b := s.Add()
	s, err := s.Update(a.ID, FieldOwner, "Platform")
	if err != nil {
		t.Fatalf("update owner: %v", err)
	}
	got, _ := s.Find(a.ID)
	want := a
	want.Owner = "Platform"
	if got != want {
		t.Fatalf("updated = %+v, want %+v", got, want)
	}
	if other, _ := s.Find(b.ID); other != b {
		t.Fatalf("other initiative changed: %+v", other)
	}
}

func TestUpdateDoesNotMutateReceiver(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	s, a := s.Add()
	next, err := s.Update(a.ID, FieldTitle, "Launch")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.Initiatives[0].Title != "" {
		t.Fatalf("receiver mutated: %q", s.Initiatives[0].Title)
	}
	if v, ok := next.Get(a.ID, FieldTitle); !ok || v != "Launch" {
		t.Fatalf("get title = %q,%v", v, ok)
	}
}

func TestUpdateAcceptsAnyFreeText(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	s, a := s.Add()
	for _, f := range []Field{FieldTitle, FieldDescription, FieldOwner, FieldDependencies, FieldGaps} {
		for _, v := range []string{"", "  ", "<b>&\"'", "multi\nline"} {
			var err error
			s, err = s.Update(a.ID, f, v)
			if err != nil {
				t.Fatalf("update %s=%q: %v", f, v, err)
			}
			if got, _ := s.Get(a.ID, f); got != v {
				t.Fatalf("%s = %q, want %q", f, got, v)
			}
		}
	}
}

func TestUpdateRejectsNonRegistryValues(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	s, a := s.Add()
	if _, err := s.Update(a.ID, FieldQuarter, "Q1 2025"); !errors.Is(err, ErrInvalidQuarter) {
		t.Fatalf("quarter err = %v, want ErrInvalidQuarter", err)
	}
	if _, err := s.Update(a.ID, FieldStatus, "done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("status err = %v, want ErrInvalidStatus", err)
	}
	if _, err := s.Update(a.ID, Field("color"), "red"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("field err = %v, want ErrUnknownField", err)
	}
	next, err := s.Update(a.ID, FieldStatus, string(StatusKnowledgeGap))
	if err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}
	if got, _ := next.Find(a.ID); got.Status != StatusKnowledgeGap {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestUpdateUnknownIdentityIsNoop(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	s, _ = s.Add()
	next, err := s.Update("missing", FieldTitle, "x")
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if next.Initiatives[0].Title != "" {
		t.Fatalf("unexpected change")
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	var ids []string
	for i := 0; i < 4; i++ {
		var init Initiative
		s, init = s.Add()
		s, _ = s.Update(init.ID, FieldTitle, fmt.Sprintf("title-%d", i))
		ids = append(ids, init.ID)
	}
	before := append([]Initiative(nil), s.Initiatives...)
	after := s.Delete(ids[1])
	if after.Len() != 3 {
		t.Fatalf("len = %d, want 3", after.Len())
	}
	want := []Initiative{before[0], before[2], before[3]}
	for i := range want {
		if after.Initiatives[i] != want[i] {
			t.Fatalf("initiative %d = %+v, want %+v", i, after.Initiatives[i], want[i])
		}
	}
	if s.Len() != 4 {
		t.Fatalf("receiver mutated by delete")
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	s, _ = s.Add()
	s, _ = s.Add()
	after := s.Delete("nope")
	if after.Len() != 2 || after.Initiatives[0] != s.Initiatives[0] || after.Initiatives[1] != s.Initiatives[1] {
		t.Fatalf("delete of unknown id changed state")
	}
}

func TestMoveReorders(t *testing.T) {
	s := New(WithIDSource(counterIDs()))
	for i := 0; i < 3; i++ {
		s, _ = s.Add()
	}
	order := func(st State) string {
		out := ""
		for _, init := range st.Initiatives {
			out += init.ID + ","
		}
		return out
	}
	if got := order(s.Move("init-3", -1)); got != "init-1,init-3,init-2," {
		t.Fatalf("move up = %s", got)
	}
	if got := order(s.Move("init-1", 5)); got != "init-2,init-3,init-1," {
		t.Fatalf("move past end = %s", got)
	}
	if got := order(s.Move("init-1", -1)); got != "init-1,init-2,init-3," {
		t.Fatalf("move at top = %s", got)
	}
}

func TestSeededInitiativesGetIdentities(t *testing.T) {
	s := New(
		WithIDSource(counterIDs()),
		WithNorthStar("Grow"),
		WithInitiatives(Initiative{Title: "A", Quarter: "Q2 2026", Status: StatusCommitted}),
	)
	if s.NorthStar != "Grow" {
		t.Fatalf("north star = %q", s.NorthStar)
	}
	if s.Len() != 1 || s.Initiatives[0].ID != "init-1" {
		t.Fatalf("seed = %+v", s.Initiatives)
	}
	if s.SetNorthStar("Ship").NorthStar != "Ship" || s.NorthStar != "Grow" {
		t.Fatalf("SetNorthStar did not copy")
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := (Initiative{}).DisplayTitle(); got != "Untitled" {
		t.Fatalf("empty title = %q", got)
	}
	if got := (Initiative{Title: "X"}).DisplayTitle(); got != "X" {
		t.Fatalf("title = %q", got)
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Gaps ")
	if err != nil || f != FieldGaps {
		t.Fatalf("ParseField = %q, %v", f, err)
	}
	if _, err := ParseField("id"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

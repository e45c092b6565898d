package appearance

import (
	"errors"
	"slices"
	"testing"
)

func mustTable(t *testing.T, issues ...string) *Table {
	t.Helper()
	tbl, err := NewTable(issues)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestNewTableRejectsBadIssues(t *testing.T) {
	if _, err := NewTable([]string{"X-Men 1", "X-Men 1"}); !errors.Is(err, ErrDuplicateIssue) {
		t.Errorf("duplicate issue: got %v, want ErrDuplicateIssue", err)
	}
	if _, err := NewTable([]string{""}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty issue: got %v, want ErrEmptyName", err)
	}
}

func TestAddCharacter(t *testing.T) {
	tbl := mustTable(t, "1", "2")

	if err := tbl.AddCharacter("Storm"); err != nil {
		t.Fatalf("AddCharacter: %v", err)
	}
	if err := tbl.AddCharacter("Storm"); !errors.Is(err, ErrDuplicateCharacter) {
		t.Errorf("duplicate: got %v, want ErrDuplicateCharacter", err)
	}
	if err := tbl.AddCharacter(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty: got %v, want ErrEmptyName", err)
	}

	k, ok := tbl.Kind("Storm", "2")
	if !ok || !k.IsAbsent() {
		t.Errorf("new row cell = (%q, %v), want absent", k, ok)
	}
}

func TestSet(t *testing.T) {
	tbl := mustTable(t, "1")
	_ = tbl.AddCharacter("Rogue")

	if err := tbl.Set("Rogue", "1", Mentions); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := tbl.Set("Gambit", "1", Mentions); !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("unknown character: got %v", err)
	}
	if err := tbl.Set("Rogue", "2", Mentions); !errors.Is(err, ErrUnknownIssue) {
		t.Errorf("unknown issue: got %v", err)
	}
	if k, _ := tbl.Kind("Rogue", "1"); k != Mentions {
		t.Errorf("cell = %q, want Mentions", k)
	}
}

func TestMergeKeepsMostProminent(t *testing.T) {
	tbl := mustTable(t, "1", "2")

	steps := []struct {
		issue string
		kind  Kind
	}{
		{"1", Mentions},
		{"1", Appearances},
		{"1", MinorAppearances},
		{"2", Kind("Cameo")},
		{"2", Mentions},
	}
	for _, s := range steps {
		if err := tbl.Merge("Wolverine", s.issue, s.kind); err != nil {
			t.Fatalf("Merge(%s, %s): %v", s.issue, s.kind, err)
		}
	}

	if tbl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tbl.Len())
	}
	if k, _ := tbl.Kind("Wolverine", "1"); k != Appearances {
		t.Errorf("issue 1 = %q, want Appearances", k)
	}
	if k, _ := tbl.Kind("Wolverine", "2"); k != Mentions {
		t.Errorf("issue 2 = %q, want Mentions", k)
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	tbl := mustTable(t, "1")
	for _, n := range []string{"A", "B", "C"} {
		_ = tbl.Merge(n, "1", Appearances)
	}

	out := tbl.Filter(func(name string) bool { return name != "B" })

	if got := out.Characters(); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("filtered = %v, want [A C]", got)
	}
	if tbl.Len() != 3 {
		t.Errorf("input modified: Len = %d", tbl.Len())
	}
	if err := out.Set("A", "1", Mentions); err != nil {
		t.Fatal(err)
	}
	if k, _ := tbl.Kind("A", "1"); k != Appearances {
		t.Errorf("filtered table shares cells with input")
	}
}

func TestLabels(t *testing.T) {
	tbl := mustTable(t, "1", "2")
	_ = tbl.Merge("A", "1", Appearances)
	_ = tbl.Merge("A", "2", Kind("Flashback"))
	_ = tbl.Merge("B", "1", Appearances)

	want := []Kind{Appearances, Kind("Flashback")}
	if got := tbl.Labels(); !slices.Equal(got, want) {
		t.Errorf("Labels = %v, want %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Appearances", Appearances},
		{" Appearance ", Appearances},
		{"Minor Appearance", MinorAppearances},
		{"Minor Appearances", MinorAppearances},
		{"Mention", Mentions},
		{"Invocation", Invocations},
		{"", Absent},
		{"   ", Absent},
		{"Cameo", Kind("Cameo")},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKindRank(t *testing.T) {
	if !(Mentions.Rank() < MinorAppearances.Rank() && MinorAppearances.Rank() < Appearances.Rank()) {
		t.Error("kinds should be ordered Mentions < Minor Appearances < Appearances")
	}
	if Kind("Cameo").Known() {
		t.Error("unknown label reported as known")
	}
	if !Invocations.Known() {
		t.Error("Invocations should be known")
	}
}

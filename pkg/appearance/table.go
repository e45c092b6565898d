package appearance

import (
	"errors"
	"slices"
)

var (
	// ErrEmptyName is returned when a character or issue name is empty.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrDuplicateCharacter is returned by [Table.AddCharacter] when the
	// character already has a row.
	ErrDuplicateCharacter = errors.New("duplicate character")

	// ErrDuplicateIssue is returned by [NewTable] when an issue is listed twice.
	ErrDuplicateIssue = errors.New("duplicate issue")

	// ErrUnknownIssue is returned when a cell refers to an issue that is not a
	// column of the table.
	ErrUnknownIssue = errors.New("unknown issue")

	// ErrUnknownCharacter is returned by [Table.Set] when the character has no row.
	ErrUnknownCharacter = errors.New("unknown character")
)

// Table is the sparse character × issue appearance table.
//
// Rows keep insertion order and columns keep the order given to [NewTable].
// The zero value is an empty table with no issues. Table is not safe for
// concurrent modification; pipeline stages only read it.
type Table struct {
	issues     []string
	issueIndex map[string]int
	names      []string
	nameIndex  map[string]int
	cells      [][]Kind
}

// NewTable creates an empty table whose columns are the given issues.
func NewTable(issues []string) (*Table, error) {
	t := &Table{
		issues:     make([]string, 0, len(issues)),
		issueIndex: make(map[string]int, len(issues)),
		nameIndex:  make(map[string]int),
	}
	for _, issue := range issues {
		if issue == "" {
			return nil, ErrEmptyName
		}
		if _, dup := t.issueIndex[issue]; dup {
			return nil, ErrDuplicateIssue
		}
		t.issueIndex[issue] = len(t.issues)
		t.issues = append(t.issues, issue)
	}
	return t, nil
}

// AddCharacter appends an empty row for name.
func (t *Table) AddCharacter(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	t.init()
	if _, dup := t.nameIndex[name]; dup {
		return ErrDuplicateCharacter
	}
	t.nameIndex[name] = len(t.names)
	t.names = append(t.names, name)
	t.cells = append(t.cells, make([]Kind, len(t.issues)))
	return nil
}

// Set overwrites the cell (name, issue). The character must already exist.
func (t *Table) Set(name, issue string, k Kind) error {
	i, ok := t.nameIndex[name]
	if !ok {
		return ErrUnknownCharacter
	}
	j, ok := t.issueIndex[issue]
	if !ok {
		return ErrUnknownIssue
	}
	t.cells[i][j] = k
	return nil
}

// Merge records that name appears as k in issue, adding the character if it
// has no row yet. An existing cell is only replaced by a more prominent kind,
// which is how duplicate rows for the same character are collapsed.
func (t *Table) Merge(name, issue string, k Kind) error {
	if name == "" {
		return ErrEmptyName
	}
	j, ok := t.issueIndex[issue]
	if !ok {
		return ErrUnknownIssue
	}
	i, ok := t.nameIndex[name]
	if !ok {
		if err := t.AddCharacter(name); err != nil {
			return err
		}
		i = len(t.names) - 1
	}
	t.cells[i][j] = prominent(t.cells[i][j], k)
	return nil
}

// Characters returns the character names in row order.
func (t *Table) Characters() []string { return slices.Clone(t.names) }

// Issues returns the issue identifiers in column order.
func (t *Table) Issues() []string { return slices.Clone(t.issues) }

// Len returns the number of characters.
func (t *Table) Len() int { return len(t.names) }

// IssueCount returns the number of issues.
func (t *Table) IssueCount() int { return len(t.issues) }

// Empty reports whether the table has no characters or no issues.
func (t *Table) Empty() bool { return len(t.names) == 0 || len(t.issues) == 0 }

// Has reports whether the character has a row.
func (t *Table) Has(name string) bool {
	_, ok := t.nameIndex[name]
	return ok
}

// Kind returns the cell (name, issue). The boolean is false when either key
// is unknown; an existing but empty cell returns (Absent, true).
func (t *Table) Kind(name, issue string) (Kind, bool) {
	i, ok := t.nameIndex[name]
	if !ok {
		return Absent, false
	}
	j, ok := t.issueIndex[issue]
	if !ok {
		return Absent, false
	}
	return t.cells[i][j], true
}

// Row returns a copy of the i-th row, one kind per issue.
func (t *Table) Row(i int) []Kind { return slices.Clone(t.cells[i]) }

// Filter returns a new table containing only the characters for which keep
// returns true. Issue columns are preserved.
func (t *Table) Filter(keep func(name string) bool) *Table {
	out, _ := NewTable(t.issues)
	for i, name := range t.names {
		if !keep(name) {
			continue
		}
		out.nameIndex[name] = len(out.names)
		out.names = append(out.names, name)
		out.cells = append(out.cells, slices.Clone(t.cells[i]))
	}
	return out
}

// Labels returns the distinct non-empty labels present in the table, in
// first-seen order (row-major).
func (t *Table) Labels() []Kind {
	seen := make(map[Kind]bool)
	var labels []Kind
	for _, row := range t.cells {
		for _, k := range row {
			if k.IsAbsent() || seen[k] {
				continue
			}
			seen[k] = true
			labels = append(labels, k)
		}
	}
	return labels
}

func (t *Table) init() {
	if t.nameIndex == nil {
		t.nameIndex = make(map[string]int)
	}
	if t.issueIndex == nil {
		t.issueIndex = make(map[string]int)
	}
}

package appearance

import "strings"

// Kind is the categorical label describing how prominently a character
// features in an issue. The zero value means the character is absent.
type Kind string

// Known appearance kinds, as used by the wiki's issue categories.
const (
	Absent           Kind = ""
	Mentions         Kind = "Mentions"
	MinorAppearances Kind = "Minor Appearances"
	Appearances      Kind = "Appearances"
	// Invocations is listed by the wiki but carries no weight by default.
	Invocations Kind = "Invocations"
)

// Kinds lists the ordered vocabulary of appearance kinds, least prominent first.
var Kinds = []Kind{Mentions, MinorAppearances, Appearances}

// ParseKind normalizes a raw cell value. Surrounding whitespace is trimmed and
// the singular forms used by some wiki pages ("Appearance", "Minor Appearance")
// are mapped to the canonical labels. Anything else is returned unchanged.
func ParseKind(s string) Kind {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return Absent
	case "Appearance":
		return Appearances
	case "Minor Appearance":
		return MinorAppearances
	case "Mention":
		return Mentions
	case "Invocation":
		return Invocations
	}
	return Kind(s)
}

// Rank returns the ordinal prominence of k: 0 for absent or unknown labels,
// then 1 (Mentions), 2 (Minor Appearances) and 3 (Appearances).
func (k Kind) Rank() int {
	switch k {
	case Mentions:
		return 1
	case MinorAppearances:
		return 2
	case Appearances:
		return 3
	}
	return 0
}

// Known reports whether k is part of the wiki vocabulary (including Invocations).
func (k Kind) Known() bool {
	return k.Rank() > 0 || k == Invocations
}

// IsAbsent reports whether k marks a missing appearance.
func (k Kind) IsAbsent() bool { return k == Absent }

func (k Kind) String() string { return string(k) }

// prominent returns whichever of a and b ranks higher. Ties keep a, so an
// unknown label already in the table is not replaced by another unknown one.
func prominent(a, b Kind) Kind {
	if a.IsAbsent() {
		return b
	}
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

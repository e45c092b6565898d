package appearance

import "sort"

// Stats counts how a character appears across the table.
type Stats struct {
	Name             string `json:"name"`
	Appearances      int    `json:"appearances"`
	MinorAppearances int    `json:"minor_appearances"`
	Mentions         int    `json:"mentions"`
}

// Actual is the number of issues in which the character physically appears.
func (s Stats) Actual() int { return s.Appearances + s.MinorAppearances }

// Total is the number of issues with any recorded entry for the character.
func (s Stats) Total() int { return s.Actual() + s.Mentions }

// Summarize counts appearance kinds per character. The result is sorted by
// full Appearances, highest first; ties keep table order.
func Summarize(t *Table) []Stats {
	out := make([]Stats, len(t.names))
	for i, name := range t.names {
		s := Stats{Name: name}
		for _, k := range t.cells[i] {
			switch k {
			case Appearances:
				s.Appearances++
			case MinorAppearances:
				s.MinorAppearances++
			case Mentions:
				s.Mentions++
			}
		}
		out[i] = s
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Appearances > out[b].Appearances })
	return out
}

// KeepFrequent returns a new table without the characters that have fewer
// than min full Appearances. A min of zero or less keeps everyone.
func KeepFrequent(t *Table, min int) *Table {
	if min <= 0 {
		return t.Filter(func(string) bool { return true })
	}
	counts := make(map[string]int, len(t.names))
	for _, s := range Summarize(t) {
		counts[s.Name] = s.Appearances
	}
	return t.Filter(func(name string) bool { return counts[name] >= min })
}

package io

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/comicweb/pkg/appearance"
)

// ErrMissingHeader is returned when a CSV table has no header row.
var ErrMissingHeader = errors.New("missing header row")

// Report summarizes how a table file was read.
type Report struct {
	Rows    int `json:"rows"`    // data rows read
	Skipped int `json:"skipped"` // rows dropped for an empty name or extra cells
	Merged  int `json:"merged"`  // rows folded into an earlier row of the same character
}

// TableDocument is the JSON layout of an appearance table.
type TableDocument struct {
	Issues     []string            `json:"issues"`
	Characters []CharacterDocument `json:"characters"`
}

// CharacterDocument is one character row: issue title to kind label.
type CharacterDocument struct {
	Name        string            `json:"name"`
	Appearances map[string]string `json:"appearances,omitempty"`
}

// ReadTableCSV decodes a CSV appearance table. ReadTableCSV does not close r.
func ReadTableCSV(r io.Reader) (*appearance.Table, Report, error) {
	var rep Report
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, rep, ErrMissingHeader
	}
	if err != nil {
		return nil, rep, fmt.Errorf("read header: %w", err)
	}
	issues := make([]string, 0, len(header)-1)
	for _, h := range header[1:] {
		issues = append(issues, strings.TrimSpace(h))
	}
	t, err := appearance.NewTable(issues)
	if err != nil {
		return nil, rep, fmt.Errorf("header: %w", err)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rep, fmt.Errorf("read row %d: %w", rep.Rows+1, err)
		}
		rep.Rows++

		name := strings.TrimSpace(rec[0])
		if name == "" || len(rec) > len(header) {
			rep.Skipped++
			continue
		}
		if err := addRow(t, name, issues, rec[1:], &rep); err != nil {
			return nil, rep, fmt.Errorf("row %d: %w", rep.Rows, err)
		}
	}
	return t, rep, nil
}

func addRow(t *appearance.Table, name string, issues, cells []string, rep *Report) error {
	if t.Has(name) {
		rep.Merged++
	} else if err := t.AddCharacter(name); err != nil {
		return err
	}
	for i, cell := range cells {
		k := appearance.ParseKind(cell)
		if k.IsAbsent() {
			continue
		}
		if err := t.Merge(name, issues[i], k); err != nil {
			return err
		}
	}
	return nil
}

// ReadTableJSON decodes a JSON appearance table. Repeated characters are
// merged like in CSV input.
func ReadTableJSON(r io.Reader) (*appearance.Table, Report, error) {
	var doc TableDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Report{}, fmt.Errorf("decode: %w", err)
	}
	return doc.Table()
}

// Table builds an appearance table from the document.
func (d TableDocument) Table() (*appearance.Table, Report, error) {
	var rep Report
	t, err := appearance.NewTable(d.Issues)
	if err != nil {
		return nil, rep, err
	}
	for _, c := range d.Characters {
		rep.Rows++
		name := strings.TrimSpace(c.Name)
		if name == "" {
			rep.Skipped++
			continue
		}
		if t.Has(name) {
			rep.Merged++
		} else if err := t.AddCharacter(name); err != nil {
			return nil, rep, err
		}
		for issue, label := range c.Appearances {
			k := appearance.ParseKind(label)
			if k.IsAbsent() {
				continue
			}
			if err := t.Merge(name, issue, k); err != nil {
				return nil, rep, fmt.Errorf("character %q: %w", name, err)
			}
		}
	}
	return t, rep, nil
}

// ImportTable reads a table file, choosing CSV or JSON by extension.
func ImportTable(path string) (*appearance.Table, Report, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, Report{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if format == FormatCSV {
		return ReadTableCSV(f)
	}
	return ReadTableJSON(f)
}

// WriteTableCSV encodes t as CSV with a "character name" key column.
func WriteTableCSV(t *appearance.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"character name"}, t.Issues()...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, name := range t.Characters() {
		row := t.Row(i)
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, name)
		for _, k := range row {
			rec = append(rec, k.String())
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %q: %w", name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// NewTableDocument converts t to its JSON layout. Absent cells are omitted.
func NewTableDocument(t *appearance.Table) TableDocument {
	issues := t.Issues()
	doc := TableDocument{Issues: issues, Characters: make([]CharacterDocument, 0, t.Len())}
	for i, name := range t.Characters() {
		c := CharacterDocument{Name: name, Appearances: map[string]string{}}
		for j, k := range t.Row(i) {
			if !k.IsAbsent() {
				c.Appearances[issues[j]] = k.String()
			}
		}
		doc.Characters = append(doc.Characters, c)
	}
	return doc
}

// WriteTableJSON encodes t in the JSON table layout.
func WriteTableJSON(t *appearance.Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewTableDocument(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

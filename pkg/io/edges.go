package io

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/comicweb/pkg/edges"
)

var edgeHeader = []string{"source", "target", "weight"}

// EdgeDocument is the JSON layout of an edge list.
type EdgeDocument struct {
	Edges edges.List `json:"edges"`
}

// WriteEdgesCSV writes l as CSV with a source,target,weight header.
func WriteEdgesCSV(l edges.List, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(edgeHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range l {
		rec := []string{e.Source, e.Target, strconv.FormatFloat(e.Weight, 'g', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %s->%s: %w", e.Source, e.Target, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEdgesJSON writes l as {"edges": [...]}. A nil list is written as an
// empty array.
func WriteEdgesJSON(l edges.List, w io.Writer) error {
	if l == nil {
		l = edges.List{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(EdgeDocument{Edges: l}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadEdgesCSV reads an edge list written by [WriteEdgesCSV]. The header row
// is optional.
func ReadEdgesCSV(r io.Reader) (edges.List, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var out edges.List
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), edgeHeader[0]) {
			continue
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: weight: %w", line, err)
		}
		out = append(out, edges.Edge{
			Source: strings.TrimSpace(rec[0]),
			Target: strings.TrimSpace(rec[1]),
			Weight: w,
		})
	}
	return out, nil
}

// ReadEdgesJSON reads an edge list written by [WriteEdgesJSON].
func ReadEdgesJSON(r io.Reader) (edges.List, error) {
	var doc EdgeDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.Edges, nil
}

// ImportEdges reads an edge list file, choosing CSV or JSON by extension.
func ImportEdges(path string) (edges.List, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if format == FormatCSV {
		return ReadEdgesCSV(f)
	}
	return ReadEdgesJSON(f)
}

// ExportEdges writes l to path, choosing CSV or JSON by extension.
func ExportEdges(l edges.List, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if format == FormatCSV {
		return WriteEdgesCSV(l, f)
	}
	return WriteEdgesJSON(l, f)
}

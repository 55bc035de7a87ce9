// Package export writes solved beams to CSV, XLSX and PDF files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Table is a set of distributions sampled on a common grid.
type Table struct {
	X      []float64
	Kinds  []beam.Kind
	Values [][]float64 // Values[i][j] is Kinds[j] at X[i]
}

// Sample evaluates kinds on n points over [0, fraction·L].
func Sample(sol *beam.Solution, kinds []beam.Kind, n int, fraction float64) (Table, error) {
	t := Table{Kinds: kinds}
	for j, k := range kinds {
		xs, ys, err := sol.Sample(k, n, fraction)
		if err != nil {
			return Table{}, err
		}
		if j == 0 {
			t.X = xs
			t.Values = make([][]float64, len(xs))
			for i := range t.Values {
				t.Values[i] = make([]float64, len(kinds))
			}
		}
		for i, y := range ys {
			t.Values[i][j] = y
		}
	}
	return t, nil
}

// Header returns the column names, x first.
func (t Table) Header() []string {
	out := []string{"x"}
	for _, k := range t.Kinds {
		out = append(out, k.String())
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes the table with a header row.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	row := make([]string, len(t.Kinds)+1)
	for i, x := range t.X {
		row[0] = formatFloat(x)
		for j, v := range t.Values[i] {
			row[j+1] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Format is an output file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case CSV, XLSX, PDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use .csv, .xlsx or .pdf)", filepath.Ext(path))
}

// Options describes what to export.
type Options struct {
	Title    string
	Kinds    []beam.Kind
	Samples  int
	Fraction float64
}

// WriteFile exports sol to path in the format its extension names.
func WriteFile(path string, sol *beam.Solution, opts Options) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if len(opts.Kinds) == 0 {
		opts.Kinds = beam.Kinds()
	}
	t, err := Sample(sol, opts.Kinds, opts.Samples, opts.Fraction)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch format {
	case XLSX:
		return WriteXLSX(path, sol, t)
	case PDF:
		return WritePDF(path, sol, t, opts.Title)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// reactionRows lists the reactions in display order.
func reactionRows(sol *beam.Solution) [][2]string {
	r := sol.Reactions()
	m := r.Map()
	var rows [][2]string
	for _, k := range r.Keys() {
		rows = append(rows, [2]string{k, formatFloat(m[k])})
	}
	return rows
}

// extremes returns, per kind, the sampled value of largest magnitude and its position.
func extremes(t Table) map[beam.Kind][2]float64 {
	out := make(map[beam.Kind][2]float64, len(t.Kinds))
	for j, k := range t.Kinds {
		best := 0
		for i := range t.X {
			if abs(t.Values[i][j]) > abs(t.Values[best][j]) {
				best = i
			}
		}
		if len(t.X) > 0 {
			out[k] = [2]float64{t.Values[best][j], t.X[best]}
		}
	}
	return out
}

func sortedKinds(m map[beam.Kind][2]float64) []beam.Kind {
	ks := make([]beam.Kind, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Package table renders flattened rows for the command line tools.
package table

import (
	"encoding/csv"
	"io"
	"strings"
	"text/tabwriter"
)

type Recorder interface {
	Record() []string
}

// Print writes the first limit rows (all when limit <= 0) as an aligned table.
func Print[T Recorder](w io.Writer, header []string, rows []T, limit int) error {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := io.WriteString(tw, strings.Join(header, "\t")+"\n"); err != nil {
		return err
	}
	for _, r := range rows {
		rec := r.Record()
		for i := range rec {
			rec[i] = cell(rec[i])
		}
		if _, err := io.WriteString(tw, strings.Join(rec, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCSV writes header then every row, header order kept exactly.
func WriteCSV[T Recorder](w io.Writer, header []string, rows []T) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// cell keeps one row per line and the columns aligned.
func cell(s string) string {
	s = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
	if r := []rune(s); len(r) > 40 {
		return string(r[:39]) + "…"
	}
	return s
}

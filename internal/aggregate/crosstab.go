package aggregate

import (
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// Cell identifies one row/column pair of a cross-tab.
type Cell struct {
	Row    model.MSIRating        `json:"row"`
	Column model.AssessmentStatus `json:"column"`
}

// Table counts joined records per rating and status. Every configured pair
// is present, zero or not.
type Table struct {
	counts  map[Cell]int
	rows    []model.MSIRating
	columns []model.AssessmentStatus
}

// CrossTab counts joined records whose rating equals a row and whose status
// equals a column. Records outside the configured rows or columns are not
// counted. Duplicate rows or columns are collapsed.
func CrossTab(joined []model.JoinedRecord, rows []model.MSIRating, columns []model.AssessmentStatus) *Table {
	t := &Table{counts: make(map[Cell]int, len(rows)*len(columns))}

	seenRow := make(map[model.MSIRating]bool, len(rows))
	for _, r := range rows {
		if !seenRow[r] {
			seenRow[r] = true
			t.rows = append(t.rows, r)
		}
	}
	seenCol := make(map[model.AssessmentStatus]bool, len(columns))
	for _, c := range columns {
		if !seenCol[c] {
			seenCol[c] = true
			t.columns = append(t.columns, c)
		}
	}
	for _, r := range t.rows {
		for _, c := range t.columns {
			t.counts[Cell{Row: r, Column: c}] = 0
		}
	}

	for _, j := range joined {
		cell := Cell{Row: j.ESG.MSIRating, Column: j.ESG.Status}
		if _, ok := t.counts[cell]; ok {
			t.counts[cell]++
		}
	}
	return t
}

// Count returns the count of one cell; unknown pairs are 0.
func (t *Table) Count(row model.MSIRating, column model.AssessmentStatus) int {
	return t.counts[Cell{Row: row, Column: column}]
}

// Rows returns the row categories in configured order.
func (t *Table) Rows() []model.MSIRating {
	out := make([]model.MSIRating, len(t.rows))
	copy(out, t.rows)
	return out
}

// Columns returns the column categories in configured order.
func (t *Table) Columns() []model.AssessmentStatus {
	out := make([]model.AssessmentStatus, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether a pair is part of the table.
func (t *Table) Has(row model.MSIRating, column model.AssessmentStatus) bool {
	_, ok := t.counts[Cell{Row: row, Column: column}]
	return ok
}

// Total returns the number of counted records.
func (t *Table) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// ColumnSeries is the per-row series of one column, as a stacked bar chart
// draws it.
type ColumnSeries struct {
	Column model.AssessmentStatus `json:"column"`
	Points Series                 `json:"points"`
}

// Series returns one series per column with points in row order.
func (t *Table) Series() []ColumnSeries {
	out := make([]ColumnSeries, 0, len(t.columns))
	for _, c := range t.columns {
		points := make(Series, 0, len(t.rows))
		for _, r := range t.rows {
			points = append(points, Point{Label: string(r), Value: float64(t.Count(r, c))})
		}
		out = append(out, ColumnSeries{Column: c, Points: points})
	}
	return out
}

// RowTotals collapses the table into one point per row.
func (t *Table) RowTotals() Series {
	out := make(Series, 0, len(t.rows))
	for _, r := range t.rows {
		total := 0
		for _, c := range t.columns {
			total += t.Count(r, c)
		}
		out = append(out, Point{Label: string(r), Value: float64(total)})
	}
	return out
}

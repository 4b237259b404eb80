package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/supplier-drilldown/internal/aggregate"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/trend"
	"github.com/Veraticus/supplier-drilldown/internal/view"
)

const barWidth = 30

// FormatValue prints a series value without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTrend renders a month-over-month change with its arrow.
func FormatTrend(percent float64, dir trend.Direction) string {
	text := fmt.Sprintf("%s%% vs previous month", FormatValue(percent))
	switch dir {
	case trend.Up:
		return WarningStyle.Render(UpIcon + " " + text)
	case trend.Down:
		return SuccessStyle.Render(DownIcon + " " + text)
	default:
		return SubtleStyle.Render(FlatIcon + " " + text)
	}
}

// RenderResult formats one computed view.
func RenderResult(res *view.Result) string {
	var b strings.Builder
	b.WriteString(FormatTitle(res.Title))
	b.WriteString("\n")

	if res.Kind == view.KindMSI && res.Table != nil {
		b.WriteString(RenderTable(res.Table))
	} else {
		b.WriteString(RenderSeries(res.Series))
	}

	if res.Kind == view.KindTrend {
		b.WriteString("\n")
		b.WriteString(FormatTrend(res.TrendPercent, res.Direction))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s%% of filtered records have an open finding", FormatValue(res.Headline)))
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d records after filters", len(res.Filtered))))
	b.WriteString("\n")
	return b.String()
}

// RenderSeries draws one labeled bar per point, scaled to the largest value.
func RenderSeries(s aggregate.Series) string {
	if len(s) == 0 {
		return SubtleStyle.Render("(no data)")
	}

	width := 0
	peak := 0.0
	for _, p := range s {
		width = max(width, lipgloss.Width(p.Label))
		peak = max(peak, p.Value)
	}

	lines := make([]string, 0, len(s))
	for _, p := range s {
		n := 0
		if peak > 0 && p.Value > 0 {
			n = max(1, int(math.Round(p.Value/peak*barWidth)))
		}
		pad := strings.Repeat(" ", width-lipgloss.Width(p.Label))
		bar := BarStyle.Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%s%s  %s %s", p.Label, pad, bar, FormatValue(p.Value)))
	}
	return strings.Join(lines, "\n")
}

// RenderTable draws a rating by status grid.
func RenderTable(t *aggregate.Table) string {
	headers := []string{"MSI Rating"}
	for _, c := range t.Columns() {
		headers = append(headers, string(c))
	}

	rows := make([][]string, 0, len(t.Rows()))
	for _, r := range t.Rows() {
		row := []string{string(r)}
		for _, c := range t.Columns() {
			row = append(row, strconv.Itoa(t.Count(r, c)))
		}
		rows = append(rows, row)
	}
	return newTable(headers, rows)
}

// RenderDrilldown lists the records behind a clicked label. Category codes
// are shown by name.
func RenderDrilldown(d *view.Drilldown, names model.CategoryNames) string {
	title := FormatDrillTitle(fmt.Sprintf("%s: %s (%d)", d.View, d.Label, d.Count))
	if d.Len() == 0 {
		return title + "\n" + SubtleStyle.Render("(no records)") + "\n"
	}

	headers := []string{"ID", "Supplier", "Location", "Category", "Vendor Code"}
	var rows [][]string
	if d.Joined != nil {
		headers = append(headers, "MSI Rating", "Status")
		for _, j := range d.Joined {
			rows = append(rows, append(recordColumns(j.AssessmentRecord, names), string(j.ESG.MSIRating), string(j.ESG.Status)))
		}
	} else {
		for _, r := range d.Records {
			rows = append(rows, recordColumns(r, names))
		}
	}
	return title + "\n" + newTable(headers, rows) + "\n"
}

// RenderViews lists the configured views.
func RenderViews(configs []view.Config) string {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{c.Name, string(c.Kind), c.Title})
	}
	return newTable([]string{"Name", "Kind", "Title"}, rows)
}

func recordColumns(r model.AssessmentRecord, names model.CategoryNames) []string {
	code, _ := r.VendorKey()
	var supplier, location, category string
	if r.Vendor != nil {
		supplier = r.Vendor.Name
		location = r.Vendor.Location
		if r.Vendor.Category != "" {
			category = names.Name(r.Vendor.Category)
		}
	}
	return []string{r.ID, supplier, location, category, code}
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		String()
}

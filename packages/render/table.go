package render

import (
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SpecRow is one summary table row: a single spec file, or the run-wide
// totals when used as the footer.
type SpecRow struct {
	Name    string
	Clock   string
	Total   int
	Passed  int
	Failing int
	Flaky   int
	Pending int
	Skipped int
}

// Icon returns the pass/fail icon for the row.
func (r SpecRow) Icon() string {
	if r.Failing > 0 {
		return IconFail
	}
	return IconPass
}

// SummaryTable renders one row per spec plus a totals footer. Rows and the
// footer are green when their failing count is zero, red otherwise. Spec
// names are truncated to nameWidth.
func SummaryTable(w io.Writer, rows []SpecRow, footer SpecRow, nameWidth int) {
	if color.NoColor {
		text.DisableColors()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Color.Footer = rowColors(footer)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: nameWidth, WidthMaxEnforcer: func(s string, _ int) string { return s }},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"", "Spec", "Time", "Tests", "Passed", "Failed", "Flaky", "Pending", "Skipped"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Icon(), Truncate(r.Name, nameWidth), r.Clock,
			r.Total, r.Passed, r.Failing, r.Flaky, r.Pending, r.Skipped,
		})
	}
	t.AppendFooter(table.Row{
		footer.Icon(), "Total", footer.Clock,
		footer.Total, footer.Passed, footer.Failing, footer.Flaky, footer.Pending, footer.Skipped,
	})

	t.SetRowPainter(func(row table.Row) text.Colors {
		if icon, ok := row[0].(string); ok && icon == IconFail {
			return text.Colors{text.FgRed}
		}
		return text.Colors{text.FgGreen}
	})

	t.Render()
}

func rowColors(r SpecRow) text.Colors {
	if r.Failing > 0 {
		return text.Colors{text.FgRed}
	}
	return text.Colors{text.FgGreen}
}

// Package render prints item records as tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"geprices/internal/item"
)

// Column is one table column: a header and how to extract its cell.
type Column struct {
	Label string
	Value func(r *item.Record) string
	// Align and Color are used by NewTable only. Color may be nil.
	Align int
	Color func(r *item.Record) tcell.Color
}

// DefaultColumns returns a new slice on every call.
func DefaultColumns() []Column {
	return []Column{
		NameColumn(),
		{Label: "Low Price", Value: func(r *item.Record) string { return Int(r.LowPrice()) }, Align: tview.AlignRight},
		{Label: "High Price", Value: func(r *item.Record) string { return Int(r.HighPrice()) }, Align: tview.AlignRight},
		{Label: "Link", Value: func(r *item.Record) string { return r.Link() }},
	}
}

// NameColumn shows the item name.
func NameColumn() Column {
	return Column{Label: "Name", Value: func(r *item.Record) string {
		if n := r.Name(); n != nil {
			return *n
		}
		return "-"
	}}
}

// MarginColumns adds margin and ROI.
func MarginColumns() []Column {
	return []Column{
		{Label: "Margin", Value: func(r *item.Record) string { return Int(r.Margin()) }, Align: tview.AlignRight},
		{Label: "ROI %", Value: func(r *item.Record) string {
			if roi := r.ROI(); roi != nil {
				return strconv.FormatFloat(*roi, 'f', 2, 64)
			}
			return "-"
		}, Align: tview.AlignRight, Color: func(r *item.Record) tcell.Color { return roiColor(r.ROI()) }},
	}
}

// Int formats a nullable integer, "-" when unknown.
func Int(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

// Write prints records as an aligned text table.
func Write(w io.Writer, records []*item.Record, columns []Column) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	labels := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = c.Label
	}
	if _, err := fmt.Fprintln(tw, strings.Join(labels, "\t")); err != nil {
		return err
	}

	cells := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			cells[i] = c.Value(r)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// NewTable builds a tview table with a fixed header row.
func NewTable(records []*item.Record, columns []Column) *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0)
	table.SetTitle(fmt.Sprintf(" Items (%d) ", len(records))).SetBorder(true)

	for col, c := range columns {
		cell := tview.NewTableCell(c.Label).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(c.Align).
			SetSelectable(false)
		table.SetCell(0, col, cell)
	}

	for i, r := range records {
		row := i + 1
		for col, c := range columns {
			cell := tview.NewTableCell(c.Value(r)).SetAlign(c.Align)
			if c.Color != nil {
				cell.SetTextColor(c.Color(r))
			}
			table.SetCell(row, col, cell)
		}
	}
	return table
}

func roiColor(roi *float64) tcell.Color {
	switch {
	case roi == nil:
		return tcell.ColorGray
	case *roi > 0:
		return tcell.ColorGreen
	case *roi < 0:
		return tcell.ColorRed
	default:
		return tcell.ColorWhite
	}
}

package analysis

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/pkg/geometry"
)

// ReportRow is one dimension in a report
type ReportRow struct {
	ID      int
	Type    dimension.Type
	Value   string
	Anchors []geometry.Vector3
}

// Report lists dimensions with their displayed values
func Report(records []dimension.Record, style dimension.Style) []ReportRow {
	rows := make([]ReportRow, 0, len(records))
	for _, rec := range records {
		row := ReportRow{ID: rec.ID, Type: rec.Type, Anchors: []geometry.Vector3{rec.AnchorA, rec.AnchorB}}
		if rec.SecondArm != nil {
			row.Anchors = append(row.Anchors, *rec.SecondArm)
		}
		row.Anchors = append(row.Anchors, rec.Aux)

		set, ok := dimension.Build(rec, &style, false)
		switch {
		case rec.Type == dimension.Leader:
			row.Value = rec.Label
		case ok && len(set.Labels) > 0:
			row.Value = set.Labels[0].Text
		default:
			row.Value = "-"
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteReport writes the rows as an aligned table
func WriteReport(w io.Writer, rows []ReportRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tVALUE\tANCHORS")
	for _, row := range rows {
		anchors := ""
		for i, a := range row.Anchors {
			if i > 0 {
				anchors += " "
			}
			anchors += FormatVector(a)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.ID, row.Type, row.Value, anchors)
	}
	return tw.Flush()
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

package wormhole4d

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// FormatRenderStats renders a RenderStats as a text table.
func FormatRenderStats(stats RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Size", "Workers", "Steps", "Halvings", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.Steps),
		fmt.Sprintf("%d", stats.Halvings),
		stats.RenderTime.String(),
	})
	table.Render()
	return buf.String()
}

// FormatColumnSummary renders per-column medians under the given headers.
// label names the quantity, e.g. "error" or "ratio".
func FormatColumnSummary(label string, headers []string, medians []Real) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Column", "Median " + label})
	for i, m := range medians {
		h := fmt.Sprintf("#%d", i)
		if i < len(headers) {
			h = headers[i]
		}
		table.Append([]string{h, fmt.Sprintf("%.6g", m)})
	}
	table.Render()
	return buf.String()
}

// FormatEventStats renders trace event counts.
func FormatEventStats(events []EventCount) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Event", "Count", "First point", "First direction", "Attempts"})
	for _, e := range events {
		table.Append([]string{
			e.Name,
			fmt.Sprintf("%d", e.Count),
			formatVec(e.First.Point),
			formatVec(e.First.Direction),
			fmt.Sprintf("%d", e.First.Attempts),
		})
	}
	table.Render()
	return buf.String()
}

func formatVec(v Vector4) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g, %.4g)", v.X, v.Y, v.Z, v.W)
}

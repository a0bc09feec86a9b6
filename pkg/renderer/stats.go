package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WorkerStats is what one worker did over the whole render
type WorkerStats struct {
	Worker   int
	Rows     int           // rows shaded, summed over passes
	Duration time.Duration // time spent shading, summed over passes
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int
	Passes        int
	Workers       []WorkerStats
	Duration      time.Duration

	// RowOwners[pass][row] is the worker that claimed the row in that pass
	RowOwners [][]int
}

// TotalRows is the number of rows shaded across all passes
func (s RenderStats) TotalRows() int {
	total := 0
	for _, w := range s.Workers {
		total += w.Rows
	}
	return total
}

// Table renders per-worker statistics as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of rows", "Shading time"})

	totalRows := s.TotalRows()
	for _, w := range s.Workers {
		percent := 0.0
		if totalRows > 0 {
			percent = 100 * float64(w.Rows) / float64(totalRows)
		}
		table.Append([]string{
			fmt.Sprintf("%d", w.Worker),
			fmt.Sprintf("%d", w.Rows),
			fmt.Sprintf("%02.1f %%", percent),
			w.Duration.String(),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d", totalRows), "TOTAL", s.Duration.String()})

	table.Render()
	return buf.String()
}

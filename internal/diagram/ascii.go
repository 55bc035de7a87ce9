package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// PlotOptions controls the size of terminal plots.
type PlotOptions struct {
	Height int
	Width  int
}

// DefaultPlotOptions fits an 80 column terminal.
var DefaultPlotOptions = PlotOptions{Height: 12, Width: 64}

// DrawASCIIDistribution samples distribution k over [0, fraction·L] and
// renders it as a terminal line chart.
func DrawASCIIDistribution(sol *beam.Solution, k beam.Kind, samples int, fraction float64, opts PlotOptions) (string, error) {
	xs, ys, err := sol.Sample(k, samples, fraction)
	if err != nil {
		return "", err
	}
	caption := fmt.Sprintf("%s, x = 0 .. %.3g", k.Title(), xs[len(xs)-1])
	return asciigraph.Plot(ys,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	), nil
}

// DrawASCIISection sketches the I-section: the flange sits on top of the web
// and the centroid is marked on the right.
func DrawASCIISection(sec section.ISection, props *section.Properties) string {
	const (
		maxWidth  = 30
		maxHeight = 16
	)

	total := sec.WebHeight + sec.FlangeThickness/2
	scaleY := float64(maxHeight) / total
	scaleX := float64(maxWidth) / math.Max(sec.FlangeWidth, sec.WebThickness)

	flangeRows := max(1, int(math.Round(sec.FlangeThickness*scaleY)))
	webRows := max(1, int(math.Round((sec.WebHeight-sec.FlangeThickness/2)*scaleY)))
	flangeCols := max(3, int(math.Round(sec.FlangeWidth*scaleX)))
	webCols := max(1, int(math.Round(sec.WebThickness*scaleX)))
	if webCols > flangeCols {
		webCols = flangeCols
	}

	// rows counted from the top of the flange
	rows := flangeRows + webRows
	centroidRow := rows - int(math.Round(props.CentroidY*scaleY))
	centroidRow = min(max(centroidRow, 0), rows-1)

	var sb strings.Builder
	sb.WriteString("\n  I-SECTION\n  ─────────\n")
	pad := (flangeCols - webCols) / 2
	for i := 0; i < rows; i++ {
		var line string
		if i < flangeRows {
			line = "  " + strings.Repeat("█", flangeCols)
		} else {
			line = "  " + strings.Repeat(" ", pad) + strings.Repeat("█", webCols) + strings.Repeat(" ", flangeCols-pad-webCols)
		}
		if i == centroidRow {
			line += fmt.Sprintf("  ◄─ y_cm = %.4g", props.CentroidY)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", flangeCols)))
	sb.WriteString(fmt.Sprintf("  F = %g, FT = %g, W = %g, WT = %g\n",
		sec.FlangeWidth, sec.FlangeThickness, sec.WebHeight, sec.WebThickness))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

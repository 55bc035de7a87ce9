package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// WritePDF writes a one-document summary: geometry, reactions, extreme
// values and the closed-form distributions.
func WritePDF(path string, sol *beam.Solution, t Table, title string) error {
	if title == "" {
		title = "Beam Analysis Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	sup := sol.Supports()
	supports := fmt.Sprintf("cantilever fixed at x = %g", sup.Pin)
	if sup.Kind() == beam.PinRoller {
		supports = fmt.Sprintf("pin at x = %g, roller at x = %g", sup.Pin, *sup.Roller)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Span: L = %g, %s", sol.Length(), supports))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Moment loads: %s", sol.MomentMode()))
	pdf.Ln(10)

	sec, props := sol.Section(), sol.Properties()
	heading(pdf, "Section")
	rows := [][2]string{
		{"Flange F x FT", fmt.Sprintf("%g x %g", sec.FlangeWidth, sec.FlangeThickness)},
		{"Web W x WT", fmt.Sprintf("%g x %g", sec.WebHeight, sec.WebThickness)},
		{"Area A", formatFloat(props.Area)},
		{"Centroid y_cm", formatFloat(props.CentroidY)},
		{"y_max", formatFloat(props.YMax)},
		{"I_zz", formatFloat(props.Izz)},
	}
	table(pdf, rows)

	heading(pdf, "Reactions")
	table(pdf, reactionRows(sol))

	heading(pdf, "Extreme values (sampled)")
	ext := extremes(t)
	var extRows [][2]string
	for _, k := range sortedKinds(ext) {
		v := ext[k]
		extRows = append(extRows, [2]string{k.Title(), fmt.Sprintf("%.6g at x = %.4g", v[0], v[1])})
	}
	table(pdf, asciiRows(extRows))

	heading(pdf, "Distributions")
	pdf.SetFont("Courier", "", 9)
	for _, k := range beam.Kinds() {
		pdf.MultiCell(0, 5, fmt.Sprintf("%s(x) = %s", k, sol.Text(k)), "", "L", false)
		pdf.Ln(1)
	}

	return pdf.OutputFileAndClose(path)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(8)
}

func table(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(60, 6, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, 6, r[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// asciiRows replaces the Greek letters the core fonts cannot encode.
func asciiRows(rows [][2]string) [][2]string {
	r := strings.NewReplacer("σ", "sigma", "τ", "tau")
	out := make([][2]string, len(rows))
	for i, row := range rows {
		out[i] = [2]string{r.Replace(row[0]), r.Replace(row[1])}
	}
	return out
}

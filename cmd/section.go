package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/section"
)

var (
	sectionFile  string
	sectionUnit  string
	sectionImage string
	sectionDims  section.ISection
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Show the I-section constants",
	Long: `Compute the constants of an I-section made of one flange on top of one
web: area, centroid height, extreme fiber distance, second moment of area
and the torsion shape factors.

The section is described in a local system with y pointing up from the
bottom of the web; the flange is centred at y = W.

Examples:
  gobeam section --flange-width 200 --flange-thickness 20 \
    --web-height 300 --web-thickness 10 --section-unit MM

  # Section of a case file, with an image of the outline
  gobeam section -f beam.yaml --image section.svg`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	f := sectionCmd.Flags()
	f.StringVarP(&sectionFile, "file", "f", "", "Take the section from a beam case file")
	f.StringVar(&sectionUnit, "section-unit", "", "Unit of section dimensions (M, MM, IN, FT)")
	f.Float64Var(&sectionDims.FlangeWidth, "flange-width", 0, "Flange width F")
	f.Float64Var(&sectionDims.FlangeThickness, "flange-thickness", 0, "Flange thickness FT")
	f.Float64Var(&sectionDims.WebHeight, "web-height", 0, "Web height W")
	f.Float64Var(&sectionDims.WebThickness, "web-thickness", 0, "Web thickness WT")
	f.StringVar(&sectionImage, "image", "", "Also draw the section to this file (.png, .svg, .pdf)")
}

func runSection(cmd *cobra.Command, args []string) error {
	sec, unit := sectionDims, sectionUnit
	if sectionFile != "" {
		bc, err := config.Load(sectionFile)
		if err != nil {
			return err
		}
		sec = bc.Section
		if !cmd.Flags().Changed("section-unit") {
			unit = bc.SectionUnit
		}
	}
	for _, d := range []*float64{&sec.FlangeWidth, &sec.FlangeThickness, &sec.WebHeight, &sec.WebThickness} {
		v, err := config.ToMetres(*d, unit)
		if err != nil {
			return err
		}
		*d = v
	}

	props, err := sec.CalculateProperties()
	if err != nil {
		return err
	}

	printBanner("I-SECTION PROPERTIES")
	printHeading("DIMENSIONS (m):")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Flange width (F):\t%g\n", sec.FlangeWidth)
	fmt.Fprintf(w, "  Flange thickness (FT):\t%g\n", sec.FlangeThickness)
	fmt.Fprintf(w, "  Web height (W):\t%g\n", sec.WebHeight)
	fmt.Fprintf(w, "  Web thickness (WT):\t%g\n", sec.WebThickness)
	w.Flush()
	fmt.Println()

	printHeading("CONSTANTS:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Area (A):\t%.6g\n", props.Area)
	fmt.Fprintf(w, "  Centroid (y_cm):\t%.6g\n", props.CentroidY)
	fmt.Fprintf(w, "  Extreme fiber (y_max):\t%.6g\n", props.YMax)
	fmt.Fprintf(w, "  Second moment (I_zz):\t%.6g\n", props.Izz)
	fmt.Fprintf(w, "  Shape factor, web (C1):\t%.6g\n", props.C1Web)
	fmt.Fprintf(w, "  Shape factor, flange (C1):\t%.6g\n", props.C1Flange)
	fmt.Fprintf(w, "  Shear stress per torque:\t%.6g\n", props.Torsion)
	w.Flush()

	fmt.Print(diagram.DrawASCIISection(sec, props))
	fmt.Println()

	if sectionImage != "" {
		if err := diagram.ExportSectionDiagram(sec, props, sectionImage); err != nil {
			return err
		}
		slog.Debug("file written", "path", sectionImage)
		fmt.Printf("  %s %s\n", okStyle.Render("✓ Section diagram written to"), sectionImage)
	}
	return nil
}

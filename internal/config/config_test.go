package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/poly"
)

const overhangYAML = `
name: overhang
length: 10
section: {flange_width: 2, flange_thickness: 1, web_height: 4, web_thickness: 1}
supports:
  pin: 0
  roller: 8
force_loads:
  - x: 0
    y: -10
    x1: 10
`

const cantileverJSON = `{
  "length": 4000,
  "length_unit": "mm",
  "section_unit": "MM",
  "section": {"flange_width": 200, "flange_thickness": 20, "web_height": 300, "web_thickness": 10},
  "supports": {"pin": 0, "roller": -1},
  "moment_mode": "consistent",
  "force_loads": [{"x": 0, "y": "-50", "x1": 4000, "category": "L"}],
  "moment_loads": [{"x": "2", "z": 0, "x1": 0, "x2": 2000}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAMLCase(t *testing.T) {
	g := NewWithT(t)
	c, err := Load(writeFile(t, "overhang.yaml", overhangYAML))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c.Name).To(Equal("overhang"))
	g.Expect(c.ForceLoads).To(HaveLen(1))
	g.Expect(c.ForceLoads[0].Y).To(Equal(Expression("-10")))

	b, err := c.Build()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Supports().Kind()).To(Equal(beam.PinRoller))

	sol, err := b.Calculate()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sol.Reactions().Map()["Ny2"]).To(BeNumerically("~", 12.5, 1e-12))
}

func TestLoadJSONCaseInMillimetres(t *testing.T) {
	g := NewWithT(t)
	c, err := Load(writeFile(t, "tip.json", cantileverJSON))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c.Name).To(Equal("tip"))

	b, err := c.Build()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Length()).To(Equal(4.0))
	g.Expect(b.Supports().Kind()).To(Equal(beam.Cantilever))
	g.Expect(b.Forces()[0].Category).To(Equal(nscp.Live))
	g.Expect(b.Moments()[0].Interval).To(Equal(beam.Between(0, 2)))

	sol, err := b.Calculate()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sol.MomentMode()).To(Equal(beam.MomentConsistent))
	g.Expect(sol.Section().WebHeight).To(BeNumerically("~", 0.3, 1e-12))

	r := sol.Reactions().Map()
	g.Expect(r["Ny"]).To(BeNumerically("~", 50, 1e-12))
	g.Expect(r["Mz"]).To(BeNumerically("~", 200, 1e-12))
	g.Expect(r["Mx"]).To(BeNumerically("~", -4, 1e-12))
}

func TestBuildReportsLoadIndex(t *testing.T) {
	g := NewWithT(t)
	c := DefaultCase()
	c.ForceLoads = append(c.ForceLoads, ForceLoad{Y: "-1", X1: 12})

	_, err := c.Build()
	g.Expect(err).To(MatchError(ContainSubstring("force load 2")))
	g.Expect(err).To(MatchError(beam.ErrOutsideSpan))

	c = DefaultCase()
	c.MomentLoads = []MomentLoad{{Z: "cos(x)", X1: 1}}
	_, err = c.Build()
	g.Expect(err).To(MatchError(poly.ErrNotPolynomial))

	c = DefaultCase()
	c.LengthUnit = "yd"
	_, err = c.Build()
	g.Expect(err).To(HaveOccurred())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"case.yaml", "case.json"} {
		t.Run(name, func(t *testing.T) {
			g := NewWithT(t)
			path := filepath.Join(t.TempDir(), name)
			want := DefaultCase()
			g.Expect(Save(path, want)).To(Succeed())

			got, err := Load(path)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(got).To(Equal(want))
		})
	}
}

func TestDefaultCaseSolves(t *testing.T) {
	g := NewWithT(t)
	b, err := DefaultCase().Build()
	g.Expect(err).NotTo(HaveOccurred())
	sol, err := b.Calculate()
	g.Expect(err).NotTo(HaveOccurred())

	r := sol.Reactions().Map()
	g.Expect(r["Ny1"]).To(BeNumerically("~", 500, 1e-9))
	g.Expect(r["Ny2"]).To(BeNumerically("~", 500, 1e-9))
}

func TestToMetres(t *testing.T) {
	tests := []struct {
		unit string
		in   float64
		want float64
	}{
		{"", 3, 3},
		{"m", 3, 3},
		{"MM", 2500, 2.5},
		{"in", 100, 2.54},
		{"FT", 3.281, 1},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			g := NewWithT(t)
			got, err := ToMetres(tt.in, tt.unit)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(got).To(BeNumerically("~", tt.want, 1e-12))
		})
	}

	_, err := ToMetres(1, "furlong")
	NewWithT(t).Expect(err).To(HaveOccurred())
}

func TestParseForceAndMoment(t *testing.T) {
	g := NewWithT(t)

	f, err := ParseForce("0, -2*x, 1, 4, L")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(f.Y).To(Equal(Expression("-2*x")))
	g.Expect(f.X1).To(Equal(1.0))
	g.Expect(*f.X2).To(Equal(4.0))
	g.Expect(f.Category).To(Equal("L"))

	m, err := ParseMoment("3,0,2")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m.X).To(Equal(Expression("3")))
	g.Expect(m.X2).To(BeNil())

	for _, bad := range []string{"1,2", "0,1,a", "0,1,2,b", "0,1,2,3,D,extra"} {
		_, err := ParseForce(bad)
		g.Expect(err).To(HaveOccurred(), bad)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvSamples, "")
	t.Setenv(EnvSpanFraction, "")
	t.Setenv(EnvOutputDir, "")

	g := NewWithT(t)
	env, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(env).To(Equal(DefaultEnv()))

	path := writeFile(t, ".env", "GOBEAM_SAMPLES=250\nGOBEAM_SPAN_FRACTION=0.9\nGOBEAM_OUTPUT_DIR=out\n")
	env, err = LoadEnv(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(env).To(Equal(Env{Samples: 250, SpanFraction: 0.9, OutputDir: "out"}))

	t.Setenv(EnvSamples, "40")
	env, err = LoadEnv(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(env.Samples).To(Equal(40))

	t.Setenv(EnvSamples, "1")
	_, err = LoadEnv(path)
	g.Expect(err).To(HaveOccurred())
}

package nscp

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", Dead},
		{"D", Dead},
		{"live", Live},
		{"LR", Roof},
		{"w", Wind},
		{"Earthquake", Earthquake},
		{" r ", Rain},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g := NewWithT(t)
			c, err := ParseCategory(tt.in)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(c).To(Equal(tt.want))
		})
	}

	_, err := ParseCategory("snow")
	NewWithT(t).Expect(err).To(HaveOccurred())
}

func TestFactor(t *testing.T) {
	g := NewWithT(t)
	combo, ok := Find(LoadCombinations, "2a")
	g.Expect(ok).To(BeTrue())

	g.Expect(combo.Factor(Dead)).To(Equal(1.2))
	g.Expect(combo.Factor(Live)).To(Equal(1.6))
	g.Expect(combo.Factor(Roof)).To(Equal(0.5))
	g.Expect(combo.Factor(Rain)).To(BeZero())
	g.Expect(combo.Factor(Wind)).To(BeZero())
	g.Expect(combo.Factor("")).To(Equal(1.2))

	for _, c := range Categories {
		g.Expect(Unfactored.Factor(c)).To(Equal(1.0))
	}

	_, ok = Find(SimplifiedCombinations, "9")
	g.Expect(ok).To(BeFalse())
}

func TestAlternativesAreSeparateCombinations(t *testing.T) {
	g := NewWithT(t)

	seen := map[string]bool{}
	for _, combo := range LoadCombinations {
		g.Expect(seen[combo.ID]).To(BeFalse(), "duplicate id "+combo.ID)
		seen[combo.ID] = true

		// roof live and rain are never factored together, nor live and wind
		// outside combination 4
		g.Expect(combo.Roof > 0 && combo.Rain > 0).To(BeFalse(), combo.ID)
		if combo.Roof == 1.6 || combo.Rain == 1.6 {
			g.Expect(combo.Live > 0 && combo.Wind > 0).To(BeFalse(), combo.ID)
		}
	}
	g.Expect(LoadCombinations).To(HaveLen(12))

	combo, ok := Find(LoadCombinations, "3d")
	g.Expect(ok).To(BeTrue())
	g.Expect(combo.Factor(Rain)).To(Equal(1.6))
	g.Expect(combo.Factor(Wind)).To(Equal(0.5))
	g.Expect(combo.Factor(Live)).To(BeZero())
	g.Expect(combo.Factor(Roof)).To(BeZero())
}

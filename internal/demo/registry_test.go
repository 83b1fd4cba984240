package demo_test

import (
	"context"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/figure"
)

type constantDemo struct{ title string }

func (*constantDemo) Name() string         { return "lorentz" }
func (*constantDemo) Summary() string      { return "replacement" }
func (*constantDemo) Params() []demo.Param { return nil }
func (c *constantDemo) Compute(context.Context, demo.Values) (*figure.Figure, error) {
	return figure.New(c.title), nil
}

var _ = Describe("Registry", func() {
	var reg *demo.Registry

	BeforeEach(func() {
		reg = demo.NewRegistry()
	})

	It("lists every demonstration sorted by name", func() {
		names := reg.Names()
		Expect(names).To(HaveLen(16))
		Expect(sort.StringsAreSorted(names)).To(BeTrue())
		Expect(names).To(ContainElements("blackbody", "nmr", "wavepacket", "fresnel", "orbits", "klein-gordon"))
	})

	It("returns fresh instances", func() {
		reg.Register(func() demo.Demo { return &constantDemo{title: "fresh"} })
		a, err := reg.Get("lorentz")
		Expect(err).NotTo(HaveOccurred())
		b, err := reg.Get("lorentz")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(BeIdenticalTo(b))

		a.(*constantDemo).title = "changed"
		fig, err := b.Compute(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(fig.Title).To(Equal("fresh"))
	})

	It("names the alternatives for an unknown demo", func() {
		_, err := reg.Get("perpetual-motion")
		Expect(err).To(MatchError(ContainSubstring("unknown demo: perpetual-motion")))
		Expect(err.Error()).To(ContainSubstring("available:"))
	})

	It("replaces a demo registered under an existing name", func() {
		reg.Register(func() demo.Demo { return &constantDemo{title: "stub"} })
		Expect(reg.Names()).To(HaveLen(16))
		d, err := reg.Get("lorentz")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Summary()).To(Equal("replacement"))
	})

	Describe("every demonstration", func() {
		It("has a summary and consistent sliders", func() {
			for _, d := range reg.All() {
				Expect(d.Summary()).NotTo(BeEmpty(), d.Name())
				seen := map[string]bool{}
				for _, p := range d.Params() {
					Expect(seen).NotTo(HaveKey(p.Name), d.Name())
					seen[p.Name] = true
					Expect(p.Min).To(BeNumerically("<=", p.Max), d.Name()+"/"+p.Name)
					Expect(p.Default).To(BeNumerically(">=", p.Min), d.Name()+"/"+p.Name)
					Expect(p.Default).To(BeNumerically("<=", p.Max), d.Name()+"/"+p.Name)
					Expect(p.Step).To(BeNumerically(">", 0), d.Name()+"/"+p.Name)
				}
			}
		})

		It("computes a valid figure at its defaults", func() {
			ctx := context.Background()
			for _, d := range reg.All() {
				fig, err := demo.Evaluate(ctx, d, nil)
				Expect(err).NotTo(HaveOccurred(), d.Name())
				Expect(fig.Title).NotTo(BeEmpty(), d.Name())
				Expect(fig.Panels).NotTo(BeEmpty(), d.Name())
			}
		})
	})

	It("marks the time driven demos as animated", func() {
		var animated []string
		for _, d := range reg.All() {
			if _, ok := d.(demo.Animated); ok {
				animated = append(animated, d.Name())
			}
		}
		Expect(animated).To(ConsistOf("klein-gordon", "wavepacket"))
	})
})

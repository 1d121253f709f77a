package decomp_test

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/field"
	"github.com/san-kum/saltflux/internal/scenario"
)

const tol = 1e-9

var grid = scenario.Grid{Times: 10, Space: 10, Depth: 10}

func build(name string, g scenario.Grid) *scenario.Fields {
	GinkgoHelper()
	sc, err := scenario.NewRegistry().Get(name)
	Expect(err).NotTo(HaveOccurred())
	f, err := sc.Build(g)
	Expect(err).NotTo(HaveOccurred())
	return f
}

func decompose(f *scenario.Fields, opts ...decomp.Option) *decomp.Decomposer {
	GinkgoHelper()
	d, err := decomp.New(f.Driving, f.Scalar, f.Area, opts...)
	Expect(err).NotTo(HaveOccurred())
	return d
}

func randomFields(seed int64, shape ...int) *scenario.Fields {
	rng := rand.New(rand.NewSource(seed))
	return &scenario.Fields{
		Driving: field.FromFunc(func([]int) float64 { return 2*rng.Float64() - 1 }, shape...),
		Scalar:  field.FromFunc(func([]int) float64 { return 35 * rng.Float64() }, shape...),
		Area:    field.FromFunc(func([]int) float64 { return 0.5 + rng.Float64() }, shape...),
	}
}

func expectAll(f *field.Field, want float64) {
	GinkgoHelper()
	Expect(f.MaskedCount()).To(BeZero())
	Expect(f.Valid()).To(HaveEach(BeNumerically("~", want, tol)))
}

func expectClose(got, want *field.Field) {
	GinkgoHelper()
	Expect(got.Shape()).To(Equal(want.Shape()))
	g, w := got.Values(), want.Values()
	for i := range w {
		if math.IsNaN(w[i]) {
			Expect(math.IsNaN(g[i])).To(BeTrue(), "element %d should be masked", i)
			continue
		}
		Expect(g[i]).To(BeNumerically("~", w[i], tol), "element %d", i)
	}
}

var _ = Describe("Decomposer", func() {
	Describe("construction", func() {
		It("accepts equally shaped fields", func() {
			f := build("uniform", grid)
			_, err := decomp.New(f.Driving, f.Scalar, f.Area)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accepts masked fields", func() {
			f := build("masked", grid)
			_, err := decomp.New(f.Driving, f.Scalar, f.Area)
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("rejects mismatched shapes",
			func(which int) {
				f := build("uniform", grid)
				in := []*field.Field{f.Driving, f.Scalar, f.Area}
				in[which] = field.Full(1, 10, 8, 10)

				d, err := decomp.New(in[0], in[1], in[2])
				Expect(d).To(BeNil())
				Expect(err).To(MatchError(decomp.ErrShapeMismatch))

				var sme *decomp.ShapeMismatchError
				Expect(errors.As(err, &sme)).To(BeTrue())
				Expect(sme.Driving).To(Equal(in[0].Shape()))
				Expect(sme.Scalar).To(Equal(in[1].Shape()))
				Expect(sme.Area).To(Equal(in[2].Shape()))
			},
			Entry("driving differs", 0),
			Entry("scalar differs", 1),
			Entry("area differs", 2),
		)
	})

	Describe("output shape", func() {
		It("keeps only the space axis", func() {
			d := decompose(build("uniform", grid))
			fluxes := d.Fluxes()
			Expect(fluxes).To(HaveLen(4))
			for _, f := range fluxes {
				Expect(f.Shape()).To(Equal([]int{10}))
			}
		})

		It("keeps both space axes of a two-dimensional grid", func() {
			d := decompose(build("tidal", scenario.Grid{Times: 12, Space: 4, Space2: 3, Depth: 5}))
			for _, f := range d.Fluxes() {
				Expect(f.Shape()).To(Equal([]int{4, 3}))
			}
		})
	})

	Describe("reference estuaries", func() {
		It("attributes a uniform estuary entirely to net flow", func() {
			fx := decompose(build("uniform", grid)).Fluxes()
			expectAll(fx[decomp.NetFlow], 300)
			expectAll(fx[decomp.TidalOscillation], 0)
			expectAll(fx[decomp.EstuarineCirculation], 0)
			expectAll(fx[decomp.TidalShear], 0)
		})

		It("attributes a salt wedge entirely to estuarine circulation", func() {
			fx := decompose(build("wedge", grid)).Fluxes()
			expectAll(fx[decomp.NetFlow], 0)
			expectAll(fx[decomp.TidalOscillation], 0)
			expectAll(fx[decomp.EstuarineCirculation], 150)
			expectAll(fx[decomp.TidalShear], 0)
		})

		It("halves the net flow where the lower half is masked", func() {
			fx := decompose(build("masked", grid)).Fluxes()

			net := fx[decomp.NetFlow].Values()
			Expect(net[:5]).To(HaveEach(BeNumerically("~", 300, tol)))
			Expect(net[5:]).To(HaveEach(BeNumerically("~", 150, tol)))
			expectAll(fx[decomp.TidalOscillation], 0)
			expectAll(fx[decomp.EstuarineCirculation], 0)
			expectAll(fx[decomp.TidalShear], 0)
		})

		It("sees a tidal estuary in every component", func() {
			fx := decompose(build("tidal", scenario.Grid{Times: 24, Space: 8, Depth: 6})).Fluxes()
			for _, k := range decomp.Kinds {
				Expect(fx[k].MaskedCount()).To(BeZero())
				Expect(fx[k].Valid()).To(ContainElement(Not(BeNumerically("~", 0, 1e-6))), k.String())
			}
		})
	})

	Describe("completeness", func() {
		DescribeTable("sums the fluxes to the total transport",
			func(seed int64, shape []int) {
				d := decompose(randomFields(seed, shape...))
				total := d.Total()
				Expect(total.MaskedCount()).To(BeZero())

				closure := d.Closure()
				Expect(closure.Shape()).To(Equal(d.SpaceShape()))
				Expect(closure.Valid()).To(HaveEach(BeNumerically("~", 0, tol)))
			},
			Entry("small", int64(1), []int{6, 4, 5}),
			Entry("long tide", int64(2), []int{40, 3, 8}),
			Entry("two space axes", int64(3), []int{8, 3, 4, 6}),
		)

		It("holds with a time-invariant mask", func() {
			f := randomFields(4, 9, 6, 7)
			dry := func(idx []int) bool { return idx[2] >= 3+idx[1]%3 }
			for _, fld := range []*field.Field{f.Driving, f.Scalar, f.Area} {
				fld.MaskWhere(dry)
			}

			closure := decompose(f).Closure()
			Expect(closure.MaskedCount()).To(BeZero())
			Expect(closure.Valid()).To(HaveEach(BeNumerically("~", 0, tol)))
		})

		It("holds for the tidal estuary", func() {
			d := decompose(build("tidal", scenario.Grid{Times: 36, Space: 5, Depth: 8}))
			scale := 0.0
			for _, v := range d.Total().Valid() {
				scale = math.Max(scale, math.Abs(v))
			}
			Expect(d.Closure().Valid()).To(HaveEach(BeNumerically("~", 0, tol*scale)))
		})
	})

	Describe("axis layout", func() {
		var base *scenario.Fields

		BeforeEach(func() {
			base = randomFields(7, 6, 5, 4)
		})

		DescribeTable("matches the (time, space, depth) result",
			func(timeAxis, depthAxis int) {
				want := decompose(base).Fluxes()

				moved, err := base.Arrange(timeAxis, depthAxis)
				Expect(err).NotTo(HaveOccurred())
				d := decompose(moved, decomp.WithTimeAxis(timeAxis), decomp.WithDepthAxis(depthAxis))
				got := d.Fluxes()

				for _, k := range decomp.Kinds {
					expectClose(got[k], want[k])
				}
			},
			Entry("(depth, space, time)", 2, 0),
			Entry("(space, time, depth)", 1, 2),
			Entry("(space, depth, time)", -1, 1),
			Entry("(time, depth, space)", 0, 1),
		)

		It("treats two space axes like one flattened axis", func() {
			wide := build("tidal", scenario.Grid{Times: 12, Space: 4, Space2: 3, Depth: 5})
			flat := &scenario.Fields{}
			for _, pair := range []struct {
				dst **field.Field
				src *field.Field
			}{
				{&flat.Driving, wide.Driving},
				{&flat.Scalar, wide.Scalar},
				{&flat.Area, wide.Area},
			} {
				r, err := pair.src.Reshape(12, 12, 5)
				Expect(err).NotTo(HaveOccurred())
				*pair.dst = r
			}

			got := decompose(wide).Fluxes()
			want := decompose(flat).Fluxes()
			for _, k := range decomp.Kinds {
				r, err := got[k].Reshape(12)
				Expect(err).NotTo(HaveOccurred())
				expectClose(r, want[k])
			}
		})
	})

	Describe("caching", func() {
		It("returns the same array on repeated access", func() {
			d := decompose(build("tidal", scenario.Grid{Times: 12, Space: 3, Depth: 4}))
			first := d.Flux1()
			Expect(d.Flux1()).To(BeIdenticalTo(first))
			Expect(d.Fluxes()[decomp.NetFlow]).To(BeIdenticalTo(first))
			Expect(d.Flux(decomp.TidalShear)).To(BeIdenticalTo(d.Flux4()))
			Expect(d.Total()).To(BeIdenticalTo(d.Total()))
		})

		It("computes each flux once under concurrent access", func() {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
			d := decompose(build("tidal", scenario.Grid{Times: 12, Space: 3, Depth: 4}), decomp.WithLogger(logger))

			const readers = 8
			results := make([][4]*field.Field, readers)
			var wg sync.WaitGroup
			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					results[idx] = d.Fluxes()
				}(i)
			}
			wg.Wait()

			for _, r := range results {
				for k := range r {
					Expect(r[k]).To(BeIdenticalTo(results[0][k]))
				}
			}
			Expect(strings.Count(buf.String(), "flux computed")).To(Equal(4))
		})
	})
})

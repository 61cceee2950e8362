package rain_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/rain"
)

var _ = Describe("Grid", func() {
	var params rain.Params

	BeforeEach(func() {
		params = rain.DefaultParams()
	})

	It("builds one cell per whole cell width", func() {
		g, err := rain.NewGrid(800, 600, params, rand.New(rand.NewSource(1)))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(50))

		for i, c := range g.Cells() {
			Expect(c.Column).To(Equal(i))
			Expect(c.Y).To(BeZero())
		}
	})

	DescribeTable("column count is floor(width / cellSize)",
		func(width, cellSize, expected int) {
			params.CellSize = cellSize
			g, err := rain.NewGrid(width, 100, params, fixedSource{})
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Len()).To(Equal(expected))
		},
		Entry("exact fit", 800, 16, 50),
		Entry("partial trailing column", 810, 16, 50),
		Entry("narrower than a cell", 15, 16, 0),
		Entry("zero width", 0, 16, 0),
		Entry("negative width", -32, 16, 0),
		Entry("one pixel cells", 37, 1, 37),
	)

	It("rejects non-positive cell sizes", func() {
		params.CellSize = 0
		_, err := rain.NewGrid(800, 600, params, fixedSource{})
		Expect(err).To(MatchError(rain.ErrInvalidCellSize))
	})

	It("rejects an empty alphabet", func() {
		params.Alphabet = nil
		_, err := rain.NewGrid(800, 600, params, fixedSource{})
		Expect(err).To(MatchError(rain.ErrEmptyAlphabet))
	})

	It("resets every cell on resize, even when the column count is unchanged", func() {
		g, err := rain.NewGrid(160, 480, params, fixedSource{})
		Expect(err).NotTo(HaveOccurred())

		surf := newRecordingSurface(160, 480)
		for i := 0; i < 5; i++ {
			g.Render(surf)
		}
		for _, c := range g.Cells() {
			Expect(c.Y).To(BeNumerically(">", 0))
		}

		g.Resize(165, 300)
		Expect(g.Len()).To(Equal(10))
		Expect(g.Height()).To(Equal(300))
		for i, c := range g.Cells() {
			Expect(c.Column).To(Equal(i))
			Expect(c.Y).To(BeZero())
		}
	})

	It("rebuilds with a new cell size", func() {
		g, _ := rain.NewGrid(800, 600, params, fixedSource{})
		g.Build(800, 600, 20)
		Expect(g.CellSize()).To(Equal(20))
		Expect(g.Len()).To(Equal(40))
	})

	It("renders cells in column order", func() {
		g, _ := rain.NewGrid(64, 64, params, fixedSource{})
		surf := newRecordingSurface(64, 64)
		g.Render(surf)

		Expect(surf.ops).To(HaveLen(4))
		for i, o := range surf.ops {
			Expect(o.kind).To(Equal("text"))
			Expect(o.x).To(Equal(float64(i * 16)))
		}
	})
})

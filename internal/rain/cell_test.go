package rain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/rain"
)

var _ = Describe("Cell", func() {
	var (
		params rain.Params
		surf   *recordingSurface
	)

	BeforeEach(func() {
		params = rain.DefaultParams()
		params.Alphabet = rain.NewAlphabet("XYZ")
		surf = newRecordingSurface(320, 160)
	})

	It("draws a picked glyph at its pixel position and moves down", func() {
		c := rain.Cell{Column: 3, Y: 2}
		reset := c.Render(surf, params, 160, fixedSource{n: 1})

		Expect(reset).To(BeFalse())
		Expect(c.Glyph).To(Equal('Y'))
		Expect(c.Y).To(BeNumerically("~", 2.9, 1e-9))
		Expect(surf.ops).To(ConsistOf(op{kind: "text", glyph: 'Y', x: 48, y: 32}))
	})

	It("never resets while still on screen", func() {
		c := rain.Cell{Column: 0, Y: 5}
		Expect(c.Render(surf, params, 160, fixedSource{f: 0.999})).To(BeFalse())
		Expect(c.Y).To(BeNumerically("~", 5.9, 1e-9))
	})

	It("resets past the bottom edge when the draw exceeds the threshold", func() {
		c := rain.Cell{Column: 0, Y: 11}
		Expect(c.Render(surf, params, 160, fixedSource{f: 0.98})).To(BeTrue())
		Expect(c.Y).To(BeZero())
	})

	It("keeps falling past the bottom edge otherwise", func() {
		c := rain.Cell{Column: 0, Y: 11}
		Expect(c.Render(surf, params, 160, fixedSource{f: 0.5})).To(BeFalse())
		Expect(c.Y).To(BeNumerically("~", 11.9, 1e-9))
	})

	It("treats exactly the bottom edge as on screen", func() {
		c := rain.Cell{Column: 0, Y: 10}
		Expect(c.Render(surf, params, 160, fixedSource{f: 0.99})).To(BeFalse())
	})
})

var _ = Describe("Alphabet", func() {
	It("resolves named sets", func() {
		Expect(rain.AlphabetByName("kana")).To(Equal(rain.Katakana))
		Expect(rain.AlphabetByName("halfwidth")).To(Equal(rain.Halfwidth))
		Expect(rain.AlphabetByName("LATIN")).To(Equal(rain.Latin))
		Expect(rain.AlphabetByName("01").String()).To(Equal("01"))
	})

	It("contains digits and uppercase latin in every built-in set", func() {
		for _, a := range []rain.Alphabet{rain.Katakana, rain.Halfwidth, rain.Latin} {
			Expect(a.String()).To(ContainSubstring("0123456789"))
			Expect(a.String()).To(ContainSubstring("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
		}
	})
})

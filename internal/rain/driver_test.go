package rain_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/rain"
)

var _ = Describe("Driver", func() {
	var (
		grid  *rain.Grid
		surf  *recordingSurface
		sched *rain.ManualScheduler
		drv   *rain.Driver
	)

	BeforeEach(func() {
		var err error
		grid, err = rain.NewGrid(800, 600, rain.DefaultParams(), fixedSource{})
		Expect(err).NotTo(HaveOccurred())
		surf = newRecordingSurface(800, 600)
		sched = rain.NewManualScheduler()
		drv, err = rain.NewDriver(grid, surf, sched, rain.DefaultStyle())
		Expect(err).NotTo(HaveOccurred())
	})

	It("targets 26 frames per second", func() {
		Expect(drv.Interval()).To(BeNumerically("~", 38.46, 0.01))
	})

	It("rejects a non-positive frame rate", func() {
		style := rain.DefaultStyle()
		style.FPS = 0
		_, err := rain.NewDriver(grid, surf, sched, style)
		Expect(err).To(MatchError(rain.ErrInvalidFrameRate))
	})

	It("leaves the surface untouched while accumulating", func() {
		for t := 1.0; t <= 38; t++ {
			Expect(drv.Tick(t)).To(BeFalse())
		}
		Expect(surf.ops).To(BeEmpty())
		Expect(drv.Frames()).To(BeZero())
		Expect(drv.Accumulated()).To(BeNumerically("==", 38))
	})

	It("paints the overlay, font, fill and every cell once the interval is exceeded", func() {
		Expect(drv.Tick(39)).To(BeFalse())
		Expect(drv.Tick(40)).To(BeTrue())

		Expect(surf.ops[0]).To(Equal(op{kind: "rect", w: 800, h: 600, color: rain.DefaultStyle().Fade}))
		Expect(surf.ops[1]).To(Equal(op{kind: "font", font: 16}))
		Expect(surf.ops[2]).To(Equal(op{kind: "fill", color: rain.DefaultStyle().Glyph}))
		Expect(surf.count("text")).To(Equal(50))
		Expect(drv.Accumulated()).To(BeZero())
	})

	DescribeTable("never paints more than once per interval",
		func(callbackMs float64) {
			var frames []rain.Frame
			drv.AddObserver(rain.FrameObserverFunc(func(f rain.Frame) {
				frames = append(frames, f)
			}))
			drv.Start()
			sched.Step(int(5000/callbackMs), callbackMs)

			Expect(frames).NotTo(BeEmpty())
			Expect(len(frames)).To(BeNumerically("<=", int(5000/drv.Interval())))
			for _, f := range frames[1:] {
				Expect(f.Interval).To(BeNumerically(">", drv.Interval()))
			}
		},
		Entry("1000 Hz", 1.0),
		Entry("240 Hz", 1000.0/240),
		Entry("60 Hz", 1000.0/60),
		Entry("20 Hz", 50.0),
	)

	It("paints on every other callback when callbacks are slower than the target", func() {
		drv.Start()
		sched.Step(10, 100)
		Expect(drv.Ticks()).To(Equal(10))
		Expect(drv.Frames()).To(Equal(5))
	})

	It("reports frames to observers", func() {
		var got []rain.Frame
		drv.AddObserver(rain.FrameObserverFunc(func(f rain.Frame) { got = append(got, f) }))
		drv.Tick(50)
		drv.Tick(60)
		drv.Tick(110)
		drv.Tick(120)

		Expect(got).To(HaveLen(2))
		Expect(got[0]).To(Equal(rain.Frame{Index: 0, Timestamp: 60, Columns: 50}))
		Expect(got[1].Index).To(Equal(1))
		Expect(got[1].Interval).To(BeNumerically("==", 60))
	})

	Describe("start and stop", func() {
		It("schedules exactly one pending callback while running", func() {
			Expect(sched.Pending()).To(BeZero())
			drv.Start()
			drv.Start()
			Expect(sched.Pending()).To(Equal(1))
			Expect(drv.Running()).To(BeTrue())

			sched.Advance(16)
			Expect(drv.Ticks()).To(Equal(1))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("cancels the next callback on stop", func() {
			drv.Start()
			sched.Step(3, 16)
			drv.Stop()
			drv.Stop()

			Expect(sched.Pending()).To(BeZero())
			Expect(sched.Advance(16)).To(BeZero())
			Expect(drv.Ticks()).To(Equal(3))
			Expect(drv.Running()).To(BeFalse())
		})

		It("drops a callback that fires after stop", func() {
			capture := &captureScheduler{}
			d, err := rain.NewDriver(grid, surf, capture, rain.DefaultStyle())
			Expect(err).NotTo(HaveOccurred())

			d.Start()
			Expect(capture.fns).To(HaveLen(1))
			d.Stop()
			capture.fns[0](100)

			Expect(d.Ticks()).To(BeZero())
			Expect(capture.fns).To(HaveLen(1))
		})

		It("stays stopped when an observer stops it mid-frame", func() {
			drv.AddObserver(rain.FrameObserverFunc(func(rain.Frame) { drv.Stop() }))
			drv.Start()
			for i := 0; i < 10 && drv.Running(); i++ {
				sched.Advance(16)
			}

			Expect(drv.Running()).To(BeFalse())
			Expect(drv.Frames()).To(Equal(1))
			Expect(sched.Pending()).To(BeZero())
		})

		It("resumes after a restart", func() {
			drv.Start()
			sched.Step(2, 16)
			drv.Stop()
			drv.Start()
			sched.Step(2, 16)
			Expect(drv.Ticks()).To(Equal(4))
		})
	})

	It("resizes the surface and rebuilds the grid without touching timing", func() {
		drv.Tick(10)
		drv.Tick(30)
		acc := drv.Accumulated()

		drv.Resize(320, 240)
		Expect(surf.Width()).To(Equal(320))
		Expect(surf.Height()).To(Equal(240))
		Expect(grid.Len()).To(Equal(20))
		Expect(drv.Accumulated()).To(Equal(acc))
	})

	It("runs on the wall clock with a timer scheduler", func() {
		timer := rain.NewTimerScheduler(1000)
		defer timer.Close()
		d, err := rain.NewDriver(grid, newRecordingSurface(800, 600), timer, rain.DefaultStyle())
		Expect(err).NotTo(HaveOccurred())

		d.Start()
		Eventually(d.Ticks, time.Second).Should(BeNumerically(">", 5))
		d.Stop()

		stopped := d.Ticks()
		Consistently(d.Ticks, 50*time.Millisecond).Should(Equal(stopped))
	})
})

// Package rain implements the falling-glyph animation engine.
//
// The engine has three layers:
//
//   - [Cell]: one column's vertical position and current glyph
//   - [Grid]: every cell spanning the surface width, rebuilt on resize
//   - [Driver]: frame throttling and repainting with a translucent overlay
//
// Drawing goes through the [Surface] interface so the engine can paint onto a
// terminal buffer, a raster image, an SVG document or a test double. Frame
// callbacks come from an injected [FrameScheduler].
//
// # Example
//
//	grid, _ := rain.NewGrid(800, 600, rain.DefaultParams(), rand.New(rand.NewSource(1)))
//	sched := rain.NewManualScheduler()
//	d, _ := rain.NewDriver(grid, surf, sched, rain.DefaultStyle())
//	d.Start()
//	sched.Step(100, 16.7)
//
// # Thread Safety
//
// Driver methods are safe to call from multiple goroutines. Grid and Cell are
// not; they are owned by the driver once it is created.
package rain

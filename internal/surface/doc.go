// Package surface provides drawing surfaces for the rain engine.
//
//   - [Term]: character-cell buffer rendered with lipgloss, one grid column per terminal column
//   - [Raster]: RGBA image with gomono glyphs, used for PNG and GIF export
//   - [SVG]: records drawing calls and encodes them with svgo
package surface

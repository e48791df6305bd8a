// Package screen implements the double-buffered cell compositor and its
// diff-based flush encoder.
//
// Features:
//   - Two frame grids (front = last flushed, back = being composed)
//   - Cell-level diffing with per-row run coalescing
//   - True color (24-bit) and 256-color palette output
//   - Clipped Surface views for widget drawing
//   - Human-diffable front-grid dumps for testing
//
// The encoder emits direct ANSI sequences; terminfo is not consulted.
// Target environments: xterm-compatible terminals on Unix-like systems.
package screen

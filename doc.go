// Package floormesh converts rhythm-game level tracks between the legacy
// path-character encoding and the mesh angle-list encoding.
//
// 🚀 What is a track?
//
//	A level is a chain of oriented tiles. Older levels store it as a string,
//	one character per tile ("pathData"); newer levels store one float
//	angle in degrees per tile ("angleData"). Both describe the same turns.
//
// ✨ What's inside:
//   - pathcodec: lookup tables plus Expand (path → angles) and Collapse
//     (angles → path), with exact failure reporting
//   - tileangle: per-tile turn labels, as shown by the editor overlay
//   - align:     DTW alignment of two tracks with circular angle cost
//   - level:     level file I/O, format toggle, localized diagnostics
//   - preview:   PNG / WebP rendering of a track
//   - config:    YAML configuration for the CLI
//   - batch:     worker pool converting many files
//   - watch:     fsnotify watcher for level directories
//
// Quick example:
//
//	"RUL!5"  ⇄  [0, 90, 180, 999, 72]
//
// Logging is silent unless SetLogger is called.
//
//	go install github.com/katalvlaran/floormesh/cmd/floorconv@latest
package floormesh

package align

import "errors"

var (
	// ErrEmptyInput indicates one or both tracks are empty.
	ErrEmptyInput = errors.New("align: input tracks must be non-empty")
	// ErrBadWindow indicates a window below -1.
	ErrBadWindow = errors.New("align: window must be >= -1")
	// ErrPathNeedsMatrix indicates path recovery without FullMatrix storage.
	ErrPathNeedsMatrix = errors.New("align: ReturnPath requires MemoryMode=FullMatrix")
)

// MemoryMode controls how Align stores its DP matrix.
//
//   - FullMatrix — keep all (n+1)×(m+1) cells; supports ReturnPath.
//   - TwoRows    — keep the previous and current row only; distance only.
type MemoryMode int

const (
	// FullMatrix stores every row.
	FullMatrix MemoryMode = iota
	// TwoRows keeps two rows.
	TwoRows
)

// Options configures Align.
//
// Fields:
//   - Window       — maximum |i-j| (Sakoe–Chiba band); 0 or -1 means unlimited.
//   - SlopePenalty — added to every insertion or deletion step.
//   - ReturnPath   — backtrack and return the warping path.
//   - MemoryMode   — FullMatrix or TwoRows.
type Options struct {
	Window       int
	SlopePenalty float64
	ReturnPath   bool
	MemoryMode   MemoryMode
}

// DefaultOptions returns an unlimited window, no penalty, no path and
// FullMatrix storage.
func DefaultOptions() Options {
	return Options{
		Window:     -1,
		MemoryMode: FullMatrix,
	}
}

// Coord is one aligned pair: tile I of the first track with tile J of the second.
type Coord struct {
	I, J int
}

// Result carries the DTW distance and, when requested, the warping path
// from (0,0) to (n-1,m-1).
type Result struct {
	Distance float64
	Path     []Coord
}

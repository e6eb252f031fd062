// Package pathcodec converts a level track between its two encodings:
// the legacy path string and the mesh angle list.
//
// 🚀 Encodings
//
//	Legacy: one character per tile. Characters come from two alphabets:
//	  • CCW codes: an absolute exit angle (R=0, p=15, ..., A=345) or the
//	    mid-spin marker '!'
//	  • CW codes: a turn relative to the previous tile ('5'=108, '6'=252,
//	    '7'=128.57143, '8'=231.42857)
//	Mesh: one float64 per tile, degrees. 999 marks a mid-spin tile.
//
// ✨ Operations:
//   - Expand   — path string → angles; fails on an unknown character
//   - Collapse — angles → path string; fails on the first tile whose angle
//     matches no character, reporting its 1-based floor index
//   - Validate — Expand's check without building the result
//   - Equivalent — compare two angle lists modulo 360 within tolerance
//
// Matching uses an inclusive 0.01 degree tolerance. When several entries
// match, the first one in declared order wins.
//
// ⚙️ Usage:
//
//	angles, err := pathcodec.Expand("RUL!5")
//	// angles = [0 90 180 999 72]
//
//	path, err := pathcodec.Collapse(angles)
//	var ae *pathcodec.AngleError
//	if errors.As(err, &ae) {
//	  fmt.Printf("floor #%d: %v°\n", ae.Floor, ae.Angle)
//	}
//
// Performance: O(n) time, both tables have at most 25 entries.
//
// All functions are pure; the tables are read-only after package init,
// so concurrent calls are safe.
package pathcodec

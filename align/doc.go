// Package align measures how far two tracks drift apart using Dynamic
// Time Warping over their angle lists.
//
// 🚀 Why DTW?
//
//	Two versions of a level rarely differ tile-for-tile: inserting one
//	tile shifts every later index. DTW warps the tile axis so that the
//	inserted tile costs once instead of poisoning the rest of the track.
//
// ✨ Differences from textbook DTW:
//   - cost is the circular distance between headings (350° vs 10° is 20°)
//   - mid-spin tiles match each other for free and cost 180 against
//     anything else
//   - Divergences lists the aligned pairs whose cost exceeds a threshold
//
// ⚙️ Usage:
//
//	opts := align.DefaultOptions()
//	opts.ReturnPath = true
//	res, err := align.Align(before, after, &opts)
//	for _, c := range align.Divergences(before, after, res.Path, 1) {
//	  fmt.Println(c.I, c.J)
//	}
//
// Performance:
//
//   - Time:   O(N·M), or O(N·W) with a window
//   - Memory: O(N·M) (FullMatrix) or O(M) (TwoRows)
package align

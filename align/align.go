package align

import (
	"math"

	"github.com/katalvlaran/floormesh/pathcodec"
)

// Align computes the DTW distance between tracks a and b.
//
// Algorithm Outline:
//  1. n = len(a), m = len(b); D[0][0] = 0, D[i][0] = D[0][j] = +∞.
//  2. For i = 1..n, j = 1..m with |i-j| ≤ Window (when Window > 0):
//     D[i][j] = Cost(a[i-1], b[j-1]) + min(D[i-1][j-1],
//     D[i-1][j]+SlopePenalty, D[i][j-1]+SlopePenalty)
//  3. Distance = D[n][m].
//  4. With ReturnPath, backtrack from (n,m) choosing the cheapest
//     predecessor, diagonal first on ties.
//
// Window 0 and -1 both mean unconstrained, so a zero Options value
// aligns tracks of any length. A positive window narrower than |n-m|
// yields +Inf and no path.
//
// Errors:
//   - ErrEmptyInput      — either track is empty.
//   - ErrBadWindow       — Window < -1.
//   - ErrPathNeedsMatrix — ReturnPath with TwoRows.
func Align(a, b []float64, opts *Options) (Result, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return Result{}, ErrEmptyInput
	}

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Window < -1 {
		return Result{}, ErrBadWindow
	}
	if o.ReturnPath && o.MemoryMode != FullMatrix {
		return Result{}, ErrPathNeedsMatrix
	}

	inf := math.Inf(1)
	rows := 2
	if o.MemoryMode == FullMatrix {
		rows = n + 1
	}
	dp := make([][]float64, rows)
	for r := range dp {
		dp[r] = make([]float64, m+1)
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = inf
	}

	row := func(i int) []float64 {
		if o.MemoryMode == FullMatrix {
			return dp[i]
		}
		return dp[i%2]
	}

	for i := 1; i <= n; i++ {
		curr, prev := row(i), row(i-1)
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if o.Window > 0 && absInt(i-j) > o.Window {
				curr[j] = inf
				continue
			}
			best := min3(prev[j-1], prev[j]+o.SlopePenalty, curr[j-1]+o.SlopePenalty)
			curr[j] = Cost(a[i-1], b[j-1]) + best
		}
	}

	res := Result{Distance: row(n)[m]}
	if o.ReturnPath && !math.IsInf(res.Distance, 1) {
		res.Path = backtrack(dp, n, m, o.SlopePenalty)
	}

	return res, nil
}

// Cost is the per-pair cost: circular heading distance in [0,180], zero
// between two mid-spin tiles and 180 between a mid-spin and a heading.
func Cost(x, y float64) float64 {
	sx, sy := pathcodec.IsMidSpin(x), pathcodec.IsMidSpin(y)
	switch {
	case sx && sy:
		return 0
	case sx || sy:
		return 180
	}
	d := math.Mod(math.Abs(x-y), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Divergences returns the pairs of path whose Cost exceeds threshold.
// Out-of-range coordinates are skipped.
func Divergences(a, b []float64, path []Coord, threshold float64) []Coord {
	var out []Coord
	for _, c := range path {
		if c.I < 0 || c.I >= len(a) || c.J < 0 || c.J >= len(b) {
			continue
		}
		if Cost(a[c.I], b[c.J]) > threshold {
			out = append(out, c)
		}
	}
	return out
}

// backtrack walks the full matrix from (n,m) to (1,1).
func backtrack(dp [][]float64, n, m int, penalty float64) []Coord {
	path := make([]Coord, 0, n+m)
	i, j := n, m
	for {
		path = append(path, Coord{I: i - 1, J: j - 1})
		if i == 1 && j == 1 {
			break
		}
		switch {
		case i == 1:
			j--
		case j == 1:
			i--
		default:
			diag, up, left := dp[i-1][j-1], dp[i-1][j]+penalty, dp[i][j-1]+penalty
			switch {
			case diag <= up && diag <= left:
				i, j = i-1, j-1
			case up <= left:
				i--
			default:
				j--
			}
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

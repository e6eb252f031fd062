// Package tileangle computes the turn each tile of a track spans, the
// number the level editor draws on a selected floor.
//
// A tile is entered from the direction of its predecessor (prev+180) and
// left along its own angle. The label is the clockwise sweep between the
// two, in (0, 360]. A straight tile spans 180. Mid-spin tiles are labelled
// "!" and flip the running heading by 180, exactly as pathcodec does.
//
// With Reflect set and more than two planets, the interior angle of the
// planet polygon, 180·(n−2)/n, is subtracted so that a 3-planet track
// reads the same as its 2-planet equivalent.
package tileangle

import (
	"errors"
	"math"
	"strconv"

	"github.com/katalvlaran/floormesh/pathcodec"
)

// ErrPlanets indicates a planet count below two.
var ErrPlanets = errors.New("tileangle: planet count must be at least 2")

// Options controls label computation.
//   - Planets — number of planets orbiting; 2 is the ordinary case
//   - Reflect — subtract the polygon interior angle when Planets > 2
type Options struct {
	Planets int
	Reflect bool
}

// DefaultOptions returns two planets without reflection.
func DefaultOptions() Options {
	return Options{Planets: 2}
}

// Label is the annotation of one tile.
type Label struct {
	Index   int     // 0-based tile index
	MidSpin bool    // tile is a mid-spin marker
	Degrees float64 // sweep in (0,360]; zero for mid-spin tiles
}

// String renders "!" for mid-spin tiles, otherwise the sweep rounded to
// four decimals.
func (l Label) String() string {
	if l.MidSpin {
		return string(pathcodec.MidSpinChar)
	}
	return strconv.FormatFloat(math.Round(l.Degrees*1e4)/1e4, 'f', -1, 64)
}

// Relative returns the sweep of a single tile from its entry and exit
// headings in degrees, using the editor's floor convention: exit − entry,
// negated for counter-clockwise travel.
func Relative(entry, exit float64, ccw bool, opts Options) float64 {
	angle := exit - entry
	if ccw {
		angle = -angle
	}
	return finish(math.Mod(angle, 360), opts)
}

// Labels annotates every tile of a mesh track.
//
// Steps:
//  1. prev = 0.
//  2. For each angle a:
//     • mid-spin: Label{MidSpin: true}; prev = (prev+180) mod 360
//     • otherwise: sweep = (prev + 180 − a) mod 360, reflected and lifted
//     into (0,360]; prev = a
//
// Complexity: O(n).
func Labels(angles []float64, opts Options) ([]Label, error) {
	if opts.Planets < 2 {
		return nil, ErrPlanets
	}

	out := make([]Label, len(angles))
	prev := 0.0
	for i, a := range angles {
		out[i].Index = i
		if pathcodec.IsMidSpin(a) {
			out[i].MidSpin = true
			prev = math.Mod(prev+180, 360)
			continue
		}
		out[i].Degrees = finish(math.Mod(prev+180-a, 360), opts)
		prev = a
	}

	return out, nil
}

// finish applies planet reflection and lifts the sweep into (0,360].
func finish(angle float64, opts Options) float64 {
	if opts.Reflect && opts.Planets > 2 {
		n := float64(opts.Planets)
		angle -= 180 * (n - 2) / n
	}
	for angle <= 0 {
		angle += 360
	}
	return angle
}

package pathcodec

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Expand converts a legacy path string into mesh angles.
//
// Algorithm:
//  1. prev = 0.
//  2. For each character c at rune position i:
//     • absolute code a: emit a; prev = (prev+180) mod 360 for '!',
//     otherwise prev = a
//     • relative code t: emit prev+180-t; prev = that value
//     • anything else: stop with *FormatError{c, i}
//
// The result has one entry per rune. Relative results are not reduced
// into [0,360).
//
// Complexity: O(n).
func Expand(path string) ([]float64, error) {
	out := make([]float64, 0, utf8.RuneCountInString(path))
	prev := 0.0
	pos := 0
	for _, c := range path {
		angle, next, ok := expandStep(prev, c)
		if !ok {
			return nil, &FormatError{Char: c, Pos: pos}
		}
		out = append(out, angle)
		prev = next
		pos++
	}

	return out, nil
}

// Validate reports the error Expand would return for path, without
// building the angle list.
func Validate(path string) error {
	pos := 0
	for _, c := range path {
		if _, ok := byChar[c]; !ok {
			return &FormatError{Char: c, Pos: pos}
		}
		pos++
	}

	return nil
}

// Collapse converts mesh angles into a legacy path string.
//
// Algorithm:
//  1. prev = 0, floor counts from 1.
//  2. For each raw angle:
//     • angle = Normalize(raw)
//     • first absolute code within Tolerance of angle: emit it;
//     prev = (prev+180) mod 360 for '!', otherwise prev = angle
//     • else diff = (540-(angle-prev)) mod 360; first relative code
//     within Tolerance of diff: emit it; prev = angle
//     • else stop with *AngleError{floor, angle}
//
// On failure the returned string is empty; no partial result is kept.
//
// Complexity: O(n) with at most 29 table probes per tile.
func Collapse(angles []float64) (string, error) {
	var sb strings.Builder
	sb.Grow(len(angles))
	prev := 0.0
	for i, raw := range angles {
		angle := Normalize(raw)
		c, next, ok := collapseStep(prev, angle)
		if !ok {
			return "", &AngleError{Floor: i + 1, Angle: angle}
		}
		sb.WriteRune(c)
		prev = next
	}

	return sb.String(), nil
}

// Normalize maps raw into the range Collapse matches against: the
// remainder mod 360 lifted to non-negative, or MidSpin when raw is within
// Tolerance of it.
func Normalize(raw float64) float64 {
	if IsMidSpin(raw) {
		return MidSpin
	}
	angle := math.Mod(raw, 360)
	for angle < 0 {
		angle = math.Mod(angle+360, 360)
	}
	if angle == 0 {
		// drop the sign of -0
		return 0
	}

	return angle
}

// IsMidSpin reports whether angle is the mid-spin sentinel within Tolerance.
func IsMidSpin(angle float64) bool {
	return within(angle, MidSpin)
}

// Equivalent reports whether a and b describe the same track: equal
// length, mid-spin tiles in the same places, and every other pair equal
// modulo 360 within Tolerance.
func Equivalent(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		sa, sb := IsMidSpin(a[i]), IsMidSpin(b[i])
		if sa != sb {
			return false
		}
		if sa {
			continue
		}
		if circularDiff(a[i], b[i]) > Tolerance+slack {
			return false
		}
	}

	return true
}

// expandStep decodes one character given the previous absolute angle.
func expandStep(prev float64, c rune) (angle, next float64, ok bool) {
	code, ok := byChar[c]
	if !ok {
		return 0, prev, false
	}
	if code.Kind == Relative {
		angle = prev + 180 - code.Angle
		return angle, angle, true
	}

	return code.Angle, advance(prev, code.Char, code.Angle), true
}

// collapseStep encodes one normalized angle given the previous absolute angle.
func collapseStep(prev, angle float64) (c rune, next float64, ok bool) {
	for _, code := range ccwTable {
		if within(code.Angle, angle) {
			return code.Char, advance(prev, code.Char, angle), true
		}
	}

	diff := math.Mod(540-(angle-prev), 360)
	for _, code := range cwTable {
		if within(code.Angle, diff) {
			return code.Char, angle, true
		}
	}

	return 0, prev, false
}

// advance returns the previous-angle state after an absolute code.
func advance(prev float64, c rune, angle float64) float64 {
	if c == MidSpinChar {
		return math.Mod(prev+180, 360)
	}
	return angle
}

// within applies the shared tolerance rule.
func within(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance+slack
}

// circularDiff returns the smallest distance between two headings.
func circularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

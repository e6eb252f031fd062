package pathcodec

const (
	// MidSpin is the mesh value of a mid-spin tile.
	MidSpin = 999.0

	// MidSpinChar is the path character of a mid-spin tile.
	MidSpinChar = '!'

	// Tolerance is the inclusive match window, in degrees, for every lookup.
	Tolerance = 0.01

	// slack absorbs binary rounding so that an offset of exactly Tolerance
	// (e.g. 90.01 vs 90) still matches.
	slack = 1e-9
)

// Kind tells how a path character's angle is interpreted.
type Kind int

const (
	// Absolute codes carry the tile's exit angle directly (CCW alphabet).
	Absolute Kind = iota
	// Relative codes carry a turn from the previous tile (CW alphabet).
	Relative
)

// String returns "absolute" or "relative".
func (k Kind) String() string {
	if k == Relative {
		return "relative"
	}
	return "absolute"
}

// Code is one entry of the path alphabet.
//   - Char  — the path character
//   - Angle — absolute degrees for Absolute codes, turn amount for Relative
//   - Kind  — which alphabet the character belongs to
type Code struct {
	Char  rune
	Angle float64
	Kind  Kind
}

// ccwTable lists the absolute codes in ascending angle order, then the
// mid-spin marker. Order is the tie-break order.
var ccwTable = [...]Code{
	{'R', 0, Absolute},
	{'p', 15, Absolute},
	{'J', 30, Absolute},
	{'E', 45, Absolute},
	{'T', 60, Absolute},
	{'o', 75, Absolute},
	{'U', 90, Absolute},
	{'q', 105, Absolute},
	{'G', 120, Absolute},
	{'Q', 135, Absolute},
	{'H', 150, Absolute},
	{'W', 165, Absolute},
	{'L', 180, Absolute},
	{'x', 195, Absolute},
	{'N', 210, Absolute},
	{'Z', 225, Absolute},
	{'F', 240, Absolute},
	{'V', 255, Absolute},
	{'D', 270, Absolute},
	{'Y', 285, Absolute},
	{'B', 300, Absolute},
	{'C', 315, Absolute},
	{'M', 330, Absolute},
	{'A', 345, Absolute},
	{MidSpinChar, MidSpin, Absolute},
}

// cwTable lists the relative codes in declared order.
var cwTable = [...]Code{
	{'5', 108, Relative},
	{'6', 252, Relative},
	{'7', 128.57143, Relative},
	{'8', 231.42857, Relative},
}

// byChar indexes both tables by character. Built once, never written after.
var byChar = func() map[rune]Code {
	m := make(map[rune]Code, len(ccwTable)+len(cwTable))
	for _, c := range ccwTable {
		m[c.Char] = c
	}
	for _, c := range cwTable {
		m[c.Char] = c
	}
	return m
}()

// CCWCodes returns a copy of the absolute alphabet in declared order.
func CCWCodes() []Code {
	out := make([]Code, len(ccwTable))
	copy(out, ccwTable[:])
	return out
}

// CWCodes returns a copy of the relative alphabet in declared order.
func CWCodes() []Code {
	out := make([]Code, len(cwTable))
	copy(out, cwTable[:])
	return out
}

// Lookup returns the alphabet entry for c.
func Lookup(c rune) (Code, bool) {
	code, ok := byChar[c]
	return code, ok
}

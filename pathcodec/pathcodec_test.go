package pathcodec_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/katalvlaran/floormesh/pathcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//----------------------------------------------------------------------------//
// Tables
//----------------------------------------------------------------------------//

// TestTables_Sizes checks both alphabets and their declared order.
func TestTables_Sizes(t *testing.T) {
	ccw := pathcodec.CCWCodes()
	cw := pathcodec.CWCodes()
	require.Len(t, ccw, 25, "24 angles plus the mid-spin marker")
	require.Len(t, cw, 4)

	for i := 0; i < 24; i++ {
		assert.Equal(t, float64(i*15), ccw[i].Angle, "ccw[%d] must be ascending by 15°", i)
		assert.Equal(t, pathcodec.Absolute, ccw[i].Kind)
	}
	assert.Equal(t, pathcodec.MidSpinChar, ccw[24].Char)
	assert.Equal(t, pathcodec.MidSpin, ccw[24].Angle)

	assert.Equal(t, []rune{'5', '6', '7', '8'}, []rune{cw[0].Char, cw[1].Char, cw[2].Char, cw[3].Char})
	assert.Equal(t, 128.57143, cw[2].Angle)
	assert.Equal(t, 231.42857, cw[3].Angle)
}

// TestTables_CopiesAreIndependent ensures callers cannot mutate the tables.
func TestTables_CopiesAreIndependent(t *testing.T) {
	ccw := pathcodec.CCWCodes()
	ccw[0].Angle = 42
	assert.Equal(t, 0.0, pathcodec.CCWCodes()[0].Angle)
}

// TestTables_Disjoint verifies no character appears in both alphabets.
func TestTables_Disjoint(t *testing.T) {
	seen := map[rune]bool{}
	for _, c := range append(pathcodec.CCWCodes(), pathcodec.CWCodes()...) {
		assert.False(t, seen[c.Char], "duplicate character %q", c.Char)
		seen[c.Char] = true
	}
}

// TestLookup covers both alphabets and a miss.
func TestLookup(t *testing.T) {
	code, ok := pathcodec.Lookup('U')
	require.True(t, ok)
	assert.Equal(t, 90.0, code.Angle)
	assert.Equal(t, "absolute", code.Kind.String())

	code, ok = pathcodec.Lookup('6')
	require.True(t, ok)
	assert.Equal(t, 252.0, code.Angle)
	assert.Equal(t, "relative", code.Kind.String())

	_, ok = pathcodec.Lookup('#')
	assert.False(t, ok)
}

//----------------------------------------------------------------------------//
// Expand
//----------------------------------------------------------------------------//

// TestExpand_Cases runs Expand over representative paths.
func TestExpand_Cases(t *testing.T) {
	cases := []struct {
		name string
		path string
		want []float64
	}{
		{"Empty", "", []float64{}},
		{"Straight", "RRR", []float64{0, 0, 0}},
		{"Square", "RULD", []float64{0, 90, 180, 270}},
		{"MidSpinTwice", "!!", []float64{999, 999}},
		{"MidSpinThenCW", "!5", []float64{999, 252}},
		{"RelativeChain", "R5", []float64{0, 72}},
		{"RelativeNegative", "R6", []float64{0, -72}},
		{"RelativeAfterRelative", "R55", []float64{0, 72, 144}},
		{"MidSpinBackToZero", "!!5", []float64{999, 999, 72}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pathcodec.Expand(tc.path)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.want, got, 1e-9)
		})
	}
}

// TestExpand_SeptagonCodes checks the non-integer turn constants.
func TestExpand_SeptagonCodes(t *testing.T) {
	got, err := pathcodec.Expand("R78")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 51.42857, got[1], 1e-9)
	assert.InDelta(t, 51.42857+180-231.42857, got[2], 1e-9)
}

// TestExpand_Unrecognized verifies the position and character of a bad input.
func TestExpand_Unrecognized(t *testing.T) {
	got, err := pathcodec.Expand("R#T")
	assert.Nil(t, got, "no partial result on failure")
	require.ErrorIs(t, err, pathcodec.ErrUnrecognizedCharacter)

	var fe *pathcodec.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, '#', fe.Char)
	assert.Equal(t, 1, fe.Pos)
	assert.Contains(t, fe.Error(), "position 1")
}

// TestExpand_RunePositions counts positions in runes, not bytes.
func TestExpand_RunePositions(t *testing.T) {
	_, err := pathcodec.Expand("Ré")
	var fe *pathcodec.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 'é', fe.Char)
	assert.Equal(t, 1, fe.Pos)

	_, err = pathcodec.Expand("éR?")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, fe.Pos)
}

// TestValidate mirrors Expand's failure.
func TestValidate(t *testing.T) {
	assert.NoError(t, pathcodec.Validate("RpJE!5678"))
	err := pathcodec.Validate("RUz")
	var fe *pathcodec.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 'z', fe.Char)
	assert.Equal(t, 2, fe.Pos)
}

//----------------------------------------------------------------------------//
// Collapse
//----------------------------------------------------------------------------//

// TestCollapse_EveryAbsoluteCode collapses each CCW angle alone.
func TestCollapse_EveryAbsoluteCode(t *testing.T) {
	for _, code := range pathcodec.CCWCodes() {
		got, err := pathcodec.Collapse([]float64{code.Angle})
		require.NoError(t, err, "angle %v", code.Angle)
		assert.Equal(t, string(code.Char), got)
	}
}

// TestCollapse_Normalization covers wrap-around and negative inputs.
func TestCollapse_Normalization(t *testing.T) {
	cases := []struct {
		name   string
		angles []float64
		want   string
	}{
		{"Empty", nil, ""},
		{"Over360", []float64{450}, "U"},
		{"Negative", []float64{-90}, "D"},
		{"NegativeFullTurn", []float64{-360}, "R"},
		{"FarNegative", []float64{-735}, "A"},
		{"MidSpinNearSentinel", []float64{999.005}, "!"},
		{"RelativeFive", []float64{0, 72}, "R5"},
		{"RelativeSix", []float64{0, -72}, "R6"},
		{"AfterMidSpin", []float64{999, 252}, "!5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pathcodec.Collapse(tc.angles)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestCollapse_ToleranceBoundary checks the inclusive 0.01° window.
func TestCollapse_ToleranceBoundary(t *testing.T) {
	for _, ok := range []float64{15.01, 14.99, 90.01, 0.01} {
		_, err := pathcodec.Collapse([]float64{ok})
		assert.NoError(t, err, "%v is within tolerance", ok)
	}

	for _, bad := range []float64{15.011, 14.989, 0.011} {
		_, err := pathcodec.Collapse([]float64{bad})
		assert.ErrorIs(t, err, pathcodec.ErrUnencodableAngle, "%v is outside tolerance", bad)
	}
}

// TestCollapse_FirstFailure reports the first bad tile with a 1-based index.
func TestCollapse_FirstFailure(t *testing.T) {
	got, err := pathcodec.Collapse([]float64{0, 999, 47, 13})
	assert.Empty(t, got)

	var ae *pathcodec.AngleError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 3, ae.Floor)
	assert.Equal(t, 47.0, ae.Angle)
	assert.Contains(t, ae.Error(), "floor #3")
}

// TestCollapse_ReportsNormalizedAngle ensures the failure carries the reduced angle.
func TestCollapse_ReportsNormalizedAngle(t *testing.T) {
	_, err := pathcodec.Collapse([]float64{-313})
	var ae *pathcodec.AngleError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 1, ae.Floor)
	assert.InDelta(t, 47.0, ae.Angle, 1e-9)
}

//----------------------------------------------------------------------------//
// Round trips
//----------------------------------------------------------------------------//

// TestRoundTrip_Absolute checks Collapse(Expand(p)) == p for CCW-only paths.
func TestRoundTrip_Absolute(t *testing.T) {
	for _, p := range []string{"RpJEToUqGQHWLxNZFVDYBCMA", "R!R!!L", "ULDRULDR", "!!!", "AAAAp"} {
		angles, err := pathcodec.Expand(p)
		require.NoError(t, err)
		got, err := pathcodec.Collapse(angles)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

// TestRoundTrip_Relative checks that CW paths survive as equivalent geometry.
func TestRoundTrip_Relative(t *testing.T) {
	for _, p := range []string{"R5", "R6", "R55555", "U7878", "!5!6", "L8", "R5!5"} {
		want, err := pathcodec.Expand(p)
		require.NoError(t, err)
		collapsed, err := pathcodec.Collapse(want)
		require.NoError(t, err, "path %q", p)
		got, err := pathcodec.Expand(collapsed)
		require.NoError(t, err)
		assert.True(t, pathcodec.Equivalent(want, got), "path %q → %q", p, collapsed)
	}
}

// TestRoundTrip_CanonicalizesFullTurn shows a CW chain landing on 360 becomes 'R'.
func TestRoundTrip_CanonicalizesFullTurn(t *testing.T) {
	angles, err := pathcodec.Expand("R55555")
	require.NoError(t, err)
	got, err := pathcodec.Collapse(angles)
	require.NoError(t, err)
	assert.Equal(t, "R5555R", got)
}

//----------------------------------------------------------------------------//
// Helpers
//----------------------------------------------------------------------------//

// TestNormalize covers sign and sentinel handling.
func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, pathcodec.Normalize(-360))
	assert.Equal(t, 270.0, pathcodec.Normalize(-90))
	assert.Equal(t, 279.0, pathcodec.Normalize(999+360), "only the sentinel itself is kept")
	assert.Equal(t, pathcodec.MidSpin, pathcodec.Normalize(998.995))
}

// TestEquivalent covers length, sentinel and wrap-around cases.
func TestEquivalent(t *testing.T) {
	assert.True(t, pathcodec.Equivalent([]float64{0, 360, -90}, []float64{360, 0, 270}))
	assert.True(t, pathcodec.Equivalent([]float64{999}, []float64{999.001}))
	assert.True(t, pathcodec.Equivalent([]float64{359.995}, []float64{0}))
	assert.False(t, pathcodec.Equivalent([]float64{0}, []float64{0, 0}))
	assert.False(t, pathcodec.Equivalent([]float64{999}, []float64{279}))
	assert.False(t, pathcodec.Equivalent([]float64{10}, []float64{10.02}))
}

//----------------------------------------------------------------------------//
// Concurrency
//----------------------------------------------------------------------------//

// TestCodec_ConcurrentUse shares the tables across goroutines; run with -race.
func TestCodec_ConcurrentUse(t *testing.T) {
	const path = "RpJETo!UqGQ5678HWLxNZ!FVDYBCMA"
	want, err := pathcodec.Expand(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				angles, err := pathcodec.Expand(path)
				if !assert.NoError(t, err) || !assert.Equal(t, want, angles) {
					return
				}
				back, err := pathcodec.Collapse(angles)
				if !assert.NoError(t, err) {
					return
				}
				again, err := pathcodec.Expand(back)
				if !assert.NoError(t, err) || !assert.True(t, pathcodec.Equivalent(angles, again)) {
					return
				}
				_, _ = pathcodec.Lookup('5')
				_ = pathcodec.CCWCodes()
			}
		}()
	}
	wg.Wait()
}

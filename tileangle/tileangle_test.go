package tileangle_test

import (
	"testing"

	"github.com/katalvlaran/floormesh/pathcodec"
	"github.com/katalvlaran/floormesh/tileangle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLabels_Track labels a short mixed track.
func TestLabels_Track(t *testing.T) {
	angles, err := pathcodec.Expand("RRUL!5")
	require.NoError(t, err)

	labels, err := tileangle.Labels(angles, tileangle.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, labels, 6)

	got := make([]string, len(labels))
	for i, l := range labels {
		got[i] = l.String()
		assert.Equal(t, i, l.Index)
	}
	assert.Equal(t, []string{"180", "180", "90", "90", "!", "108"}, got)
	assert.True(t, labels[4].MidSpin)
}

// TestLabels_RelativeCodesMatchTurn shows each CW code labels as its own turn amount.
func TestLabels_RelativeCodesMatchTurn(t *testing.T) {
	for _, code := range pathcodec.CWCodes() {
		angles, err := pathcodec.Expand("R" + string(code.Char))
		require.NoError(t, err)
		labels, err := tileangle.Labels(angles, tileangle.DefaultOptions())
		require.NoError(t, err)
		assert.InDelta(t, code.Angle, labels[1].Degrees, 1e-9, "code %q", code.Char)
	}
}

// TestLabels_UTurn lifts a zero sweep to 360.
func TestLabels_UTurn(t *testing.T) {
	labels, err := tileangle.Labels([]float64{0, 180}, tileangle.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 360.0, labels[1].Degrees)
}

// TestLabels_Reflect subtracts the triangle interior angle for three planets.
func TestLabels_Reflect(t *testing.T) {
	opts := tileangle.Options{Planets: 3, Reflect: true}
	labels, err := tileangle.Labels([]float64{0, 90, 270}, opts)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, labels[0].Degrees, 1e-9)
	assert.InDelta(t, 30.0, labels[1].Degrees, 1e-9)
	// 90+180-270 = 0 → -60 → 300
	assert.InDelta(t, 300.0, labels[2].Degrees, 1e-9)

	opts.Reflect = false
	labels, err = tileangle.Labels([]float64{0}, opts)
	require.NoError(t, err)
	assert.Equal(t, 180.0, labels[0].Degrees, "no reflection without the flag")
}

// TestLabels_BadPlanets rejects fewer than two planets.
func TestLabels_BadPlanets(t *testing.T) {
	_, err := tileangle.Labels([]float64{0}, tileangle.Options{Planets: 1})
	assert.ErrorIs(t, err, tileangle.ErrPlanets)
}

// TestRelative covers both travel directions.
func TestRelative(t *testing.T) {
	opts := tileangle.DefaultOptions()
	assert.Equal(t, 180.0, tileangle.Relative(180, 0, false, opts))
	assert.Equal(t, 90.0, tileangle.Relative(0, 90, false, opts))
	assert.Equal(t, 270.0, tileangle.Relative(0, 90, true, opts))
	assert.Equal(t, 360.0, tileangle.Relative(45, 45, false, opts))
}

// TestLabel_String rounds to four decimals.
func TestLabel_String(t *testing.T) {
	assert.Equal(t, "51.4286", tileangle.Label{Degrees: 51.42857}.String())
	assert.Equal(t, "!", tileangle.Label{MidSpin: true}.String())
}

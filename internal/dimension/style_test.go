package dimension

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLength(t *testing.T) {
	assert.Equal(t, "2.00m", Meter.FormatLength(2))
	assert.Equal(t, "0.13m", Meter.FormatLength(0.125001))
	assert.Equal(t, "2000mm", Millimeter.FormatLength(2))
	assert.Equal(t, "6.56'", Foot.FormatLength(2))
}

func TestFormatAngle(t *testing.T) {
	assert.Equal(t, "90.0°", FormatAngle(math.Pi/2))
	assert.Equal(t, "45.0°", FormatAngle(math.Pi/4))
}

func TestParseUnit(t *testing.T) {
	for name, want := range map[string]Unit{"m": Meter, "MM": Millimeter, "feet": Foot, "meter": Meter} {
		got, err := ParseUnit(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseUnit("cubit")
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	got, err := ParseType("Angle")
	require.NoError(t, err)
	assert.Equal(t, Angle, got)
	assert.Equal(t, "leader", Leader.String())

	_, err = ParseType("radius")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, c)

	c, err = ParseColor("10203040")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c)
	assert.Equal(t, "#10203040", FormatColor(c))

	_, err = ParseColor("#fff")
	assert.Error(t, err)
	_, err = ParseColor("#gggggg")
	assert.Error(t, err)
}

func TestStyleValidate(t *testing.T) {
	style := DefaultStyle()
	assert.NoError(t, style.Validate())

	style.Scale = 0
	assert.Error(t, style.Validate())

	style = DefaultStyle()
	style.Units = Unit(9)
	assert.Error(t, style.Validate())
}

func TestDesaturate(t *testing.T) {
	grey := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	assert.Equal(t, grey, desaturate(grey))

	red := desaturate(color.RGBA{R: 255, A: 200})
	assert.Equal(t, uint8(166), red.R)
	assert.Equal(t, uint8(38), red.G)
	assert.Equal(t, uint8(200), red.A)
}

package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContrastColorExtremes(t *testing.T) {
	assert.Equal(t, LightText, ContrastColor("#000000"))
	assert.Equal(t, DarkText, ContrastColor("#ffffff"))
	assert.Equal(t, LightText, ContrastColor("#808080"))
}

func TestContrastColorPalette(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#3498db", LightText},
		{"#e74c3c", LightText},
		{"#2ecc71", LightText},
		{"#f1c40f", DarkText},
		{"#FFFF00", DarkText},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastColor(tt.hex))
		})
	}
}

func TestContrastColorSwitchesOnceOnGrayRamp(t *testing.T) {
	switches := 0
	prev := ContrastColor("#000000")
	for v := 1; v <= 255; v++ {
		hex := fmt.Sprintf("#%02x%02x%02x", v, v, v)
		got := ContrastColor(hex)
		if got != prev {
			switches++
			assert.Equal(t, "#bcbcbc", hex, "switch should happen where luminance passes 0.5")
		}
		prev = got
	}
	assert.Equal(t, 1, switches)
}

func TestLuminance(t *testing.T) {
	l, err := Luminance("#000000")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, l, 1e-9)

	l, err = Luminance("#ffffff")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, l, 1e-9)

	l, err = Luminance("#808080")
	require.NoError(t, err)
	assert.InDelta(t, 0.2159, l, 1e-4)

	_, err = Luminance("blue")
	assert.Error(t, err)
}

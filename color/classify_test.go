package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	rgb, err := Normalize(Raw{Clear: 100, Red: 50, Green: 25, Blue: 75})
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 127.5, G: 63.75, B: 191.25}, rgb)
}

func TestNormalize_NoLight(t *testing.T) {
	_, err := Normalize(Raw{Clear: 0, Red: 10, Green: 10, Blue: 10})
	assert.ErrorIs(t, err, ErrNoLight)
}

func TestClassify(t *testing.T) {
	defaults := DefaultParameters()
	tests := []struct {
		name     string
		rgb      RGB
		clear    int
		params   Parameters
		expected Class
	}{
		{"red dominant", RGB{200, 50, 50}, 300, defaults, ClassRed},
		{"low spread dark", RGB{10, 12, 11}, 50, defaults, ClassDark},
		{"low spread bright", RGB{10, 12, 11}, 2000, defaults, ClassBright},
		{"at black limit is bright", RGB{10, 12, 11}, 1000, defaults, ClassBright},
		{"spread equal to hysteresis classifies", RGB{100, 75, 75}, 10, defaults, ClassRed},
		{"green", RGB{40, 180, 35}, 500, defaults, ClassGreen},
		{"blue", RGB{30, 60, 160}, 500, defaults, ClassBlue},
		{"yellow", RGB{150, 140, 20}, 500, defaults, ClassYellow},
		{"cyan", RGB{20, 140, 150}, 500, defaults, ClassCyan},
		{"magenta", RGB{150, 20, 140}, 500, defaults, ClassMagenta},
		{"zero hysteresis", RGB{50, 50, 50}, 10, Parameters{BlackLimit: 1000, Hysteresis: 0, Offset: 1.1}, ClassDark},
		{"low offset sets all bits", RGB{100, 90, 60}, 10, Parameters{BlackLimit: 1000, Hysteresis: 25, Offset: 0.5}, ClassBright},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.rgb, tt.clear, tt.params))
		})
	}
}

func TestClassifyRaw(t *testing.T) {
	p := DefaultParameters()
	assert.Equal(t, ClassDark, ClassifyRaw(Raw{}, p))
	assert.Equal(t, ClassRed, ClassifyRaw(Raw{Clear: 3000, Red: 2000, Green: 500, Blue: 500}, p))
	for clear := 0; clear < 4000; clear += 97 {
		for red := 0; red < 4000; red += 331 {
			c := ClassifyRaw(Raw{Clear: uint16(clear), Red: uint16(red), Green: 700, Blue: 1200}, p)
			assert.LessOrEqual(t, uint8(c), uint8(7))
		}
	}
}

func TestClass(t *testing.T) {
	assert.Equal(t, "yellow", ClassYellow.String())
	assert.Equal(t, "Class(9)", Class(9).String())
	assert.True(t, ClassYellow.Has(ClassRed))
	assert.True(t, ClassYellow.Has(ClassGreen))
	assert.False(t, ClassYellow.Has(ClassBlue))
	assert.Equal(t, Class(7), ClassBright)
}

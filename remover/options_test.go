package remover

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, "telea", opts.Algorithm)
	require.Equal(t, 3, opts.DilatePixels)
	require.Equal(t, float32(5.0), opts.InpaintRadius)
	require.False(t, opts.Lossless)
}

func TestInpaintMethodFor(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		want      gocv.InpaintMethods
	}{
		{"default telea", "telea", gocv.Telea},
		{"uppercase telea", "TELEA", gocv.Telea},
		{"navier stokes", "navier_stokes", gocv.NS},
		{"ns shorthand", "ns", gocv.NS},
		{"uppercase ns", "NS", gocv.NS},
		{"empty string", "", gocv.Telea},
		{"unknown falls back", "magic", gocv.Telea},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, InpaintMethodFor(tt.algorithm))
		})
	}
}

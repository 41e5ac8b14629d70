package remover

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestBuildMaskSelectedPixelCount(t *testing.T) {
	mask, err := BuildMask(64, 48, Region{X: 10, Y: 5, Width: 20, Height: 12})
	require.NoError(t, err)
	defer mask.Close()

	require.Equal(t, 64, mask.Cols())
	require.Equal(t, 48, mask.Rows())
	require.Equal(t, 20*12, gocv.CountNonZero(mask))
}

func TestBuildMaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		region  Region
		wantErr error
	}{
		{
			name:   "fills frame exactly",
			region: Region{X: 0, Y: 0, Width: 64, Height: 48},
		},
		{
			name:    "zero width",
			region:  Region{X: 10, Y: 10, Width: 0, Height: 10},
			wantErr: ErrInvalidRegion,
		},
		{
			name:    "negative height",
			region:  Region{X: 10, Y: 10, Width: 10, Height: -1},
			wantErr: ErrInvalidRegion,
		},
		{
			name:    "negative origin",
			region:  Region{X: -1, Y: 0, Width: 10, Height: 10},
			wantErr: ErrInvalidRegion,
		},
		{
			name:    "exceeds frame width",
			region:  Region{X: 50, Y: 0, Width: 20, Height: 10},
			wantErr: ErrRegionOutOfBounds,
		},
		{
			name:    "exceeds frame height",
			region:  Region{X: 0, Y: 40, Width: 10, Height: 20},
			wantErr: ErrRegionOutOfBounds,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mask, err := BuildMask(64, 48, tt.region)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			mask.Close()
		})
	}
}

func TestRegionOutOfBoundsMessageCarriesGeometry(t *testing.T) {
	err := Region{X: 50, Y: 0, Width: 20, Height: 10}.Validate(64, 48)
	require.ErrorIs(t, err, ErrRegionOutOfBounds)
	require.Contains(t, err.Error(), "64x48")
	require.Contains(t, err.Error(), "20x10")
	require.Contains(t, err.Error(), "(50, 0)")
}

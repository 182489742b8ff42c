package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/invader/core"
)

func TestSizeResolve(t *testing.T) {
	tests := []struct {
		size      Size
		container int
		remaining int
		want      int
	}{
		{Fill(), 80, 80, 80},
		{Fill(), 80, 30, 30},
		{Fill(), 80, -5, 0},
		{Proportion(0.5), 81, 81, 40},
		{Proportion(1.5), 10, 10, 15},
		{Pixels(7), 3, 3, 7},
		{NegativePixels(2), 10, 4, 8},
		{NegativePixels(10), 10, 10, 0},
	}
	for _, tt := range tests {
		got, err := tt.size.Resolve(tt.container, tt.remaining)
		require.NoError(t, err, tt.size.String())
		assert.Equal(t, tt.want, got, tt.size.String())
	}
}

func TestNegativeSizeIsAnError(t *testing.T) {
	_, err := NegativePixels(11).Resolve(10, 10)
	assert.ErrorIs(t, err, ErrNegativeSize)

	_, err = Pixels(-1).Resolve(10, 10)
	assert.ErrorIs(t, err, ErrNegativeSize)
}

func TestPositionResolve(t *testing.T) {
	assert.Equal(t, 0, Start().Resolve(4, 11))
	assert.Equal(t, 3, Center().Resolve(4, 11))
	assert.Equal(t, 7, End().Resolve(4, 11))
	assert.Equal(t, 2, Offset(2).Resolve(4, 11))

	// Oversized elements are not clamped
	assert.Equal(t, -5, Center().Resolve(20, 10))
	assert.Equal(t, -10, End().Resolve(20, 10))
}

func TestPositionKindNeverChangesSize(t *testing.T) {
	sizes := []Size{Fill(), Proportion(0.3), Pixels(5), NegativePixels(3)}
	positions := []Position{Start(), Center(), End(), Offset(4), Offset(-2)}
	container := core.Size{W: 50, H: 20}
	remaining := core.Size{W: 50, H: 12}

	for _, sz := range sizes {
		var first core.Size
		for i, pos := range positions {
			got, _, err := Constraint{Width: sz, Height: sz, X: pos, Y: pos}.Resolve(container, remaining)
			require.NoError(t, err)
			if i == 0 {
				first = got
				continue
			}
			assert.Equal(t, first, got, "size %s with position %s", sz, pos)
		}
	}
}

func TestParseConstraints(t *testing.T) {
	var c Constraint
	err := yaml.Unmarshal([]byte("width: 25%\nheight: -3\nx: center\ny: 7\n"), &c)
	require.NoError(t, err)
	assert.Equal(t, Constraint{Width: Proportion(0.25), Height: NegativePixels(3), X: Center(), Y: Offset(7)}, c)

	var d Constraint
	require.NoError(t, yaml.Unmarshal([]byte("width: fill\nheight: 4\nx: end\n"), &d))
	assert.Equal(t, Constraint{Width: Fill(), Height: Pixels(4), X: End(), Y: Start()}, d)

	_, err = ParseSize("wide")
	assert.Error(t, err)
	_, err = ParsePosition("middle")
	assert.Error(t, err)
	assert.Error(t, yaml.Unmarshal([]byte("width: abc%\n"), &c))
}

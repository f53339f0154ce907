package reynolds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want float64
	}{
		{"kinematic", Input{V: 10, C: 1, Nu: Float(1.5e-5)}, 666666.67},
		{"dynamic", Input{V: 10, C: 1, Rho: Float(1.2), Mu: Float(1.8e-5)}, 666666.67},
		{"nu wins", Input{V: 10, C: 1, Nu: Float(1e-5), Rho: Float(1.2), Mu: Float(1.8e-5)}, 1e6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			re, err := Compute(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, re, 0.01)
		})
	}
}

func TestComputeMissingInputs(t *testing.T) {
	for _, in := range []Input{
		{V: 10, C: 1},
		{V: 10, C: 1, Rho: Float(1.2)},
		{V: 10, C: 1, Mu: Float(1.8e-5)},
	} {
		_, err := Compute(in)
		assert.ErrorIs(t, err, ErrMissingViscosity)
	}
}

func TestComputeZeroViscosity(t *testing.T) {
	_, err := Compute(Input{V: 10, C: 1, Nu: Float(0)})
	assert.ErrorIs(t, err, ErrZeroViscosity)
	_, err = Compute(Input{V: 10, C: 1, Rho: Float(1.2), Mu: Float(0)})
	assert.ErrorIs(t, err, ErrZeroViscosity)
}

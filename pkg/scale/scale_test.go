package scale_test

import (
	"testing"

	"embedkit/pkg/scale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	// 10-bit ADC counts to millivolts at 3300mV full scale
	assert.Equal(t, int32(0), scale.Linear(0, 0, 1023, 0, 3300))
	assert.Equal(t, int32(3300), scale.Linear(1023, 0, 1023, 0, 3300))
	assert.Equal(t, int32(1650), scale.Linear(512, 0, 1024, 0, 3300))

	// inverted output range
	assert.Equal(t, int32(100), scale.Linear(0, 0, 10, 100, 0))
	assert.Equal(t, int32(0), scale.Linear(10, 0, 10, 100, 0))

	// extrapolates outside the source range
	assert.Equal(t, int32(-330), scale.Linear(-1, 0, 10, 0, 3300))

	// degenerate source range
	assert.Equal(t, int32(42), scale.Linear(7, 5, 5, 42, 99))
}

func TestNewTable_Validation(t *testing.T) {
	_, err := scale.NewTable([]int32{0, 1}, []int32{0})
	assert.ErrorIs(t, err, scale.ErrLengthMismatch)

	_, err = scale.NewTable([]int32{0}, []int32{0})
	assert.ErrorIs(t, err, scale.ErrTooFewPoints)

	_, err = scale.NewTable([]int32{0, 5, 5}, []int32{0, 1, 2})
	assert.ErrorIs(t, err, scale.ErrUnsorted)

	_, err = scale.NewTable([]int32{0, 5, 3}, []int32{0, 1, 2})
	assert.ErrorIs(t, err, scale.ErrUnsorted)
}

func TestTable_Lookup(t *testing.T) {
	// NTC-style curve: counts to decidegrees
	tab, err := scale.NewTable(
		[]int32{100, 200, 400, 800},
		[]int32{900, 600, 300, 0},
	)
	require.NoError(t, err)

	// exact breakpoints
	assert.Equal(t, int32(900), tab.Lookup(100))
	assert.Equal(t, int32(600), tab.Lookup(200))
	assert.Equal(t, int32(0), tab.Lookup(800))

	// interpolated
	assert.Equal(t, int32(750), tab.Lookup(150))
	assert.Equal(t, int32(450), tab.Lookup(300))

	// clamped outside the table
	assert.Equal(t, int32(900), tab.Lookup(-50))
	assert.Equal(t, int32(0), tab.Lookup(5000))
}

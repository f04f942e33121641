package enum_test

import (
	"drivingschool/shared/enum"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gear string

func (g gear) IsValid() bool {
	return g == "manual" || g == "automatic"
}

func TestScan(t *testing.T) {
	var g gear

	require.NoError(t, enum.Scan(&g, "manual"))
	assert.Equal(t, gear("manual"), g)

	require.NoError(t, enum.Scan(&g, []byte("automatic")))
	assert.Equal(t, gear("automatic"), g)

	assert.ErrorIs(t, enum.Scan(&g, "hover"), enum.ErrUnknownValue)
	assert.ErrorIs(t, enum.Scan(&g, nil), enum.ErrUnknownValue)
	assert.ErrorIs(t, enum.Scan(&g, 42), enum.ErrUnknownValue)
	assert.Equal(t, gear("automatic"), g)
}

func TestValue(t *testing.T) {
	v, err := enum.Value(gear("manual"))
	require.NoError(t, err)
	assert.Equal(t, "manual", v)

	_, err = enum.Value(gear(""))
	assert.ErrorIs(t, err, enum.ErrUnknownValue)
}

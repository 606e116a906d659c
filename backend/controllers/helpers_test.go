package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	n, err := coerceInt(float64(42))
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = coerceInt("30")
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = coerceInt(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = coerceInt(30.5)
	assert.Error(t, err, "fractional values are rejected, not truncated")

	_, err = coerceInt("abc")
	assert.Error(t, err)

	_, err = coerceInt(nil)
	assert.Error(t, err)

	_, err = coerceInt([]interface{}{1})
	assert.Error(t, err)
}

func TestCoerceIntDefault(t *testing.T) {
	n, err := coerceIntDefault(nil, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = coerceIntDefault(float64(10), 30)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = coerceIntDefault("abc", 30)
	assert.Error(t, err)
}

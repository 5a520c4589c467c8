package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIntegerLimitsInt16(t *testing.T) {
	lim, ok := LookupIntegerLimits(PrimitiveInt16)
	require.True(t, ok)
	assert.EqualValues(t, -32768, lim.DeclaredMin)
	assert.EqualValues(t, 32767, lim.DeclaredMax)
	assert.EqualValues(t, -32767, lim.ValidMin)
	assert.EqualValues(t, -32768, lim.Null)
}

func TestLookupIntegerLimitsUint8(t *testing.T) {
	lim, ok := LookupIntegerLimits(PrimitiveUint8)
	require.True(t, ok)
	assert.EqualValues(t, 1, lim.ValidMin)
	assert.EqualValues(t, 255, lim.ValidMax)
	assert.EqualValues(t, 0, lim.Null, "uint8 null reproduces the source's 255+1 overflow, narrowed to 0")
}

func TestLookupIntegerLimitsUint64NotPresent(t *testing.T) {
	_, ok := LookupIntegerLimits(PrimitiveUint64)
	assert.False(t, ok)
}

func TestLookupUint64Limits(t *testing.T) {
	lim := LookupUint64Limits()
	assert.EqualValues(t, 0, lim.ValidMin)
	assert.Equal(t, uint64(18446744073709551614), lim.ValidMax)
	assert.Equal(t, uint64(18446744073709551615), lim.Null)
}

func TestFloatNullIsNaN(t *testing.T) {
	assert.True(t, FloatNullIsNaN(PrimitiveFloat))
	assert.True(t, FloatNullIsNaN(PrimitiveDouble))
	assert.False(t, FloatNullIsNaN(PrimitiveInt32))
}

func TestPrimitiveSize(t *testing.T) {
	assert.Equal(t, 1, PrimitiveSize(PrimitiveUint8))
	assert.Equal(t, 2, PrimitiveSize(PrimitiveInt16))
	assert.Equal(t, 8, PrimitiveSize(PrimitiveDouble))
}

func TestValidPrimitive(t *testing.T) {
	assert.True(t, ValidPrimitive("uint8"))
	assert.False(t, ValidPrimitive("uint128"))
}

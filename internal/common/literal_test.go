package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt64(t *testing.T) {
	v, err := ParseInt64(" -42 ")
	require.NoError(t, err)
	assert.EqualValues(t, -42, v)

	v, err = ParseInt64("0x2A")
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)
}

func TestParseInt64NumericConversionError(t *testing.T) {
	_, err := ParseInt64("not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric conversion")
}

func TestParseUint64NumericConversionError(t *testing.T) {
	_, err := ParseUint64("-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric conversion")
}

func TestFormatIntLiteral(t *testing.T) {
	assert.Equal(t, "-7", FormatIntLiteral(-7))
}

func TestFormatUintLiteral(t *testing.T) {
	assert.Equal(t, "18446744073709551615", FormatUintLiteral(18446744073709551615))
}

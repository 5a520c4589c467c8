package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbec/internal/diag"
	"sbec/internal/xmlschema"
)

func fieldNode(t *testing.T, attrs map[string]string) *xmlschema.Node {
	t.Helper()
	n := xmlschema.NewSyntheticRoot("field")
	for k, v := range attrs {
		n.SetAttr(k, v)
	}
	return n
}

func TestPropRequiredStringMissing(t *testing.T) {
	n := fieldNode(t, nil)
	_, err := PropRequiredString(n, "name")
	require.Error(t, err)
	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Attr)
}

func TestPropUint64FallsBackOnMalformed(t *testing.T) {
	n := fieldNode(t, map[string]string{"sinceVersion": "not-a-number"})
	sink := diag.NewSink()
	got := PropUint64(n, "sinceVersion", 7, sink)
	assert.EqualValues(t, 7, got)
	require.Len(t, sink.Messages(), 1)
	assert.Equal(t, diag.LevelWarning, sink.Messages()[0].Level)
}

func TestPropBoolDefault(t *testing.T) {
	n := fieldNode(t, nil)
	assert.True(t, PropBool(n, "flag", true, nil))
}

package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkRecordsInOrder(t *testing.T) {
	s := NewSink()
	s.Info("starting %s", "compile")
	s.Warning("deprecated field %q", "foo")
	s.Error("boom")

	require := assert.New(t)
	msgs := s.Messages()
	require.Len(msgs, 3)
	require.Equal(LevelInfo, msgs[0].Level)
	require.Equal(LevelWarning, msgs[1].Level)
	require.Equal(LevelError, msgs[2].Level)
	require.True(s.HasErrors())
}

func TestSinkHasErrorsFalseWithoutErrors(t *testing.T) {
	s := NewSink()
	s.Info("fine")
	s.Warning("also fine")
	assert.False(t, s.HasErrors())
}

func TestSinkWriteTo(t *testing.T) {
	s := NewSink()
	s.Warning("gap of %d bytes", 3)
	var sb strings.Builder
	s.WriteTo(&sb)
	assert.Contains(t, sb.String(), "WARNING: gap of 3 bytes")
}

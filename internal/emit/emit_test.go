package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbec/internal/config"
	"sbec/internal/schema"
)

const sampleSchema = `<messageSchema package="baseline" id="1" version="0">
  <types>
    <composite name="messageHeader">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="templateId" primitiveType="uint16"/>
      <type name="schemaId" primitiveType="uint16"/>
      <type name="version" primitiveType="uint16"/>
    </composite>
  </types>
  <message name="Heartbeat" id="1"/>
</messageSchema>`

func buildReport(t *testing.T) *Report {
	t.Helper()
	db, err := schema.ParseSchema(strings.NewReader(sampleSchema), config.Default())
	require.NoError(t, err)
	return BuildReport(db)
}

func TestBuildReportCountsMessages(t *testing.T) {
	r := buildReport(t)
	assert.Equal(t, 1, r.MessageCount)
	require.Len(t, r.Messages, 1)
	assert.Equal(t, "Heartbeat", r.Messages[0].Name)
}

func TestNewFormatterDefaultsToHuman(t *testing.T) {
	f, err := NewFormatter("")
	require.NoError(t, err)
	_, ok := f.(humanFormatter)
	assert.True(t, ok)
}

func TestNewFormatterUnknown(t *testing.T) {
	_, err := NewFormatter("yaml")
	require.Error(t, err)
}

func TestHumanFormatterIncludesMessageName(t *testing.T) {
	r := buildReport(t)
	f, err := NewFormatter("human")
	require.NoError(t, err)
	out, err := f.Format(r)
	require.NoError(t, err)
	assert.Contains(t, out, "Heartbeat")
}

func TestBuildOptionsTreeCoversEveryEntity(t *testing.T) {
	db, err := schema.ParseSchema(strings.NewReader(sampleSchema), config.Default())
	require.NoError(t, err)
	views := Walk(db)
	tree := BuildOptionsTree(views)
	assert.Equal(t, len(views), len(tree.Nodes))
	assert.Greater(t, tree.Count(), 0)
}

func TestJSONFormatterProducesValidField(t *testing.T) {
	r := buildReport(t)
	f, err := NewFormatter("json")
	require.NoError(t, err)
	out, err := f.Format(r)
	require.NoError(t, err)
	assert.Contains(t, out, `"messageCount": 1`)
}

func TestSummaryFormatterHandlesNilReport(t *testing.T) {
	f, err := NewFormatter("summary")
	require.NoError(t, err)
	out, err := f.Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "No schema loaded.\n", out)
}

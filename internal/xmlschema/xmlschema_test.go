package xmlschema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `<?xml version="1.0" encoding="UTF-8"?>
<sbe:messageSchema xmlns:sbe="http://fixprotocol.io/2016/sbe"
                    package="baseline" id="1" version="0" byteOrder="littleEndian">
  <types>
    <type name="uint8" primitiveType="uint8"/>
  </types>
  <message name="Heartbeat" id="1"/>
</sbe:messageSchema>`

func TestParseAndRoot(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleSchema))
	require.NoError(t, err)

	root, err := doc.Root()
	require.NoError(t, err)

	pkg, ok := root.Attr("package")
	require.True(t, ok)
	assert.Equal(t, "baseline", pkg)

	types := root.Children("types")
	require.Len(t, types, 1)

	messages := root.Children("message")
	require.Len(t, messages, 1)
	name, _ := messages[0].Attr("name")
	assert.Equal(t, "Heartbeat", name)
}

func TestRootRejectsNonSchemaDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<notASchema/>`))
	require.NoError(t, err)
	_, err = doc.Root()
	require.Error(t, err)
}

func TestInvalidXML(t *testing.T) {
	_, err := Parse(strings.NewReader(`<unterminated`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema xml")
}

func TestSynthesizePadding(t *testing.T) {
	n := SynthesizePadding(0, 3)
	name, _ := n.Attr("name")
	assert.Equal(t, "pad0_", name)
	length, _ := n.Attr("length")
	assert.Equal(t, "3", length)
}

func TestSynthesizeMsgIDEnum(t *testing.T) {
	n := SynthesizeMsgIDEnum("MsgId", "uint16", []MsgIDValue{
		{Name: "Heartbeat", Value: "1"},
		{Name: "Order", Value: "2"},
	})
	values := n.Children("validValue")
	require.Len(t, values, 2)
	assert.Equal(t, "1", values[0].Text())
}

func TestAttrDictOrderPreserved(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<root b="2" a="1"/>`))
	require.NoError(t, err)
	root := doc.doc.Root()
	node := WrapElement(root)
	attrs := node.Attrs()
	require.Len(t, attrs, 2)
	assert.Equal(t, "b", attrs[0].Name)
	assert.Equal(t, "a", attrs[1].Name)
}

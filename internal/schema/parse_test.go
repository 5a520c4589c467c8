package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbec/internal/common"
	"sbec/internal/config"
)

const baselineSchema = `<messageSchema package="baseline" id="1" version="0" byteOrder="littleEndian">
  <types>
    <composite name="messageHeader">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="templateId" primitiveType="uint16"/>
      <type name="schemaId" primitiveType="uint16"/>
      <type name="version" primitiveType="uint16"/>
    </composite>
    <composite name="groupSizeEncoding">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="numInGroup" primitiveType="uint16"/>
    </composite>
    <composite name="varStringEncoding">
      <type name="length" primitiveType="uint8"/>
      <type name="varData" primitiveType="uint8" length="0"/>
    </composite>
    <enum name="Side" encodingType="char">
      <validValue name="Buy">1</validValue>
      <validValue name="Sell">2</validValue>
    </enum>
    <type name="OptionalPrice" primitiveType="int32" presence="optional"/>
  </types>
  <message name="NewOrder" id="1">
    <field name="side" type="Side" presence="constant" valueRef="Side.Buy"/>
    <field name="flag" type="uint8"/>
    <field name="qty" type="uint32" offset="8"/>
    <field name="price" type="OptionalPrice"/>
    <data name="note" type="varStringEncoding"/>
  </message>
  <message name="Heartbeat" id="2"/>
</messageSchema>`

func mustParse(t *testing.T, xml string, opts config.Options) *Database {
	t.Helper()
	db, err := ParseSchema(strings.NewReader(xml), opts)
	require.NoError(t, err)
	return db
}

func TestParseSchemaBaseline(t *testing.T) {
	db := mustParse(t, baselineSchema, config.Default())
	assert.Equal(t, "baseline", db.Namespace)
	assert.EqualValues(t, 0, db.SchemaVersion)
	require.Len(t, db.Messages(), 2)
}

func TestOffsetGapSynthesizesPadding(t *testing.T) {
	db := mustParse(t, baselineSchema, config.Default())
	msg := db.Message("NewOrder")
	require.NotNil(t, msg)

	var sawPadding bool
	var paddingLen int
	for _, f := range msg.Fields() {
		if f.IsGeneratedPadding() {
			sawPadding = true
			paddingLen = f.RefType().SerializationLength()
		}
	}
	require.True(t, sawPadding, "expected a synthesized padding field to close the offset gap")
	assert.Equal(t, 7, paddingLen)
}

func TestOptionalIntegerDefaultsToTableNull(t *testing.T) {
	db := mustParse(t, baselineSchema, config.Default())
	optType := db.Type("OptionalPrice")
	require.NotNil(t, optType)
	lim, ok := common.LookupIntegerLimits(common.PrimitiveInt32)
	require.True(t, ok)

	msg := db.Message("NewOrder")
	var priceField *Field
	for _, f := range msg.Fields() {
		if f.Name() == "price" {
			priceField = f
		}
	}
	require.NotNil(t, priceField)
	assert.Equal(t, optType, priceField.RefType())
	assert.Equal(t, PresenceOptional, optType.Presence())
	assert.NotNil(t, optType.nullValue)
	assert.Equal(t, lim.Null, *optType.nullValue)
}

func TestConstantFieldResolvesValueRef(t *testing.T) {
	db := mustParse(t, baselineSchema, config.Default())
	msg := db.Message("NewOrder")
	var sideField *Field
	for _, f := range msg.Fields() {
		if f.Name() == "side" {
			sideField = f
		}
	}
	require.NotNil(t, sideField)
	assert.Equal(t, PresenceConstant, sideField.Presence())
	val, ok := sideField.ValueRef()
	require.True(t, ok)
	assert.Equal(t, "Buy", val.Name)
	assert.EqualValues(t, '1', val.Value)
}

func TestMessageHeaderTemplateIdTransmutesToMsgIdEnum(t *testing.T) {
	db := mustParse(t, baselineSchema, config.Default())
	enum := db.MsgIDEnum()
	require.NotNil(t, enum)
	assert.True(t, enum.IsMsgIDEnum())

	values := enum.Values()
	require.Len(t, values, 2)
	assert.Equal(t, "NewOrder", values[0].Name)
	assert.EqualValues(t, 1, values[0].Value)
	assert.Equal(t, "Heartbeat", values[1].Name)
	assert.EqualValues(t, 2, values[1].Value)
}

func TestForcedVersionDownshift(t *testing.T) {
	versioned := strings.Replace(baselineSchema, `version="0"`, `version="2"`, 1)
	opts := config.Options{ForcedVersion: 1, HasForcedVersion: true}
	db := mustParse(t, versioned, opts)
	assert.EqualValues(t, 1, db.EffectiveVersion)

	var sawDownshiftInfo bool
	for _, m := range db.Diagnostics.Messages() {
		if strings.Contains(m.Text, "downshifting") {
			sawDownshiftInfo = true
		}
	}
	assert.True(t, sawDownshiftInfo)
}

func TestGroupOrderingViolationIsRejected(t *testing.T) {
	const schema = `<messageSchema package="baseline" id="1" version="0">
  <types>
    <composite name="messageHeader">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="templateId" primitiveType="uint16"/>
      <type name="schemaId" primitiveType="uint16"/>
      <type name="version" primitiveType="uint16"/>
    </composite>
    <composite name="groupSizeEncoding">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="numInGroup" primitiveType="uint16"/>
    </composite>
  </types>
  <message name="Bad" id="1">
    <group name="Legs" dimensionType="groupSizeEncoding">
      <field name="ratio" type="uint32"/>
    </group>
    <field name="trailer" type="uint8"/>
  </message>
</messageSchema>`

	_, err := ParseSchema(strings.NewReader(schema), config.Default())
	require.Error(t, err)
	var shapeErr *ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
}

func TestUnknownTypeReferenceIsRejected(t *testing.T) {
	const schema = `<messageSchema package="baseline" id="1" version="0">
  <types>
    <composite name="messageHeader">
      <type name="blockLength" primitiveType="uint16"/>
      <type name="templateId" primitiveType="uint16"/>
      <type name="schemaId" primitiveType="uint16"/>
      <type name="version" primitiveType="uint16"/>
    </composite>
  </types>
  <message name="Bad" id="1">
    <field name="x" type="Nonexistent"/>
  </message>
</messageSchema>`

	_, err := ParseSchema(strings.NewReader(schema), config.Default())
	require.Error(t, err)
	var unknown *UnknownTypeReferenceError
	require.ErrorAs(t, err, &unknown)
}

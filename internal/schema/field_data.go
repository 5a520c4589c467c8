package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// dataField is the payload for FieldData: a variable-length byte run
// appended after a message or group's fixed block, backed by a data-shaped
// composite (§4.3 Data field).
type dataField struct {
	dataType *Type
}

// parseDataField parses a <data> element, resolving its type reference and
// requiring it name a data-shaped composite (§7 ShapeMismatch).
func parseDataField(node *xmlschema.Node, message string, baseVersion uint64, db *Database) (*Field, error) {
	name, err := common.PropRequiredString(node, "name")
	if err != nil {
		return nil, err
	}
	typeName, err := common.PropRequiredString(node, "type")
	if err != nil {
		return nil, err
	}
	dataType, err := db.LookupType(typeName, false)
	if err != nil {
		return nil, &UnknownTypeReferenceError{Name: typeName, On: "data field " + name}
	}
	if err := dataType.EnsureParsed(); err != nil {
		return nil, err
	}
	if dataType.Kind() != KindComposite || dataType.Shape() != ShapeData {
		return nil, &ShapeMismatchError{Detail: fmt.Sprintf("data field %q names %q, which is not a data-shaped composite", name, typeName)}
	}
	dataType.MarkUsage(false, false, true)

	f := newField(FieldData, name, message, db)
	if err := f.parseCommon(node, baseVersion); err != nil {
		return nil, err
	}
	f.data = &dataField{dataType: dataType}
	f.lowerExtraOpts()
	return f, nil
}

// DataType is the data-shaped composite backing a data field.
func (f *Field) DataType() *Type {
	if f.data == nil {
		return nil
	}
	return f.data.dataType
}

package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"sbec/internal/common"
	"sbec/internal/config"
	"sbec/internal/xmlschema"
)

const defaultMessageHeaderTypeName = "messageHeader"
const defaultOpenFramingHeaderName = "simpleOpenFramingHeader"
const defaultCCTag = "CODEC"

// recordMeta reads the root element's schema-wide attributes and program
// options into the Database's global settings (§4.5 step 4): it rejects a
// forced version above the declared one, clamps the minimum remote version
// to the effective version, and resolves a relative output directory
// against the working directory.
func recordMeta(root *xmlschema.Node, opts config.Options, db *Database) error {
	pkg := common.PropString(root, "package", "")
	db.Namespace = opts.ResolveNamespace(common.NamespaceFromPackage(pkg))

	declaredVersion := common.PropUint64(root, "version", 0, db.Diagnostics)
	if opts.HasForcedVersion && opts.ForcedVersion > declaredVersion {
		return &VersioningError{Detail: fmt.Sprintf("forced schema version %d exceeds the document's declared version %d", opts.ForcedVersion, declaredVersion)}
	}
	db.SchemaVersion = opts.ResolveVersion(declaredVersion)
	if db.SchemaVersion < declaredVersion {
		db.Diagnostics.Info("forced schema version %d is lower than the document's declared version %d; downshifting", db.SchemaVersion, declaredVersion)
	}
	db.EffectiveVersion = db.SchemaVersion

	db.SchemaID = common.PropUint64(root, "id", 0, db.Diagnostics)
	db.MinRemoteVersion = opts.MinRemoteVersion
	if db.MinRemoteVersion > db.EffectiveVersion {
		db.MinRemoteVersion = db.EffectiveVersion
	}
	headerType := common.PropString(root, "headerType", defaultMessageHeaderTypeName)
	if opts.HeaderType != "" {
		headerType = opts.HeaderType
	}
	db.MessageHeaderTypeName = headerType
	db.CCTag = opts.ResolveCCTag(defaultCCTag)
	db.OpenFramingHeaderName = opts.ResolveOpenFramingHeaderName(defaultOpenFramingHeaderName)
	rootDir := opts.OutputDir
	if !filepath.IsAbs(rootDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		rootDir = filepath.Join(cwd, rootDir)
	}
	db.RootDir = rootDir

	switch common.PropString(root, "byteOrder", "littleEndian") {
	case "bigEndian":
		db.Endian = EndianBig
	default:
		db.Endian = EndianLittle
	}
	return nil
}

// synthesizeMsgIDEnum transmutes the message-header composite's templateId
// member into a closed enum of every declared message's (name, id) pair,
// once every message has been parsed (§4.2 Composite Type, message-header
// shape; §8 boundary scenario "message-header transmutation"). The
// synthesized enum replaces the templateId member in place within the
// header composite's member list, so every downstream consumer of the
// composite's Members()/TemplateIDMember() sees the enum, not the
// original Basic integer.
func synthesizeMsgIDEnum(db *Database) error {
	header := db.Type(db.MessageHeaderTypeName)
	if header == nil || header.Kind() != KindComposite {
		return nil
	}
	templateMember := header.TemplateIDMember()
	if templateMember == nil {
		return nil
	}

	encodingType := string(templateMember.PrimitiveType())
	var values []xmlschema.MsgIDValue
	for _, m := range db.MessagesByID() {
		values = append(values, xmlschema.MsgIDValue{Name: m.Name(), Value: formatUint(uint64(m.ID()))})
	}

	node := xmlschema.SynthesizeMsgIDEnum("MsgId", encodingType, values)
	enumType := newType(KindEnum, "MsgId", db)
	if err := enumType.parseFrom(node); err != nil {
		return err
	}
	enumType.MarkAsMsgIDEnum()
	db.msgIDEnum = enumType

	for i, m := range header.composite.members {
		if m == templateMember {
			header.composite.members[i] = enumType
			break
		}
	}
	header.composite.templateMember = enumType
	return nil
}

func formatUint(v uint64) string {
	return common.FormatUintLiteral(v)
}

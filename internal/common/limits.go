package common

import "math"

// Primitive is one of the eleven SBE primitive type keywords.
type Primitive string

const (
	PrimitiveChar   Primitive = "char"
	PrimitiveInt8   Primitive = "int8"
	PrimitiveUint8  Primitive = "uint8"
	PrimitiveInt16  Primitive = "int16"
	PrimitiveUint16 Primitive = "uint16"
	PrimitiveInt32  Primitive = "int32"
	PrimitiveUint32 Primitive = "uint32"
	PrimitiveInt64  Primitive = "int64"
	PrimitiveUint64 Primitive = "uint64"
	PrimitiveFloat  Primitive = "float"
	PrimitiveDouble Primitive = "double"
)

// ValidPrimitive reports whether s names one of the eleven primitive types.
func ValidPrimitive(s string) bool {
	_, ok := primitiveSizes[Primitive(s)]
	return ok
}

var primitiveSizes = map[Primitive]int{
	PrimitiveChar:   1,
	PrimitiveInt8:   1,
	PrimitiveUint8:  1,
	PrimitiveInt16:  2,
	PrimitiveUint16: 2,
	PrimitiveInt32:  4,
	PrimitiveUint32: 4,
	PrimitiveInt64:  8,
	PrimitiveUint64: 8,
	PrimitiveFloat:  4,
	PrimitiveDouble: 8,
}

// PrimitiveSize returns the wire width, in bytes, of one instance of p.
func PrimitiveSize(p Primitive) int {
	return primitiveSizes[p]
}

// IsFloatingPoint reports whether p is float or double.
func IsFloatingPoint(p Primitive) bool {
	return p == PrimitiveFloat || p == PrimitiveDouble
}

// IsUnsigned reports whether p is one of the unsigned integer primitives.
func IsUnsigned(p Primitive) bool {
	switch p {
	case PrimitiveUint8, PrimitiveUint16, PrimitiveUint32, PrimitiveUint64:
		return true
	default:
		return false
	}
}

// IsSignedInteger reports whether p is one of the signed integer primitives.
func IsSignedInteger(p Primitive) bool {
	switch p {
	case PrimitiveInt8, PrimitiveInt16, PrimitiveInt32, PrimitiveInt64:
		return true
	default:
		return false
	}
}

// IntegerLimits is the primitive min/max/null table for a signed or
// narrow-unsigned (fits in int64) integer primitive. It is the single
// source of truth the two historical per-type helpers (one per lowering
// path) have been unified into; see DESIGN.md for the decision to keep
// the table's numeric conventions exactly as declared here rather than
// deriving them generically at each call site.
type IntegerLimits struct {
	// DeclaredMin/DeclaredMax are the primitive's natural range, ignoring
	// any reserved null.
	DeclaredMin, DeclaredMax int64
	// ValidMin/ValidMax are the range left over once a null sentinel is
	// reserved: signed types give up their minimum, unsigned types give
	// up their maximum (§8 boundary scenario 2).
	ValidMin, ValidMax int64
	// Null is the reserved sentinel value used when no nullValue is
	// declared explicitly.
	Null int64
}

var integerLimits = map[Primitive]IntegerLimits{
	PrimitiveInt8: {
		DeclaredMin: math.MinInt8, DeclaredMax: math.MaxInt8,
		ValidMin: math.MinInt8 + 1, ValidMax: math.MaxInt8,
		Null: math.MinInt8,
	},
	// uint8's null is computed the same way the source computes it
	// (DeclaredMax+1 = 256) and then narrowed into the one-byte wire
	// field, wrapping to 0. Reproduced here rather than normalized to
	// the well-formed 255-reserves-the-top-value convention every other
	// width gets (spec §9: "preserve the table as the single source of
	// truth; do not normalize").
	PrimitiveUint8: {
		DeclaredMin: 0, DeclaredMax: math.MaxUint8,
		ValidMin: 1, ValidMax: math.MaxUint8,
		Null: 0,
	},
	PrimitiveInt16: {
		DeclaredMin: math.MinInt16, DeclaredMax: math.MaxInt16,
		ValidMin: math.MinInt16 + 1, ValidMax: math.MaxInt16,
		Null: math.MinInt16,
	},
	PrimitiveUint16: {
		DeclaredMin: 0, DeclaredMax: math.MaxUint16,
		ValidMin: 0, ValidMax: math.MaxUint16 - 1,
		Null: math.MaxUint16,
	},
	PrimitiveInt32: {
		DeclaredMin: math.MinInt32, DeclaredMax: math.MaxInt32,
		ValidMin: math.MinInt32 + 1, ValidMax: math.MaxInt32,
		Null: math.MinInt32,
	},
	PrimitiveUint32: {
		DeclaredMin: 0, DeclaredMax: math.MaxUint32,
		ValidMin: 0, ValidMax: math.MaxUint32 - 1,
		Null: math.MaxUint32,
	},
	PrimitiveInt64: {
		DeclaredMin: math.MinInt64, DeclaredMax: math.MaxInt64,
		ValidMin: math.MinInt64 + 1, ValidMax: math.MaxInt64,
		Null: math.MinInt64,
	},
	PrimitiveChar: {
		DeclaredMin: 0x00, DeclaredMax: 0xff,
		ValidMin: 0x20, ValidMax: 0x7e,
		Null: 0,
	},
}

// LookupIntegerLimits returns the default min/max/null table entry for a
// signed or narrow-unsigned integer primitive. ok is false for uint64
// (see Uint64Limits) and for the floating-point primitives.
func LookupIntegerLimits(p Primitive) (IntegerLimits, bool) {
	l, ok := integerLimits[p]
	return l, ok
}

// Uint64Limits is the dedicated big-unsigned table entry: uint64's natural
// range does not fit in a signed 64-bit domain, so it is kept apart from
// IntegerLimits rather than forced into an int64 field (§4.2 Simple
// integer: "uint64 is handled with a dedicated big-unsigned path").
type Uint64Limits struct {
	ValidMin, ValidMax uint64
	Null               uint64
}

// LookupUint64Limits returns uint64's default min/max/null table entry.
func LookupUint64Limits() Uint64Limits {
	return Uint64Limits{
		ValidMin: 0,
		ValidMax: math.MaxUint64 - 1,
		Null:     math.MaxUint64,
	}
}

// FloatNullIsNaN reports whether p's default null/invalid representation
// is NaN (true for both float and double, per §4.2 Simple float).
func FloatNullIsNaN(p Primitive) bool {
	return IsFloatingPoint(p)
}

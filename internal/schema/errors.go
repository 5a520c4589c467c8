package schema

import "fmt"

// The error taxonomy of §7. Each is a distinct type so a caller further up
// the phase chain can still errors.As into the specific class after the
// usual fmt.Errorf("...: %w", err) wrapping on the way out of parse_schema.

// UnknownTypeReferenceError is raised when a type/dimensionType/valueRef
// attribute does not resolve inside the Database.
type UnknownTypeReferenceError struct {
	Name string
	On   string // the element/attribute that referenced Name
}

func (e *UnknownTypeReferenceError) Error() string {
	return fmt.Sprintf("unknown type reference %q (from %s)", e.Name, e.On)
}

// PresenceViolationError covers the Required/Optional/Constant conflicts
// enumerated across §4.2 and §4.3.
type PresenceViolationError struct {
	Detail string
}

func (e *PresenceViolationError) Error() string {
	return "presence violation: " + e.Detail
}

// LayoutConflictError is raised when a declared offset would overlap the
// running layout offset.
type LayoutConflictError struct {
	Member   string
	Expected int
	Declared int
}

func (e *LayoutConflictError) Error() string {
	return fmt.Sprintf("layout conflict: member %q declares offset %d but the running offset is already %d",
		e.Member, e.Declared, e.Expected)
}

// ShapeMismatchError covers the data/dimension/message-header composite
// shape checks and the group-ordering rule.
type ShapeMismatchError struct {
	Detail string
}

func (e *ShapeMismatchError) Error() string {
	return "shape mismatch: " + e.Detail
}

// DuplicateNameError covers DuplicateName/DuplicateMessageId/
// DuplicateEnumValue/DuplicateBitIndex, distinguished by Kind.
type DuplicateNameError struct {
	Kind  string // "name" | "message id" | "enum value" | "bit index"
	Value string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Kind, e.Value)
}

// VersioningError covers sinceVersion/deprecated/forced-version ordering
// violations.
type VersioningError struct {
	Detail string
}

func (e *VersioningError) Error() string {
	return "versioning error: " + e.Detail
}

// RecursiveDependencyError is raised when a type's writingInProgress flag
// is still set on re-entry during a traversal (§4.2 Cycle detection).
type RecursiveDependencyError struct {
	Name string
}

func (e *RecursiveDependencyError) Error() string {
	return fmt.Sprintf("recursive type dependency detected at %q", e.Name)
}

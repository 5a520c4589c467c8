package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenameIfReserved(t *testing.T) {
	assert.Equal(t, "type_", RenameIfReserved("type"))
	assert.Equal(t, "side", RenameIfReserved("side"))
}

func TestScopedName(t *testing.T) {
	assert.Equal(t, "Outer_inner", ScopedName("Outer", "inner"))
	assert.Equal(t, "inner", ScopedName("", "inner"))
}

func TestNamespaceFromPackage(t *testing.T) {
	assert.Equal(t, "fix_44", NamespaceFromPackage(" fix 44 "))
}

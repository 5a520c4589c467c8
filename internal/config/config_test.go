package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNamespace(t *testing.T) {
	assert.Equal(t, "fix44", Options{Namespace: "fix44"}.ResolveNamespace("baseline"))
	assert.Equal(t, "baseline", Options{}.ResolveNamespace("baseline"))
}

func TestResolveVersionAppliesForcedDownshiftOnly(t *testing.T) {
	opts := Options{ForcedVersion: 1, HasForcedVersion: true}
	assert.EqualValues(t, 1, opts.ResolveVersion(3))

	opts = Options{ForcedVersion: 5, HasForcedVersion: true}
	assert.EqualValues(t, 3, opts.ResolveVersion(3), "forced version above declared must not raise it")

	assert.EqualValues(t, 3, Options{}.ResolveVersion(3))
}

func TestResolveCCTag(t *testing.T) {
	assert.Equal(t, "MYTAG", Options{CCTag: "MYTAG"}.ResolveCCTag("CODEC"))
	assert.Equal(t, "CODEC", Options{}.ResolveCCTag("CODEC"))
}

func TestOptionsTreeCountsNestedNodes(t *testing.T) {
	tree := OptionsTree{Nodes: []OptionsTreeNode{
		{Name: "Heartbeat", ExtraOpts: nil, Children: []OptionsTreeNode{
			{Name: "field1"},
			{Name: "group1", Children: []OptionsTreeNode{{Name: "nested"}}},
		}},
	}}
	assert.Equal(t, 4, tree.Count())
}

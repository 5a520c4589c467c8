package emit

import "sbec/internal/config"

// BuildOptionsTree walks a set of entity views into a config.OptionsTree,
// giving a downstream emitter a concrete Go value to walk instead of only
// the strings the human/json formatters print (§1 "an options struct
// tree"). Exercises ExtraOptInfos end to end.
func BuildOptionsTree(views []EntityView) config.OptionsTree {
	return config.OptionsTree{Nodes: buildOptionsTreeNodes(views)}
}

func buildOptionsTreeNodes(views []EntityView) []config.OptionsTreeNode {
	if len(views) == 0 {
		return nil
	}
	nodes := make([]config.OptionsTreeNode, 0, len(views))
	for _, v := range views {
		opts := v.ExtraOptInfos()
		names := make([]string, 0, len(opts))
		for _, o := range opts {
			names = append(names, o.Name)
		}
		nodes = append(nodes, config.OptionsTreeNode{
			Name:      v.ReferenceName(),
			ExtraOpts: names,
			Children:  buildOptionsTreeNodes(v.Children()),
		})
	}
	return nodes
}

package fieldexpr

import "sort"

// InferFieldPaths derives field paths from a request payload so that
// "send a partial object" behaves as "update exactly the attributes
// present". Plain nested mappings are descended into while depth remains;
// arrays, scalars and explicit nulls are leaves. When the depth limit is
// reached the key is emitted as an opaque leaf, so the whole subtree below
// it is written wholesale rather than dropped.
//
// Output is depth-first with keys in lexicographic order at each level;
// Go maps carry no insertion order, so sorting is what makes the result
// deterministic.
func InferFieldPaths(data map[string]interface{}, maxDepth int) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	paths := make([]string, 0, len(data))
	for _, key := range keys {
		child, isMap := data[key].(map[string]interface{})
		if isMap && maxDepth > 1 {
			for _, sub := range InferFieldPaths(child, maxDepth-1) {
				paths = append(paths, key+"."+sub)
			}
			continue
		}
		paths = append(paths, key)
	}
	return paths
}

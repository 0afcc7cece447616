package policy

// DeepMerge merges override into base and returns a new map; neither input is
// mutated. Recursion happens only when both sides hold a map at the same key;
// any other pairing replaces the base value wholesale, lists included.
func DeepMerge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for key, value := range base {
		out[key] = deepCopyValue(value)
	}
	for key, value := range override {
		baseMap, baseIsMap := out[key].(map[string]any)
		overrideMap, overrideIsMap := value.(map[string]any)
		if baseIsMap && overrideIsMap {
			out[key] = DeepMerge(baseMap, overrideMap)
			continue
		}
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}

package celadon

// deepMerge merges src into dst in place. Nested maps are merged key by key,
// anything else in src replaces the value in dst.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = cloneValue(v)
			continue
		}
		dstMap, ok := dst[k].(map[string]any)
		if !ok {
			dstMap = nil
		}
		dst[k] = deepMerge(dstMap, srcMap)
	}
	return dst
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return deepMerge(nil, v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

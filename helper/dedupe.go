package helper

// DedupeBy returns items with duplicate keys removed, first occurrence wins.
// The input slice is never modified; the result is always non-nil.
func DedupeBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

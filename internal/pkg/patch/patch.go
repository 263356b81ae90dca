package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Differs reports whether ptr is set and points at a value other than current.
func Differs[T comparable](ptr *T, current T) bool {
	return ptr != nil && *ptr != current
}

func Ptr[T any](v T) *T {
	return &v
}

package shared

// Ptr returns a pointer to a copy of v. Optional record fields are pointers,
// and this keeps literals short at call sites.
func Ptr[T any](v T) *T {
	return &v
}

package helpers

// NilIfEmpty returns nil for an empty string so nullable text columns
// store NULL instead of ''.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

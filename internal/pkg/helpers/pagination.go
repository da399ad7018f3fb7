package helpers

// Pagination defaults
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizePagination clamps offset/limit to sane bounds.
func NormalizePagination(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

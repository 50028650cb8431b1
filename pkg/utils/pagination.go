package utils

// PaginationParams holds normalized limit/offset values.
type PaginationParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"totalCount"`
}

// NormalizePagination clamps caller-supplied paging values. A
// non-positive limit falls back to defaultLimit; limits above maxLimit
// are capped; negative offsets become zero.
func NormalizePagination(limit, offset, defaultLimit, maxLimit int) PaginationParams {
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}

// CalculateMeta generates pagination metadata
func CalculateMeta(totalCount int64, p PaginationParams) PaginationMeta {
	return PaginationMeta{
		Limit:      p.Limit,
		Offset:     p.Offset,
		TotalCount: totalCount,
	}
}

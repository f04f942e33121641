package dto

import (
	"drivingschool/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Non-positive numbers and unknown directions are ignored. With withDefaults
// set, a missing page or limit is filled from constant.DefaultValuePage and
// constant.DefaultValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	query := r.URL.Query()

	q.Page = positiveOr(query.Get(constant.RequestParamPage), q.Page)
	q.Limit = positiveOr(query.Get(constant.RequestParamLimit), q.Limit)

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the number of rows skipped before the current page.
func (q *QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// OrderBy maps the requested sort key to a column through allowed so that
// raw user input never reaches ORDER BY. Unknown keys fall back to
// allowed[fallback]; a missing direction becomes DESC.
func (q *QueryParams) OrderBy(allowed map[string]string, fallback string) {
	column, ok := allowed[q.SortBy]
	if !ok {
		column = allowed[fallback]
	}

	q.SortBy = column

	if q.SortDir == "" {
		q.SortDir = SortDirDesc
	}
}

func positiveOr(raw string, current int) int {
	if value, err := strconv.Atoi(raw); err == nil && value > 0 {
		return value
	}

	return current
}

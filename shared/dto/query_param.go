package dto

import (
	"net/http"
	"strconv"
	"strings"

	"kingdom/shared/constant"
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

// FromRequest reads page, limit and sort from the query string. Invalid values are dropped
// and limit is capped at constant.MaxValueLimit.
//
// With paged set, missing values fall back to the first page of constant.DefaultValueLimit
// rows, newest first. A sort column without a direction sorts ascending.
func (q *QueryParams) FromRequest(r *http.Request, paged bool) {
	values := r.URL.Query()

	q.Page = positive(values.Get(constant.RequestParamPage))
	q.Limit = min(positive(values.Get(constant.RequestParamLimit)), constant.MaxValueLimit)
	q.SortBy = strings.TrimSpace(values.Get(constant.RequestParamSortBy))

	if dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}

	if !paged {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	if q.SortBy == "" {
		q.SortBy = constant.DefaultValueSortBy
		q.SortDir = constant.DefaultValueSortDir
	}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positive(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}

	return n
}

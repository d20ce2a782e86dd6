package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartspend/internal/listview"
)

// listQuery is the parsed query-string surface of a list endpoint.
type listQuery struct {
	filter listview.FilterSpec
	sort   listview.SortSpec
	page   int
}

// parseListQuery is forgiving by design: unknown or malformed values
// degrade to their zero value (match-all, default sort, page 1) rather
// than failing the request.
func parseListQuery(values url.Values) listQuery {
	q := listQuery{page: 1}

	q.filter.Search = sanitizeInput(values.Get("search"))
	q.filter.Category = sanitizeInput(values.Get("category"))
	q.filter.Flag = sanitizeInput(values.Get("status"))

	switch listview.DateRange(values.Get("range")) {
	case listview.RangeThisMonth:
		q.filter.Range = listview.RangeThisMonth
	case listview.RangeLastMonth:
		q.filter.Range = listview.RangeLastMonth
	case listview.RangeCustom:
		q.filter.Range = listview.RangeCustom
		if m, err := strconv.Atoi(values.Get("month")); err == nil && m >= 1 && m <= 12 {
			q.filter.CustomMonth = time.Month(m)
		}
		if y, err := strconv.Atoi(values.Get("year")); err == nil && y > 0 {
			q.filter.CustomYear = y
		}
	default:
		q.filter.Range = listview.RangeAll
	}

	q.sort.Key = strings.TrimSpace(values.Get("sort"))
	if values.Get("dir") == string(listview.Desc) {
		q.sort.Dir = listview.Desc
	} else if values.Get("dir") == string(listview.Asc) {
		q.sort.Dir = listview.Asc
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		q.page = p
	}

	return q
}

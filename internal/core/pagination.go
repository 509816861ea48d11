// AngelaMos | 2026
// pagination.go

package core

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps Offset well inside int32 for any page size.
	maxPage = math.MaxInt32 / maxPageSize
)

type PageParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p *PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageFromRequest reads page and page_size query parameters.
func PageFromRequest(r *http.Request) PageParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))           //nolint:errcheck // defaults on parse failure
	pageSize, _ := strconv.Atoi(q.Get("page_size")) //nolint:errcheck // defaults on parse failure

	p := PageParams{Page: page, PageSize: pageSize}
	p.Normalize()
	return p
}

// BoolQuery reads a boolean query parameter. Anything but true/1/yes is false.
func BoolQuery(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// TimeQuery reads an optional RFC 3339 timestamp query parameter.
func TimeQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC 3339 timestamp", name)
	}
	return &t, nil
}

// EscapeLike escapes LIKE wildcards in user-supplied search text.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

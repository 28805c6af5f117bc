package request

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 50
	MaxLimit     = 100
)

type ListProducts struct {
	Skip       int     `validate:"gte=0"         json:"skip"`
	Limit      int     `validate:"gte=1,lte=100" json:"limit"`
	CategoryID *int64  `validate:"omitempty"     json:"category_id,omitempty"`
	Search     *string `validate:"omitempty"     json:"search,omitempty"`
}

// ParseListProducts reads skip, limit, category_id and search from the query
// string. Missing skip and limit take their defaults; an empty search is the
// same as no search.
func ParseListProducts(query url.Values) (ListProducts, error) {
	req := ListProducts{Skip: DefaultSkip, Limit: DefaultLimit}

	if v := query.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			return ListProducts{}, fmt.Errorf("skip=%q is not an integer with error=%w", v, err)
		}
		req.Skip = skip
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return ListProducts{}, fmt.Errorf("limit=%q is not an integer with error=%w", v, err)
		}
		req.Limit = limit
	}

	if v := query.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return ListProducts{}, fmt.Errorf("category_id=%q is not an integer with error=%w", v, err)
		}
		req.CategoryID = &categoryID
	}

	if v := query.Get("search"); v != "" {
		req.Search = &v
	}

	return req, nil
}

package cache

import (
	"fmt"
	"strconv"
	"time"
)

const (
	KeyCategories = "categories:all"

	// absent filters are spelled out so a missing filter never shares a key
	// with any present value
	absent = "none"
)

const (
	ProductsTTL   = 300 * time.Second
	ProductTTL    = 600 * time.Second
	CategoriesTTL = 1800 * time.Second
)

// ProductsKey derives the listing key from every query parameter. Search is
// quoted, which keeps a literal search for "none" apart from no search.
func ProductsKey(skip, limit int, categoryID *int64, search *string) string {
	cat := absent
	if categoryID != nil {
		cat = strconv.FormatInt(*categoryID, 10)
	}
	term := absent
	if search != nil {
		term = strconv.Quote(*search)
	}
	return fmt.Sprintf("products:skip=%d:limit=%d:cat=%s:search=%s", skip, limit, cat, term)
}

func ProductKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}

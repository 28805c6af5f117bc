package errors

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrCacheUnavailable  = errors.New("cache unavailable")
	ErrInvalidProductID  = errors.New("invalid product id")
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)

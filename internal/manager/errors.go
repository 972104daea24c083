package manager

import (
	"errors"
	"fmt"
)

// ErrCatalogQueryFailed matches every *QueryError.
var ErrCatalogQueryFailed = errors.New("catalog query failed")

// QueryError wraps a failed data operation. Err keeps the cause, so
// errors.Is also matches integration.ErrUpstreamUnavailable and
// normalizer.ErrNormalizationFailed.
type QueryError struct {
	Op    string
	ID    int
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	switch {
	case e.ID != 0:
		return fmt.Sprintf("%s: %s(id=%d): %v", ErrCatalogQueryFailed, e.Op, e.ID, e.Err)
	case e.Query != "":
		return fmt.Sprintf("%s: %s(%s): %v", ErrCatalogQueryFailed, e.Op, e.Query, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", ErrCatalogQueryFailed, e.Op, e.Err)
	}
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool { return target == ErrCatalogQueryFailed }

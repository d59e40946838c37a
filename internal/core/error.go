package core

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrDuplicateProductID = errors.New("duplicate product id")
	ErrInvalidProduct     = errors.New("invalid product")
)

// RouteError ties a build failure to the route that produced it.
type RouteError struct {
	Path string
	Op   string
	Err  error
}

func (e *RouteError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

// ErrorData feeds the error page template.
type ErrorData struct {
	Message string
	IsDev   bool
}

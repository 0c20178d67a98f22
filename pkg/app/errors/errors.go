// Package errors maps service failures onto client-facing categories and
// HTTP status codes.
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a ServiceError.
type Category int

const (
	// CategoryGeneralError is an unexpected failure inside the service.
	CategoryGeneralError Category = iota
	// CategoryDataError is invalid client input: a malformed address, a
	// non-positive amount, an unsupported chain.
	CategoryDataError
	// CategoryResourceNotFound means the requested vault, plan or flow does not exist.
	CategoryResourceNotFound
	// CategoryDataConflict means the request clashes with current state,
	// such as retrying a flow that has not failed.
	CategoryDataConflict
	// CategoryDependencyFailure means an RPC node or the price source failed.
	CategoryDependencyFailure
)

var categoryInfo = map[Category]struct {
	name   string
	status int
}{
	CategoryGeneralError:      {"CategoryGeneralError", http.StatusInternalServerError},
	CategoryDataError:         {"CategoryDataError", http.StatusBadRequest},
	CategoryResourceNotFound:  {"CategoryResourceNotFound", http.StatusNotFound},
	CategoryDataConflict:      {"CategoryDataConflict", http.StatusConflict},
	CategoryDependencyFailure: {"CategoryDependencyFailure", http.StatusBadGateway},
}

func (c Category) String() string {
	if info, ok := categoryInfo[c]; ok {
		return info.name
	}
	return categoryInfo[CategoryGeneralError].name
}

// ServiceError carries a message safe to return to clients next to the
// underlying cause, which is only logged.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying cause.
func (err ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status for the error's category.
func (err ServiceError) StatusCode() int {
	if info, ok := categoryInfo[err.Category]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Is reports whether err wraps a ServiceError of category cat.
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

func newError(cat Category, err error, message, fallback string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error".
func GeneralError(err error) error {
	return newError(CategoryGeneralError, err, "Internal Server Error", "internal server error")
}

// BadRequestError reports invalid client input.
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message, "bad request: "+message)
}

// ResourceNotFoundError reports a missing resource.
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message, "resource not found: "+message)
}

// ConflictError reports a request that conflicts with current state.
func ConflictError(err error, message string) error {
	return newError(CategoryDataConflict, err, message, "conflict: "+message)
}

// DependencyError reports a failing upstream such as an RPC node or the
// price oracle.
func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message, "dependency failure: "+message)
}

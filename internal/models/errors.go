package models

import (
	"errors"
	"fmt"
)

// Domain errors raised by the order engine and the report service. Handlers
// map these to HTTP statuses with errors.Is / errors.As; services wrap them
// with %w so the chain survives.
var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
)

// ValidationError reports a malformed field in a request. For order items,
// Index is the 1-based position of the offending entry (0 for non-item fields).
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("item %d: field %q %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

// BookNotFoundError reports a book reference that resolved to nothing.
// Index is the 1-based order item position when raised by the order engine.
type BookNotFoundError struct {
	Ref   string
	Index int
}

func (e *BookNotFoundError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("item %d: book %s not found", e.Index, e.Ref)
	}
	return fmt.Sprintf("book %s not found", e.Ref)
}

// InsufficientStockError reports a requested quantity that exceeds the
// available stock, as read inside the order transaction.
type InsufficientStockError struct {
	BookID    uint
	BookName  string
	Available int
	Requested int
	Index     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("item %d: insufficient stock for %q (id %d): requested %d, available %d",
		e.Index, e.BookName, e.BookID, e.Requested, e.Available)
}

// Package repository defines sentinel error values shared across the
// individual repositories. Handlers compare against these to pick the
// HTTP status for a failure: ErrForbidden maps to 403, ErrNotFound to
// 404, ErrConflict to 409 and ErrInvalidTransition to 400/409 depending
// on the operation.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// existing dependent records, such as deleting a car that still has
// open orders, or favoriting a car twice.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email address is
// already registered, regardless of role.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidTransition is returned when a status change violates the
// listing/order state machine.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotPurchasable is returned when an order is created against a car
// whose status is not `active`.
var ErrNotPurchasable = errors.New("car is not available for purchase")

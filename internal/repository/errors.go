// Package repository holds the data-access collaborators: the user store
// (accounts and favorites) and the restaurant catalog.  Sentinel errors
// defined here let handlers map failures to status codes without knowing
// which backend is in use.
package repository

import "errors"

// ErrUserNotFound is returned when no account matches an id or email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned by InsertUser when the email is already taken.
// Handlers translate it into a 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrRestaurantNotFound is returned by the catalog for unknown ids.
// Handlers translate it into a 404 response.
var ErrRestaurantNotFound = errors.New("restaurant not found")

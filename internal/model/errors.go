package model

import "errors"

// ErrUserNotFound is the store-agnostic "no such user" signal. User stores
// may return it in place of an apierror value; the auth service treats both
// the same.
var ErrUserNotFound = errors.New("user not found")

package models

import "errors"

// ErrNotFound is returned by every store when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

package domain

import "errors"

// ErrNotFound indicates no saved prompt has the requested id.
var ErrNotFound = errors.New("prompt not found")

// ErrStoreFailure indicates the underlying blob store rejected a read or write.
var ErrStoreFailure = errors.New("prompt store failure")

// ErrEmptyPrompt indicates the form produced no prompt text.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ErrUnknownField indicates a field name that is not part of a shot.
var ErrUnknownField = errors.New("unknown field")

// ErrInvalidActionIndex indicates an action row position out of range.
var ErrInvalidActionIndex = errors.New("invalid action row")

// ErrInvalidTitle indicates a title that cannot be stored.
var ErrInvalidTitle = errors.New("invalid title")

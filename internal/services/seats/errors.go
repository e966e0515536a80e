package seatsvc

import (
	"errors"

	"github.com/rzbill/usher/internal/storage"
)

var (
	// ErrOutOfRange reports zone or row coordinates outside the configured
	// inventory. Raised before any store access.
	ErrOutOfRange = errors.New("zone or row out of range")

	// ErrInvalidRange reports a seat count or position outside the row
	// bounds. Raised before any store access.
	ErrInvalidRange = errors.New("seat range out of bounds")

	// ErrStoreUnavailable reports that the backing store could not complete
	// an operation. It is the storage sentinel surfaced unmodified; the
	// engine never retries, leaving retry policy to the caller.
	ErrStoreUnavailable = storage.ErrUnavailable
)

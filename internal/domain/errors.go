package domain

import "errors"

// Sentinel errors for catalog operations. Not-found conditions are NOT
// errors in this layer (lookups use comma-ok returns); these cover
// genuine failures while loading the source collection.
var (
	// ErrSourceUnavailable indicates the catalog source could not be opened or read
	ErrSourceUnavailable = errors.New("catalog source is unavailable")

	// ErrInvalidGame indicates a source record violated a catalog invariant
	ErrInvalidGame = errors.New("invalid game record")

	// ErrDuplicateID indicates two source records share an identifier
	ErrDuplicateID = errors.New("duplicate game identifier")
)

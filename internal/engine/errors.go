package engine

import "errors"

// Construction errors. Each is wrapped with context; match with errors.Is.
var (
	ErrInvalidBounds      = errors.New("invalid bounds")
	ErrInvalidName        = errors.New("invalid name")
	ErrDisconnectedCity   = errors.New("city has no neighbors")
	ErrDisconnectedRegion = errors.New("territories do not form a single landmass")
	ErrOverlap            = errors.New("territories overlap")
	ErrDuplicateName      = errors.New("duplicate territory name")
	ErrNoTerritories      = errors.New("no territories")
	ErrInvalidParams      = errors.New("invalid simulation parameters")
)

// ErrNoProgress is returned by a run that can never complete.
var ErrNoProgress = errors.New("diffusion stalled")

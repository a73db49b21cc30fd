package core

import (
	"errors"
)

var (
	// ErrAssetNotFound is returned when a handle cannot be resolved to a loaded asset.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInvalidAspectRatio is returned when a stacked sheet's height is not a
	// whole multiple of its width.
	ErrInvalidAspectRatio = errors.New("sheet height is not a multiple of its width")
	// ErrAlreadyLayered is returned when an image already has more than one array layer.
	ErrAlreadyLayered = errors.New("image already has more than one array layer")
	// ErrPointerInputUnavailable means no pointer device delivered input this frame.
	ErrPointerInputUnavailable = errors.New("pointer input unavailable")
	ErrUnknown                 = errors.New("unknown")
)

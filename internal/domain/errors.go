package domain

import "errors"

var (
	ErrInvalidTileCount = errors.New("invalid tile count")
	ErrInvalidRect      = errors.New("invalid rect")
	ErrUnknownTile      = errors.New("unknown tile")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrNoCategory       = errors.New("no category selected")
	ErrTileCap          = errors.New("tile cap reached")
	ErrTileFloor        = errors.New("cannot remove the last tile")
	ErrWrongMode        = errors.New("intent not allowed in current mode")
	ErrNotArmed         = errors.New("tile not armed for assignment")
	ErrModeUnchanged    = errors.New("already in that mode")
)

package app

import "errors"

// ErrJournalUnavailable and related errors describe service-level failures.
var (
	ErrJournalUnavailable = errors.New("journal unavailable")
	ErrInvalidLimit       = errors.New("invalid activity limit")
)

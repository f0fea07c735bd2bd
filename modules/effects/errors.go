package effects

import "errors"

var (
	// ErrAlreadyAnimated is returned when a counter group is started twice.
	ErrAlreadyAnimated = errors.New("counters already animated")

	ErrUnknownMenuEvent = errors.New("unknown menu event")
)

package tracker

import "errors"

// Error kinds surfaced by the core.  Callers test with errors.Is;
// most values arrive wrapped with additional context.
var (
	// Validation, detected before the radio is touched.
	ErrBadCallsign   = errors.New("bad callsign")
	ErrInfoTooLong   = errors.New("information field too long")
	ErrTooManyHops   = errors.New("too many digipeater hops")
	ErrBadCoordinate = errors.New("coordinate out of range")

	// State.
	ErrBusy = errors.New("transmission already in progress")

	// Transport.  The session is aborted and PTT forced off.
	ErrAudioFault = errors.New("audio sink fault")

	// Configuration, raised once at load.
	ErrBadConfig = errors.New("bad configuration")
)

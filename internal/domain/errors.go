package domain

import "errors"

// Hard usage errors, surfaced to the caller. Everything else in this
// system (storage write failures, model call failures, corrupt
// snapshots) is recovered locally and only logged.
var (
	// ErrInvalidRole means a Message was constructed with a role other
	// than system, user or assistant.
	ErrInvalidRole = errors.New("invalid role: must be system, user or assistant")

	// ErrMalformedSeed means a history reset was attempted with seed
	// messages that are not well formed; storage is left untouched.
	ErrMalformedSeed = errors.New("malformed seed: initial messages must be well-formed")
)

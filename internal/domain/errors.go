package domain

import "errors"

var (
	// ErrSessionActive is returned by Start on a handle that is not empty.
	ErrSessionActive = errors.New("session already started")
	// ErrSessionNotStarted is returned when an operation needs a controlled session.
	ErrSessionNotStarted = errors.New("session not started")
	// ErrNoSession is returned when the calling process is not part of a login session.
	ErrNoSession = errors.New("process is not part of a login session")
	// ErrNoSeat is returned when the session is not attached to a seat.
	ErrNoSeat = errors.New("session has no seat")
	// ErrInvalidPath is returned when a session id yields no valid object path.
	ErrInvalidPath = errors.New("invalid session object path")
)

package types

// SessionID is the logind identifier of a login session, e.g. "2" or "c1".
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// SeatID is the logind identifier of a seat, e.g. "seat0".
type SeatID string

// String returns the string form of the seat identifier.
func (id SeatID) String() string { return string(id) }

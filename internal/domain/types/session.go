package types

import "github.com/godbus/dbus/v5"

// SessionState is a step of the session start sequence.
type SessionState int

const (
	StateEmpty SessionState = iota
	StateIdentified
	StatePathed
	StateConnected
	StateActivated
	StateControlled
)

var stateNames = [...]string{
	StateEmpty:      "empty",
	StateIdentified: "identified",
	StatePathed:     "pathed",
	StateConnected:  "connected",
	StateActivated:  "activated",
	StateControlled: "controlled",
}

func (s SessionState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// SessionHandle is a snapshot of an established session. Conn is not
// included; the session service keeps sole ownership of it.
type SessionHandle struct {
	ID    SessionID
	Seat  SeatID
	Path  dbus.ObjectPath
	State SessionState
}

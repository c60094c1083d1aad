package login1

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"seatbroker/internal/domain"
)

const (
	Destination = "org.freedesktop.login1"

	SessionInterface = "org.freedesktop.login1.Session"
	SeatInterface    = "org.freedesktop.login1.Seat"

	sessionPathPrefix = "/org/freedesktop/login1/session"
	seatPathPrefix    = "/org/freedesktop/login1/seat"
)

// Session methods.
const (
	MethodActivate            = "Activate"
	MethodTakeControl         = "TakeControl"
	MethodReleaseControl      = "ReleaseControl"
	MethodTakeDevice          = "TakeDevice"
	MethodReleaseDevice       = "ReleaseDevice"
	MethodPauseDeviceComplete = "PauseDeviceComplete"
)

// Seat methods.
const (
	MethodSwitchTo = "SwitchTo"
)

// Target names one interface of one object on one bus peer.
type Target struct {
	Destination string
	Path        dbus.ObjectPath
	Interface   string
}

// SessionTarget addresses the Session interface of the object at path.
func SessionTarget(path dbus.ObjectPath) Target {
	return Target{Destination: Destination, Path: path, Interface: SessionInterface}
}

// SeatTarget addresses the Seat interface of the given seat.
func SeatTarget(seat domain.SeatID) (Target, error) {
	path, err := objectPath(seatPathPrefix, string(seat))
	if err != nil {
		return Target{}, err
	}
	return Target{Destination: Destination, Path: path, Interface: SeatInterface}, nil
}

// SessionPath returns the object path of the session with the given id.
// The id is escaped as a bus path element the way logind encodes it, not
// appended verbatim, so an id such as "2" maps to ".../session/_32" rather
// than ".../session/2". Ids made of letters and inner digits, like "c1",
// are unchanged.
func SessionPath(id domain.SessionID) (dbus.ObjectPath, error) {
	return objectPath(sessionPathPrefix, string(id))
}

func objectPath(prefix, id string) (dbus.ObjectPath, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty identifier under %s", domain.ErrInvalidPath, prefix)
	}
	path := dbus.ObjectPath(prefix + "/" + escapePathElement(id))
	if !path.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPath, path)
	}
	return path, nil
}

// escapePathElement encodes s as a single object path element: every byte
// outside [A-Za-z0-9], and a leading digit, becomes _xx (lower-case hex).
func escapePathElement(s string) string {
	const hex = "0123456789abcdef"
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		alpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if alpha || (digit && i > 0) {
			out = append(out, c)
			continue
		}
		out = append(out, '_', hex[c>>4], hex[c&0xf])
	}
	return string(out)
}

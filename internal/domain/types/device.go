package types

import "fmt"

// DeviceNumber is the (major, minor) pair identifying a kernel device node.
// logind addresses devices by number rather than by path.
type DeviceNumber struct {
	Major uint32
	Minor uint32
}

// String formats the number as "major:minor".
func (n DeviceNumber) String() string { return fmt.Sprintf("%d:%d", n.Major, n.Minor) }

// Device is the result of a successful device take. It is never stored by
// the broker; tracking outstanding devices is up to the caller.
type Device struct {
	Number DeviceNumber
	// FD is owned by the caller and is close-on-exec. -1 when the take failed.
	FD int
	// Paused reports that the device starts revoked, e.g. during a VT switch.
	Paused bool
}

// Package bus provides a godbus implementation of the domain.BusConn and
// domain.BusDialer interfaces used by seatbroker.
//
// Each Dial opens a private connection (never the shared process-wide system
// bus connection) so the session service can own and close it. Connections
// must support UNIX file descriptor passing, since device grants arrive as
// descriptors.
//
// Replies keep the raw message body. Descriptors received with a reply are
// owned by the reply and closed by Release; callers that need one past that
// point duplicate it first.
package bus

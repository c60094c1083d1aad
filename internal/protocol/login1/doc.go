// Package login1 speaks the systemd-logind D-Bus protocol used to manage a
// login session and the devices of its seat.
//
// # Overview
//
// logind exposes one object per session under
// /org/freedesktop/login1/session/<id> and one per seat under
// /org/freedesktop/login1/seat/<id>. Identifiers are escaped into object
// path elements the same way sd_bus_path_encode does it.
//
// # Calls
//
// Call issues a single blocking method call and hands the reply to a decode
// function. The reply is released before Call returns, on success, on decode
// failure and on call failure alike. Anything decoded from the reply that
// aliases its resources (notably UNIX file descriptors) must be copied out
// inside decode.
//
// # Errors
//
// Failures are returned as errors of the form
// "<interface>.<method> on <path>: <diagnostic>". Remote errors carry the
// D-Bus error name; the underlying dbus.Error stays reachable via errors.As.
package login1

// Package device takes and releases device nodes through a started logind
// session.
//
// Take stats a device path, asks logind for it with TakeDevice and returns a
// close-on-exec duplicate of the granted descriptor together with the paused
// flag. The descriptor carried by the reply dies with the reply, so the
// duplicate is made before the reply is released. If the grant succeeded but
// the descriptor cannot be kept, the device is handed back with a best-effort
// ReleaseDevice.
//
// Release and AckPause are best effort: failures are logged, never returned.
// Release does not close the caller's descriptor.
package device

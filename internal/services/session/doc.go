// Package session establishes and tears down control over a logind session.
//
// Start walks the handle through
//
//	empty → identified → pathed → connected → activated → controlled
//
// one step at a time. Every step has a rollback; when a step fails, the
// rollbacks of all completed steps run in reverse and the handle is left
// empty. Nothing is retried.
//
// End releases control (best effort), closes the bus connection and clears
// the handle. The Service owns its bus connection exclusively. It does no
// locking: callers sharing one Service across goroutines serialize access.
package session

// Package store provides read access to the session manager's runtime state.
//
// It contains the concrete implementation of domain.RuntimeStore backed by
// the files systemd-logind and the kernel expose:
//   - the XDG_SESSION_ID environment variable exported by pam_systemd
//   - /proc/self/cgroup, whose unit path names the session scope
//   - /run/systemd/sessions/<id>, logind's KEY=VALUE session record
//
// Both roots are configurable so tests and containers can point them elsewhere.
package store

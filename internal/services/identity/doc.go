// Package identity resolves which login session and seat the calling
// process belongs to.
//
// The session id comes from XDG_SESSION_ID when pam_systemd exported it,
// otherwise from the session scope in the process's cgroup path. The seat is
// read from logind's record for that session via the domain.RuntimeStore.
package identity

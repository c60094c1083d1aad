package bus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func fdOpen(fd int) bool {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}

func TestReplyStoreDecodesBody(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_CLOEXEC))
	defer unix.Close(p[1])

	r := &Reply{body: []any{dbus.UnixFD(p[0]), true}}
	var fd dbus.UnixFD
	var paused bool
	require.NoError(t, r.Store(&fd, &paused))

	assert.Equal(t, p[0], int(fd))
	assert.True(t, paused)
	r.Release()
}

func TestReplyReleaseClosesDescriptors(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_CLOEXEC))

	r := &Reply{body: []any{dbus.UnixFD(p[0]), []any{dbus.UnixFD(p[1])}, "x"}}
	r.Release()

	assert.False(t, fdOpen(p[0]))
	assert.False(t, fdOpen(p[1]))

	// Second release must not touch descriptor numbers the process may
	// have reused in the meantime.
	var q [2]int
	require.NoError(t, unix.Pipe2(q[:], unix.O_CLOEXEC))
	defer unix.Close(q[0])
	defer unix.Close(q[1])
	r.Release()
	assert.True(t, fdOpen(q[0]))
	assert.True(t, fdOpen(q[1]))
}

func TestReplyStoreShapeMismatch(t *testing.T) {
	r := &Reply{body: []any{"not-an-fd"}}
	var fd dbus.UnixFD
	var paused bool
	assert.Error(t, r.Store(&fd, &paused))
}

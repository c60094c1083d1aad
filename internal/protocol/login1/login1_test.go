package login1_test

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatbroker/internal/bus/bustest"
	"seatbroker/internal/domain"
	"seatbroker/internal/protocol/login1"
)

func TestSessionPath(t *testing.T) {
	cases := []struct {
		id   domain.SessionID
		want dbus.ObjectPath
	}{
		{"c1", "/org/freedesktop/login1/session/c1"},
		{"2", "/org/freedesktop/login1/session/_32"},
		{"12", "/org/freedesktop/login1/session/_312"},
		{"a-b", "/org/freedesktop/login1/session/a_2db"},
	}
	for _, tc := range cases {
		got, err := login1.SessionPath(tc.id)
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.want, got, tc.id)
		assert.True(t, got.IsValid())
	}
}

func TestSessionPathEmpty(t *testing.T) {
	_, err := login1.SessionPath("")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestSeatTarget(t *testing.T) {
	target, err := login1.SeatTarget("seat0")
	require.NoError(t, err)
	assert.Equal(t, dbus.ObjectPath("/org/freedesktop/login1/seat/seat0"), target.Path)
	assert.Equal(t, login1.SeatInterface, target.Interface)
	assert.Equal(t, login1.Destination, target.Destination)
}

var target = login1.SessionTarget("/org/freedesktop/login1/session/c1")

func TestCallReleasesReplyOnSuccess(t *testing.T) {
	conn := bustest.NewConn()
	conn.Reply("Echo", "hello")

	var got string
	err := login1.Call(context.Background(), conn, target, "Echo", []any{"hello"}, func(r domain.Reply) error {
		return r.Store(&got)
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	require.Len(t, conn.Calls, 1)
	call := conn.Calls[0]
	assert.Equal(t, login1.Destination, call.Destination)
	assert.Equal(t, login1.SessionInterface, call.Interface)
	assert.Equal(t, []any{"hello"}, call.Args)
	assert.Zero(t, conn.Unreleased())
}

func TestCallReleasesReplyOnRemoteError(t *testing.T) {
	conn := bustest.NewConn()
	conn.Fail(login1.MethodTakeControl, dbus.Error{
		Name: "org.freedesktop.login1.DeviceIsTaken",
		Body: []any{"Session already has a controller"},
	})

	decoded := false
	err := login1.Call(context.Background(), conn, target, login1.MethodTakeControl, []any{false},
		func(domain.Reply) error { decoded = true; return nil })
	require.Error(t, err)
	assert.False(t, decoded)
	assert.Contains(t, err.Error(), "org.freedesktop.login1.Session.TakeControl on /org/freedesktop/login1/session/c1")
	assert.Contains(t, err.Error(), "org.freedesktop.login1.DeviceIsTaken: Session already has a controller")

	var derr dbus.Error
	assert.True(t, errors.As(err, &derr))
	assert.Zero(t, conn.Unreleased())
}

func TestCallReleasesReplyOnDecodeError(t *testing.T) {
	conn := bustest.NewConn()
	conn.Reply(login1.MethodTakeDevice, "wrong", "shape")

	err := login1.Call(context.Background(), conn, target, login1.MethodTakeDevice, []any{uint32(1), uint32(3)},
		func(r domain.Reply) error {
			var fd dbus.UnixFD
			var paused bool
			return r.Store(&fd, &paused)
		})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding reply")
	assert.Zero(t, conn.Unreleased())
}

func TestInvokeHonoursCancelledContext(t *testing.T) {
	conn := bustest.NewConn()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := login1.Invoke(ctx, conn, target, login1.MethodActivate)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, conn.Unreleased())
}

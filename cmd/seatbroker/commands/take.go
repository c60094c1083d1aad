package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"seatbroker/internal/domain"
)

// takeCmd takes each device in turn, reports it, then hands every device back.
func takeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take <device-path>...",
		Short: "Take device nodes through the session and release them again",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, _ domain.SessionHandle) error {
				var taken []domain.Device
				var errs []error
				for _, path := range args {
					dev, err := appCtx.Devices.Take(ctx, path)
					if err != nil {
						errs = append(errs, fmt.Errorf("taking %s: %w", path, err))
						continue
					}
					taken = append(taken, dev)
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s fd=%d paused=%t\n", path, dev.Number, dev.FD, dev.Paused)
				}
				for _, dev := range taken {
					appCtx.Devices.Release(ctx, dev.FD)
					_ = unix.Close(dev.FD)
				}
				return errors.Join(errs...)
			})
		},
	}
	return cmd
}

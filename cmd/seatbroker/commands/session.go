package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"seatbroker/internal/domain"
)

// withSession starts the session, runs fn and ends the session, whatever fn
// returned.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, h domain.SessionHandle) error) error {
	ctx, cancel := appCtx.Context(cmd.Context())
	defer cancel()

	h, err := appCtx.Sessions.Start(ctx)
	if err != nil {
		return err
	}
	defer func() {
		endCtx, endCancel := appCtx.Context(context.WithoutCancel(cmd.Context()))
		defer endCancel()
		appCtx.Sessions.End(endCtx)
	}()
	return fn(ctx, h)
}

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Take control of the login session until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(_ context.Context, h domain.SessionHandle) error {
				fmt.Fprintf(cmd.OutOrStdout(), "session=%s seat=%s path=%s state=%s\n", h.ID, h.Seat, h.Path, h.State)

				// Holding is unbounded; only the start and end calls are timed.
				sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				<-sigCtx.Done()
				return nil
			})
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"seatbroker/internal/protocol/login1"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the login session and seat of this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := appCtx.Identity.LookupSession(ctx)
			if err != nil {
				return err
			}
			seat, err := appCtx.Identity.LookupSeat(ctx, id)
			if err != nil {
				return err
			}
			path, err := login1.SessionPath(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session=%s seat=%s path=%s\n", id, seat, path)
			return nil
		},
	}
}

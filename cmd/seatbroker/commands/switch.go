package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"seatbroker/internal/domain"
)

func switchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <vt>",
		Short: "Switch the session's seat to another virtual terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vt, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || vt == 0 {
				return fmt.Errorf("invalid vt %q", args[0])
			}
			return withSession(cmd, func(ctx context.Context, _ domain.SessionHandle) error {
				return appCtx.Sessions.SwitchTo(ctx, uint32(vt))
			})
		},
	}
}

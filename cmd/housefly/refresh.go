package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/housefly/internal/cli"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/spf13/cobra"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Ask the scoring service to recompute every score",
		Long: `Trigger the scoring service's admin refresh, which re-ingests source data
and recalculates all neighborhood scores. This can take a while.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := handler.HandleInterrupts(cmd.Context(), "Refresh")
			defer stop()

			var status *model.RefreshStatus
			err = cli.WithSpinner(ctx, cmd.ErrOrStderr(), "Refreshing scores...", func(ctx context.Context) error {
				var err error
				status, err = client.TriggerRefresh(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}

			msg := status.Message
			if msg == "" {
				msg = "Scores refreshed"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return err
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/housefly/internal/cli"
	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/Veraticus/housefly/internal/scoring"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func neighborhoodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighborhoods",
		Short: "List neighborhoods and their current scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}

			var (
				neighborhoods []model.Neighborhood
				scores        []model.Score
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				neighborhoods, err = client.ListNeighborhoods(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				scores, err = client.ListScores(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("failed to load neighborhoods: %w", err)
			}

			return cli.PrintNeighborhoods(cmd.OutOrStdout(), neighborhoods, model.ScoresByNeighborhood(scores))
		},
	}
}

func neighborhoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neighborhood <id>",
		Short: "Show one neighborhood's score, breakdown and projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return common.NewUserError(fmt.Sprintf("invalid neighborhood id %q", args[0]), err)
			}
			years, _ := cmd.Flags().GetInt("years")
			horizon, err := model.ParseHorizon(years)
			if err != nil {
				return common.NewUserError("years must be 1, 3 or 5", err)
			}

			_, client, err := loadClient()
			if err != nil {
				return err
			}
			return showNeighborhood(cmd, client, id, horizon)
		},
	}

	cmd.Flags().Int("years", int(model.DefaultHorizon), "projection horizon hint (1, 3 or 5)")
	return cmd
}

func showNeighborhood(cmd *cobra.Command, client *scoring.Client, id int, horizon model.Horizon) error {
	ctx := cmd.Context()

	n, err := client.GetNeighborhood(ctx, id)
	var svcErr *common.ServiceError
	if errors.As(err, &svcErr) && svcErr.NotFound() {
		return common.NewUserError(fmt.Sprintf("neighborhood %d not found", id), err)
	}
	if err != nil {
		return fmt.Errorf("failed to get neighborhood %d: %w", id, err)
	}

	var (
		score      *model.Score
		breakdown  *model.ScoreBreakdown
		projection *model.ScoreProjection
		g          errgroup.Group
	)
	g.Go(func() error {
		var err error
		score, err = client.GetNeighborhoodScore(ctx, id)
		if err != nil {
			common.LogError(err, "current score unavailable", common.Fields{"neighborhood_id": id})
		}
		return nil
	})
	g.Go(func() error {
		var err error
		breakdown, err = client.GetBreakdown(ctx, id)
		if err != nil {
			common.LogError(err, "breakdown unavailable", common.Fields{"neighborhood_id": id})
		}
		return nil
	})
	g.Go(func() error {
		var err error
		projection, err = client.GetProjection(ctx, id, horizon)
		if err != nil {
			common.LogError(err, "projection unavailable", common.Fields{"neighborhood_id": id})
		}
		return nil
	})
	_ = g.Wait()

	return cli.PrintNeighborhoodDetail(cmd.OutOrStdout(), *n, score, breakdown, projection)
}

package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/housefly/internal/cli"
	"github.com/Veraticus/housefly/internal/geo"
	"github.com/Veraticus/housefly/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func geojsonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geojson",
		Short: "Export the styled map as a GeoJSON FeatureCollection",
		Long: `Export every neighborhood as a GeoJSON feature carrying its score and
the fill and border style the map draws it with.`,
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
				return fmt.Errorf("failed to load map data: %w", err)
			}

			fc := geo.BuildFeatureCollection(neighborhoods, scores)
			data, err := geo.MarshalGeoJSON(fc)
			if err != nil {
				return fmt.Errorf("failed to encode GeoJSON: %w", err)
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" || out == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(out, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf(
				"Wrote %d neighborhoods (%d with boundaries) to %s", fc.Len(), fc.Drawable(), out)))
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	return cmd
}

package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"geoquiz-service/internal/catalog"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
	"github.com/spf13/cobra"
)

// NewDMSCmd prints decimal degrees in degrees-minutes-seconds notation.
func NewDMSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dms <decimal>...",
		Short: "Convert decimal degrees to DMS",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("%q is not decimal degrees", arg)
				}
				if err := geo.ValidateDegrees(v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, geo.FormatDMS(v))
			}
			return nil
		},
	}
}

// NewDistanceCmd prints the great-circle distance and round score between two points.
func NewDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <lon,lat> <lon,lat>",
		Short: "Great-circle distance between two points",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := geo.ParsePoint(args[0])
			if err != nil {
				return err
			}
			to, err := geo.ParsePoint(args[1])
			if err != nil {
				return err
			}
			m := geo.DistanceMeters(from, to)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d points)\n", geo.FormatDistance(m), geo.Score(m, geo.WorldMaxErrorDistance))
			return nil
		},
	}
}

// NewLandmarksCmd lists the built-in catalogue for a tier.
func NewLandmarksCmd() *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "landmarks",
		Short: "List the built-in landmarks of a difficulty tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			if !d.Curated() {
				fmt.Fprintln(cmd.OutOrStdout(), "hard targets are random points anywhere on the globe")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, l := range catalog.Landmarks(d) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, l.Country, l.Point)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyEasy), "easy, normal or hard")
	return cmd
}

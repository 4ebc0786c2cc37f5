package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/geo"
	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/spf13/cobra"
)

var coordsCmd = &cobra.Command{
	Use:   "coords",
	Short: "Manage region coordinates used by region-centric maps",
}

var coordsSetCmd = &cobra.Command{
	Use:   "set <country> <region> <lat> <lon>",
	Short: "Store the coordinate of a region",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[2], 64)
		if err != nil || lat < -90 || lat > 90 {
			return fmt.Errorf("invalid latitude: %s", args[2])
		}
		lon, err := strconv.ParseFloat(args[3], 64)
		if err != nil || lon < -180 || lon > 180 {
			return fmt.Errorf("invalid longitude: %s", args[3])
		}
		path, err := utils.ExpandHome(cfg.CoordinatesFile)
		if err != nil {
			return err
		}
		store, err := geo.OpenFileStore(path)
		if err != nil {
			return err
		}
		country := strings.ToUpper(strings.TrimSpace(args[0]))
		if err := store.Put(country, strings.TrimSpace(args[1]), geo.Coordinate{Lat: lat, Lon: lon}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s / %s (%d coordinates)\n", country, args[1], store.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coordsCmd)
	coordsCmd.AddCommand(coordsSetCmd)
}

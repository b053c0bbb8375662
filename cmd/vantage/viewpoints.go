package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taigrr/vantage/pkg/tour"
	"github.com/taigrr/vantage/pkg/viewpoint"
)

var viewpointsCmd = &cobra.Command{
	Use:   "viewpoints",
	Short: "List the viewpoints of the tour",
	Long:  "Print every viewpoint of the catalog in tour order with its position and look-at target.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := viewpoint.Default()
		if catalogPath != "" {
			cfg, err := viewpoint.LoadConfig(catalogPath)
			if err != nil {
				return err
			}
			if cat, err = cfg.Catalog(); err != nil {
				return err
			}
		}
		printViewpoints(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printViewpoints(w io.Writer, cat *viewpoint.Catalog) {
	fmt.Fprintf(w, "%-3s %-16s %-28s %s\n", "#", "NAME", "POSITION", "LOOK AT")
	for i, vp := range cat.All() {
		f := tour.FieldsFromPose(vp.Pose)
		pos := fmt.Sprintf("(%s, %s, %s)", f[tour.FieldPosX], f[tour.FieldPosY], f[tour.FieldPosZ])
		look := fmt.Sprintf("(%s, %s, %s)", f[tour.FieldLookX], f[tour.FieldLookY], f[tour.FieldLookZ])
		fmt.Fprintf(w, "%-3d %-16s %-28s %s\n", i+1, vp.Name, pos, look)
	}
}

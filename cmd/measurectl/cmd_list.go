package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func typologiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "typologies",
		Short: "List the project's typology catalog with availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("typologies: %w", err)
			}
			typs := s.Typologies()
			if len(typs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no data")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tWIDTH\tHEIGHT\tTOTAL\tASSIGNED\tAVAILABLE")
			for _, t := range typs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
					t.Code, orDash(t.NominalWidth), orDash(t.NominalHeight),
					t.TotalQuantity, t.AssignedCount, t.AvailableCount())
			}
			return tw.Flush()
		},
	}
}

func locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the project's locations in floor/position order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("locations: %w", err)
			}
			locs := s.Locations()
			if len(locs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no data")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FLOOR\tPOSITION\tTYPOLOGY")
			for _, l := range locs {
				code := "-"
				if l.AssignedTypologyID != nil {
					if t, ok := s.Typology(*l.AssignedTypologyID); ok {
						code = t.Code
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Floor, l.Position, code)
			}
			return tw.Flush()
		},
	}
}

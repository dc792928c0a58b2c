package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/obra-measure/internal/workflow"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print measured locations by location and by typology",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			pid, err := resolveProject()
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			r := workflow.NewReporter(workflow.NewSession(pid, newClient(logger), logger))
			rep, err := r.Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			return writeReport(cmd.OutOrStdout(), rep)
		},
	}
}

func writeReport(w io.Writer, rep *workflow.Report) error {
	fmt.Fprintln(w, "By location:")
	if rep.LocationView() != workflow.ViewReady {
		fmt.Fprintln(w, "  no data")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  FLOOR\tPOSITION\tTYPOLOGY\tWIDTH\tHEIGHT\tNOTES")
		for _, r := range rep.ByLocation {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", r.Floor, r.Position, r.TypologyCode,
				orDash(r.MeasuredWidth), orDash(r.MeasuredHeight), r.Notes)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nBy typology:")
	if rep.TypologyView() != workflow.ViewReady {
		fmt.Fprintln(w, "  no data")
		return nil
	}
	for _, g := range rep.ByTypology {
		fmt.Fprintf(w, "  %s (nominal %s x %s)\n", g.Code, orDash(g.NominalWidth), orDash(g.NominalHeight))
		for _, r := range g.Locations {
			fmt.Fprintf(w, "    %s/%s  %s x %s\n", r.Floor, r.Position, orDash(r.MeasuredWidth), orDash(r.MeasuredHeight))
		}
	}
	return nil
}

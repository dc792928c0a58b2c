package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/obra-measure/internal/workflow"
)

func generateCmd() *cobra.Command {
	var (
		specs  []string
		counts []int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create locations from floor range specs",
		Example: `  measurectl generate --spec 1-3 --count 4
  measurectl generate --spec 1,2 --count 2 --spec 5-6 --count 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := pairRequests(specs, counts)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			logger := newLogger()
			s, err := openSession(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range workflow.NewGenerator(s, cfg.Generator.FloorPrefix, logger).Generate(cmd.Context(), reqs...) {
				if res.Err != nil {
					failed++
					fmt.Fprintf(out, "%s: failed: %v\n", res.Request.RangeSpec, res.Err)
					continue
				}
				fmt.Fprintf(out, "%s: created %s", res.Request.RangeSpec, listOrNone(res.Floors))
				if len(res.Skipped) > 0 {
					fmt.Fprintf(out, ", skipped existing %s", strings.Join(res.Skipped, ","))
				}
				fmt.Fprintln(out)
			}
			if failed > 0 {
				return fmt.Errorf("generate: %d of %d requests failed", failed, len(reqs))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&specs, "spec", nil, "floor range spec, e.g. 1-3 or 1,4-5 (repeatable)")
	cmd.Flags().IntSliceVar(&counts, "count", nil, "positions per floor for the matching --spec (repeatable)")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}

// pairRequests matches each --spec with its --count; a single count applies to every spec.
func pairRequests(specs []string, counts []int) ([]workflow.GenerateRequest, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --spec is required")
	}
	if len(counts) != 1 && len(counts) != len(specs) {
		return nil, fmt.Errorf("got %d --spec and %d --count values", len(specs), len(counts))
	}
	reqs := make([]workflow.GenerateRequest, len(specs))
	for i, spec := range specs {
		n := counts[0]
		if len(counts) > 1 {
			n = counts[i]
		}
		reqs[i] = workflow.GenerateRequest{RangeSpec: spec, CountPerFloor: n}
	}
	return reqs, nil
}

func listOrNone(floors []string) string {
	if len(floors) == 0 {
		return "nothing"
	}
	return strings.Join(floors, ",")
}

func deleteFloorCmd() *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "delete-floor FLOOR",
		Short: "Delete every location on a floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			s, err := openSession(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("delete-floor: %w", err)
			}
			var confirm workflow.Confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if assumeYes {
				confirm = workflow.ConfirmFunc(func(string) bool { return true })
			}
			if err := workflow.NewGenerator(s, cfg.Generator.FloorPrefix, logger).DeleteFloor(cmd.Context(), args[0], confirm); err != nil {
				return fmt.Errorf("delete-floor: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted floor %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirmer asks on out and accepts "y" or "yes" from in.
func promptConfirmer(in io.Reader, out io.Writer) workflow.Confirmer {
	rd := bufio.NewReader(in)
	return workflow.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := rd.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/obra-measure/internal/workflow"
)

func assignCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "assign --typology CODE FLOOR/POSITION...",
		Short: "Toggle a typology on locations and commit the result",
		Long: `assign selects a typology and toggles each location in turn: an unassigned
location gets the typology, a location already holding it is freed, and a
location holding another typology is left alone. The full set is then saved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			s, err := openSession(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("assign: %w", err)
			}
			typ, ok := s.TypologyByCode(code)
			if !ok {
				return fmt.Errorf("assign: unknown typology %q", code)
			}
			e := workflow.NewEngine(s, logger)
			if err := e.SelectTypology(typ.ID); err != nil {
				return fmt.Errorf("assign: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, addr := range args {
				floor, pos, err := splitAddress(addr)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", addr, err)
					continue
				}
				loc, ok := s.LocationAt(floor, pos)
				if !ok {
					fmt.Fprintf(out, "%s: no such location\n", addr)
					continue
				}
				outcome, err := e.Toggle(loc.ID)
				switch {
				case errors.Is(err, workflow.ErrCapacityExceeded):
					fmt.Fprintf(out, "%s: %v\n", addr, err)
				case err != nil:
					return fmt.Errorf("assign: %w", err)
				case outcome == workflow.Unchanged:
					fmt.Fprintf(out, "%s: unchanged, holds another typology\n", addr)
				default:
					fmt.Fprintf(out, "%s: %s\n", addr, outcome)
				}
			}

			if err := e.Save(cmd.Context()); err != nil {
				return fmt.Errorf("assign: %w", err)
			}
			if err := s.RefreshTypologies(cmd.Context()); err != nil {
				return fmt.Errorf("assign: %w", err)
			}
			fmt.Fprintf(out, "saved; %s available: %d\n", typ.Code, e.Available(typ.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&code, "typology", "t", "", "typology code to toggle")
	_ = cmd.MarkFlagRequired("typology")
	return cmd
}

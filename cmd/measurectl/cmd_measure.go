package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/obra-measure/internal/workflow"
)

// edit is one --set FLOOR/POSITION:field=value.
type edit struct {
	floor, position, field, value string
}

func parseEdit(raw string) (edit, error) {
	addr, assignment, ok := strings.Cut(raw, ":")
	if !ok {
		return edit{}, fmt.Errorf("invalid --set %q: want FLOOR/POSITION:field=value", raw)
	}
	floor, pos, err := splitAddress(addr)
	if err != nil {
		return edit{}, err
	}
	field, value, ok := strings.Cut(assignment, "=")
	if !ok || strings.TrimSpace(field) == "" {
		return edit{}, fmt.Errorf("invalid --set %q: want FLOOR/POSITION:field=value", raw)
	}
	return edit{floor: floor, position: pos, field: strings.TrimSpace(field), value: value}, nil
}

func measureCmd() *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "measure --set FLOOR/POSITION:field=value...",
		Short: "Record measured sizes and notes for assigned locations",
		Example: `  measurectl measure --set P1/1:measuredWidth=150 --set P1/1:measuredHeight=210,5
  measurectl measure --set "P2/3:notes=frame chipped"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			edits := make([]edit, 0, len(sets))
			for _, raw := range sets {
				e, err := parseEdit(raw)
				if err != nil {
					return fmt.Errorf("measure: %w", err)
				}
				edits = append(edits, e)
			}

			logger := newLogger()
			s, err := openSession(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("measure: %w", err)
			}
			c := workflow.NewCapture(s, logger)
			if err := c.Load(cmd.Context()); err != nil {
				return fmt.Errorf("measure: %w", err)
			}
			for _, e := range edits {
				i := c.Index(e.floor, e.position)
				if i < 0 {
					return fmt.Errorf("measure: %s/%s has no typology assigned", e.floor, e.position)
				}
				if err := c.SetField(i, e.field, e.value); err != nil {
					return fmt.Errorf("measure: %w", err)
				}
			}
			if err := c.Save(cmd.Context()); err != nil {
				return fmt.Errorf("measure: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d records\n", len(c.Records()))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "FLOOR/POSITION:field=value (repeatable)")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

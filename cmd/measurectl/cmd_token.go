package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/georgemunganga/obra-measure/internal/modules/auth"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [subject]",
		Short: "Issue a bearer token signed with auth.jwt_secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := "measurectl"
			if len(args) == 1 {
				subject = args[0]
			}
			svc, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
			if err != nil {
				return fmt.Errorf("token: %w", err)
			}
			tok, err := svc.Issue(subject)
			if err != nil {
				return fmt.Errorf("token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

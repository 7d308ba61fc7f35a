package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glidefront/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check that collaborators are reachable before starting the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.poolClient()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, client)
			results = append(results, preflight.QuerySources(cmd.Context(), cfg)...)

			colorize := shouldColorize(cmd.OutOrStdout())
			headers := []string{"Check", "Status", "Detail"}
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
				rows = append(rows, []string{
					result.Name,
					passLabel(result.Passed, colorize),
					result.Detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))

			if failed > 0 {
				fmt.Fprintf(os.Stderr, "%d preflight check(s) failed\n", failed)
				return fmt.Errorf("preflight failed")
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"glidefront/internal/jobqueue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect schedd queue sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	queueCmd.AddCommand(newQueueListCommand(ctx))
	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show idle/running job counts per queue source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sources := make([]jobqueue.Source, 0, len(cfg.Schedds))
			for _, schedd := range cfg.Schedds {
				sources = append(sources, jobqueue.Source{Name: schedd.Name, Path: schedd.Path})
			}
			// No constraint here: operators see the raw queue content.
			client, err := jobqueue.Open(sources, nil)
			if err != nil {
				return err
			}
			defer client.Close()

			idle, err := client.SnapshotIdle(cmd.Context())
			if err != nil {
				return err
			}
			running, err := client.SnapshotRunning(cmd.Context())
			if err != nil {
				return err
			}

			names := make([]string, 0, len(idle))
			for name := range idle {
				names = append(names, name)
			}
			sort.Strings(names)

			headers := []string{"Schedd", "Idle", "Running"}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{
					name,
					strconv.Itoa(len(idle[name])),
					strconv.Itoa(len(running[name])),
				})
			}
			aligns := []columnAlignment{alignLeft, alignRight, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}

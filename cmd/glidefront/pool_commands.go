package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newPoolCommand(ctx *commandContext) *cobra.Command {
	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect the factory pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	poolCmd.AddCommand(newPoolStatusCommand(ctx))
	poolCmd.AddCommand(newPoolRequestsCommand(ctx))
	return poolCmd
}

func newPoolStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List glideins currently advertised by the factory pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.poolClient()
			if err != nil {
				return err
			}
			glideins, err := client.Discover(cmd.Context())
			if err != nil {
				return err
			}
			if len(glideins) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no glideins advertised")
				return nil
			}

			attrKeys := map[string]struct{}{}
			for _, glidein := range glideins {
				for key := range glidein.Attrs {
					attrKeys[key] = struct{}{}
				}
			}
			sortedKeys := make([]string, 0, len(attrKeys))
			for key := range attrKeys {
				sortedKeys = append(sortedKeys, key)
			}
			sort.Strings(sortedKeys)

			headers := []string{"Glidein"}
			for _, key := range sortedKeys {
				headers = append(headers, attrHeader(key))
			}
			rows := make([][]string, 0, len(glideins))
			for _, glidein := range glideins {
				row := []string{glidein.Name}
				for _, key := range sortedKeys {
					row = append(row, glidein.Attrs[key])
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}
}

func newPoolRequestsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List demand requests published by this frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.poolClient()
			if err != nil {
				return err
			}
			requests, err := client.ListRequests(cmd.Context())
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no requests published by %s\n", client.Frontend())
				return nil
			}

			headers := []string{"Request", "Glidein", "Req Idle", "Idle", "Running"}
			rows := make([][]string, 0, len(requests))
			for _, request := range requests {
				rows = append(rows, []string{
					request.Name,
					request.Glidein,
					strconv.Itoa(request.ReqIdle),
					strconv.Itoa(request.Monitors.Idle),
					strconv.Itoa(request.Monitors.Running),
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}

// glidefrontd is the glidein frontend daemon: it polls the configured
// schedd queues, matches pending jobs against factory supply, and keeps
// demand requests published on the factory pool.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "glidefrontd:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "glidefrontd <poll_period_seconds> <advertise_rate> <config_file>",
		Short:         "Glidein frontend daemon",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pollSeconds, err := strconv.Atoi(args[0])
			if err != nil || pollSeconds <= 0 {
				return fmt.Errorf("poll_period_seconds must be a positive integer, got %q", args[0])
			}
			advertiseRate, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("advertise_rate must be an integer, got %q", args[1])
			}
			return runDaemon(cmd.Context(), time.Duration(pollSeconds)*time.Second, advertiseRate, args[2])
		},
	}
}

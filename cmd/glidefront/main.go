// glidefront is the operator CLI for the glidein frontend: configuration
// management and read-only views of the factory pool and queue sources.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glidefront:", err)
		os.Exit(1)
	}
}

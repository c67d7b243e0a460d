// Package main provides the wonderdog CLI.
//
// Usage:
//
//	wonderdog plan [flags] <job.yaml>...
//
// Each job file is resolved and printed as the Hadoop streaming command that
// launches it. Jobs reading from or writing to "es://index/type" locations are
// staged through a temporary HDFS directory.
package main

import (
	"fmt"
	"os"

	"github.com/prxssh/wonderdog/cmd/wonderdog/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

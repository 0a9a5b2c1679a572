// Package main provides the berx command line decoder.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errMalformed reports that a message was decoded but is malformed.
var errMalformed = errors.New("message is malformed")

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args[1:])

	if err := root.Execute(); err != nil {
		if errors.Is(err, errMalformed) {
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

package main

import (
	"fmt"
	"os"

	"github.com/rife2/bld-exec/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the bld-exec command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}

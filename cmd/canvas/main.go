// Command canvas drives canvas contexts against the in-process software host.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/canvas/cmd/canvas/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

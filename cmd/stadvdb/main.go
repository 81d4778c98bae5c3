// Package main is the entry point for stadvdb.
package main

import (
	"fmt"
	"os"

	"github.com/trishaguarin/STADVDB-MCO1/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

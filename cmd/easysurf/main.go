// Package main is the entry point for the easysurf CLI and settings window.
package main

import (
	"os"

	"github.com/easysurf/easysurf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

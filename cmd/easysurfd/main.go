// Package main is the entry point for the easysurfd tray daemon.
package main

import (
	"os"

	"github.com/easysurf/easysurf/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

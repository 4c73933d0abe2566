package main

import (
	"fmt"
	"os"

	"github.com/eivindw/timevault/cmd"
	"github.com/eivindw/timevault/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var exitFunc = os.Exit

func run() int {
	if _, err := config.GetConfigPath(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to resolve config path: %v\n", err)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	exitFunc(run())
}

// ABOUTME: Entry point for the capacity CLI
// ABOUTME: Command-line tool for planning requests and CI/CD cost gates

package main

import (
	"fmt"
	"os"

	"github.com/stucchio/Cloud-capacity-planning/internal/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ABOUTME: Compare command for the capacity CLI
// ABOUTME: Solves named scenarios side by side and reports the cheapest

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stucchio/Cloud-capacity-planning/internal/cli/client"
	"github.com/stucchio/Cloud-capacity-planning/models"
)

var compareFile string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare planning scenarios",
	Long: `Solve several named scenarios side by side and report the cheapest.

The scenarios file contains a list of named planning requests:

  {
    "scenarios": [
      {"name": "with-commitments", "catalog": {...}, "schedule": {...}},
      {"name": "on-demand-only", "catalog": {...}, "schedule": {...}}
    ]
  }

Example:
  capacity compare -f scenarios.json --json`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCompare(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&compareFile, "file", "f", "", "Scenarios file (JSON)")
	compareCmd.MarkFlagRequired("file")
}

// runCompare executes the compare command and returns exit code
func runCompare(ctx context.Context, w io.Writer) int {
	data, err := os.ReadFile(compareFile)
	if err != nil {
		fmt.Fprintf(w, "Error: cannot read scenarios file: %v\n", err)
		return 2
	}

	var req models.CompareRequest
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintf(w, "Error: invalid scenarios file %s: %v\n", compareFile, err)
		return 2
	}

	c := client.New(GetAPIURL())
	resp, err := c.Compare(ctx, &req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(resp)
	} else {
		fmt.Fprintln(w, formatCompareHuman(resp))
	}

	if resp.Cheapest == "" {
		return 1
	}
	return 0
}

// formatCompareHuman formats a comparison for human readability
func formatCompareHuman(resp *models.CompareResponse) string {
	var out string
	out += "Scenario Comparison\n"
	out += "===================\n\n"

	for _, r := range resp.Results {
		marker := " "
		if r.Name == resp.Cheapest {
			marker = "*"
		}
		if r.Response.Status == models.PlanStatusOptimal {
			out += fmt.Sprintf("%s %-24s cost %.2f (%.1f%% savings)\n",
				marker, r.Name, r.Response.Plan.TotalCost, r.Response.SavingsPct)
		} else {
			out += fmt.Sprintf("%s %-24s %s\n", marker, r.Name, r.Response.Status)
		}
	}

	if resp.Cheapest != "" {
		out += fmt.Sprintf("\nCheapest: %s\n", resp.Cheapest)
	} else {
		out += "\nNo scenario solved to optimality\n"
	}
	return out
}

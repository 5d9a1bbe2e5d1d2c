// ABOUTME: Plan command for the capacity CLI
// ABOUTME: Solves a provisioning plan from a request file

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stucchio/Cloud-capacity-planning/internal/cli/client"
	"github.com/stucchio/Cloud-capacity-planning/models"
)

var (
	planFile        string
	planHorizonDays float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Solve a provisioning plan",
	Long: `Solve a cost-optimal provisioning plan from a planning request file.

The request file contains a pricing catalog and a demand schedule:

  {
    "catalog": {
      "on_demand_hourly_rate": 0.64,
      "tiers": [{"id": "heavy", "annual_fixed_cost": 1560, "hourly_cost": 0.128}]
    },
    "schedule": {
      "periods": [{"id": "evening", "demand": 53.5, "duration_hours": 8}]
    }
  }

Example:
  capacity plan -f request.json
  capacity plan -f request.json --horizon-days 30 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlan(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planFile, "file", "f", "", "Planning request file (JSON)")
	planCmd.Flags().Float64Var(&planHorizonDays, "horizon-days", 0, "Planning cycle length in days (0 = server default)")
	planCmd.MarkFlagRequired("file")
}

// runPlan executes the plan command and returns exit code
func runPlan(ctx context.Context, w io.Writer) int {
	req, err := loadPlanRequest(planFile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if planHorizonDays > 0 {
		req.HorizonDays = planHorizonDays
	}

	c := client.New(GetAPIURL())
	resp, err := c.Plan(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(resp)
	} else {
		fmt.Fprintln(w, formatPlanHuman(resp))
	}

	if resp.Status != models.PlanStatusOptimal {
		return 1
	}
	return 0
}

// loadPlanRequest reads and parses a planning request file
func loadPlanRequest(path string) (*models.PlanRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read request file: %w", err)
	}

	var req models.PlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request file %s: %w", path, err)
	}
	return &req, nil
}

// formatPlanHuman formats a plan response for human readability
func formatPlanHuman(resp *models.PlanResponse) string {
	if resp.Status != models.PlanStatusOptimal {
		return fmt.Sprintf("Status: %s\n%s", resp.Status, resp.Message)
	}

	var out string
	out += "Provisioning Plan\n"
	out += "=================\n\n"

	out += "Reservations:\n"
	if len(resp.Plan.Reservations) == 0 {
		out += "  (none, all demand on-demand)\n"
	} else {
		tiers := make([]string, 0, len(resp.Plan.Reservations))
		for tier := range resp.Plan.Reservations {
			tiers = append(tiers, tier)
		}
		sort.Strings(tiers)
		for _, tier := range tiers {
			out += fmt.Sprintf("  %-12s %g\n", tier, resp.Plan.Reservations[tier])
		}
	}

	out += "\nPer-period allocation:\n"
	for _, alloc := range resp.Plan.Periods {
		out += fmt.Sprintf("  %-12s on-demand %g", alloc.PeriodID, alloc.OnDemand)
		tiers := make([]string, 0, len(alloc.Reserved))
		for tier := range alloc.Reserved {
			tiers = append(tiers, tier)
		}
		sort.Strings(tiers)
		for _, tier := range tiers {
			if alloc.Reserved[tier] > 0 {
				out += fmt.Sprintf(", %s %g", tier, alloc.Reserved[tier])
			}
		}
		out += "\n"
	}

	out += fmt.Sprintf("\nTotal cost:        %.2f\n", resp.Plan.TotalCost)
	out += fmt.Sprintf("On-demand cost:    %.2f\n", resp.OnDemandBaselineCost)
	out += fmt.Sprintf("Savings:           %.1f%%\n", resp.SavingsPct)
	if resp.Metadata.Cached {
		out += "(served from cache)\n"
	}
	return out
}

// ABOUTME: Check command for the capacity CLI
// ABOUTME: Validates plan cost thresholds for CI/CD pipelines

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

var (
	checkFile     string
	maxCost       float64
	minSavingsPct float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check plan cost thresholds",
	Long: `Solve a planning request and exit non-zero if cost thresholds are exceeded.

Exit codes:
  0 - All checks passed
  1 - One or more thresholds exceeded (or no feasible plan)
  2 - Error (connectivity, invalid input)

Example:
  capacity check -f request.json --max-cost 300 --min-savings 20`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Planning request file (JSON)")
	checkCmd.Flags().Float64Var(&maxCost, "max-cost", 0, "Maximum acceptable plan cost (0 = no limit)")
	checkCmd.Flags().Float64Var(&minSavingsPct, "min-savings", 0, "Minimum savings over on-demand in percent")
	checkCmd.MarkFlagRequired("file")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThresholds(maxCost, minSavingsPct); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req, err := loadPlanRequest(checkFile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	resp, err := c.Plan(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if resp.Status != models.PlanStatusOptimal {
		fmt.Fprintf(w, "FAILED: no optimal plan (%s)\n", resp.Status)
		return 1
	}

	results := performChecks(resp)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateThresholds ensures threshold values are valid
func validateThresholds(cost, savings float64) error {
	if cost < 0 {
		return fmt.Errorf("--max-cost must be non-negative")
	}
	if savings < 0 || savings > 100 {
		return fmt.Errorf("--min-savings must be between 0 and 100")
	}
	return nil
}

// performChecks runs all threshold checks against the plan response
func performChecks(resp *models.PlanResponse) []checkResult {
	var results []checkResult

	if maxCost > 0 {
		results = append(results, checkResult{
			name:      "Plan cost",
			value:     resp.Plan.TotalCost,
			threshold: maxCost,
			passed:    resp.Plan.TotalCost <= maxCost,
		})
	}

	if minSavingsPct > 0 {
		results = append(results, checkResult{
			name:      "Savings",
			value:     resp.SavingsPct,
			threshold: minSavingsPct,
			passed:    resp.SavingsPct >= minSavingsPct,
		})
	}

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %.2f (threshold: %.2f)\n",
			symbol, r.name, r.value, r.threshold)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) exceeded threshold", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within thresholds", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

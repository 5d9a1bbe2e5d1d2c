// ABOUTME: Init command for the capacity CLI
// ABOUTME: Interactive wizard that writes a planning request file

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/stucchio/Cloud-capacity-planning/models"
)

var initOutput string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a planning request file interactively",
	Long: `Walk through an interactive form to create a planning request file.

The generated file can be used with 'capacity plan -f' and 'capacity check -f'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "request.json", "Output file for the planning request")
}

// runInit drives the interactive form and writes the request file
func runInit() error {
	var (
		onDemandRate string
		tierCount    string
		periodCount  string
		horizonDays  string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("On-demand hourly rate").
				Description("Cost per instance-hour without a reservation").
				Placeholder("e.g., 0.64").
				Value(&onDemandRate).
				Validate(validateNonNegativeFloat),
			huh.NewSelect[string]().
				Title("Number of pricing tiers").
				Description("Reserved tiers with annual fixed cost and discounted hourly rate").
				Options(
					huh.NewOption("1", "1"),
					huh.NewOption("2", "2"),
					huh.NewOption("3", "3"),
				).
				Value(&tierCount),
			huh.NewSelect[string]().
				Title("Number of demand periods").
				Description("Windows of the repeating planning cycle").
				Options(
					huh.NewOption("1", "1"),
					huh.NewOption("2", "2"),
					huh.NewOption("3", "3"),
					huh.NewOption("4", "4"),
				).
				Value(&periodCount),
			huh.NewInput().
				Title("Horizon days").
				Description("Planning cycle length in days (empty = server default)").
				Placeholder("e.g., 30").
				Value(&horizonDays),
		).Title("Planning Request").
			Description("Describe the pricing catalog and demand schedule shape"),
	)

	if err := form.Run(); err != nil {
		return err
	}

	req := models.PlanRequest{}
	req.Catalog.OnDemandHourlyRate, _ = strconv.ParseFloat(strings.TrimSpace(onDemandRate), 64)
	if horizonDays != "" {
		req.HorizonDays, _ = strconv.ParseFloat(strings.TrimSpace(horizonDays), 64)
	}

	nTiers, _ := strconv.Atoi(tierCount)
	for i := 0; i < nTiers; i++ {
		tier, err := promptTier(i)
		if err != nil {
			return err
		}
		req.Catalog.Tiers = append(req.Catalog.Tiers, tier)
	}

	nPeriods, _ := strconv.Atoi(periodCount)
	for i := 0; i < nPeriods; i++ {
		period, err := promptPeriod(i)
		if err != nil {
			return err
		}
		req.Schedule.Periods = append(req.Schedule.Periods, period)
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if err := os.WriteFile(initOutput, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", initOutput, err)
	}

	fmt.Printf("Wrote %s\n", initOutput)
	fmt.Printf("Solve it with: capacity plan -f %s\n", initOutput)
	return nil
}

// promptTier collects one pricing tier
func promptTier(index int) (models.PricingTier, error) {
	var id, annual, hourly string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tier ID").
				Placeholder("e.g., heavy").
				Value(&id).
				Validate(validateNonEmpty),
			huh.NewInput().
				Title("Annual fixed cost").
				Description("Up-front cost per reservation per year").
				Placeholder("e.g., 1560").
				Value(&annual).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Hourly cost").
				Description("Cost per reserved instance-hour while running").
				Placeholder("e.g., 0.128").
				Value(&hourly).
				Validate(validateNonNegativeFloat),
		).Title(fmt.Sprintf("Pricing Tier %d", index+1)),
	)

	if err := form.Run(); err != nil {
		return models.PricingTier{}, err
	}

	tier := models.PricingTier{ID: strings.TrimSpace(id)}
	tier.AnnualFixedCost, _ = strconv.ParseFloat(strings.TrimSpace(annual), 64)
	tier.HourlyCost, _ = strconv.ParseFloat(strings.TrimSpace(hourly), 64)
	return tier, nil
}

// promptPeriod collects one demand period
func promptPeriod(index int) (models.Period, error) {
	var id, demand, duration string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Period ID").
				Placeholder("e.g., evening").
				Value(&id).
				Validate(validateNonEmpty),
			huh.NewInput().
				Title("Demand").
				Description("Expected concurrent instances (fractional values are ceiled)").
				Placeholder("e.g., 53.5").
				Value(&demand).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Duration hours").
				Placeholder("e.g., 8").
				Value(&duration).
				Validate(validatePositiveFloat),
		).Title(fmt.Sprintf("Demand Period %d", index+1)),
	)

	if err := form.Run(); err != nil {
		return models.Period{}, err
	}

	period := models.Period{ID: strings.TrimSpace(id)}
	period.Demand, _ = strconv.ParseFloat(strings.TrimSpace(demand), 64)
	period.DurationHours, _ = strconv.ParseFloat(strings.TrimSpace(duration), 64)
	return period, nil
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

// ABOUTME: Cost bar widget comparing plan cost against the on-demand baseline
// ABOUTME: Renders a colored bar whose filled portion is the optimized cost share

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CostBarConfig holds configuration for the cost bar
type CostBarConfig struct {
	Width      int
	FillColor  lipgloss.Color
	SaveColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultCostBarConfig returns sensible defaults
func DefaultCostBarConfig() CostBarConfig {
	return CostBarConfig{
		Width:      30,
		FillColor:  lipgloss.Color("#F59E0B"), // Amber - money spent
		SaveColor:  lipgloss.Color("#10B981"), // Green - money saved
		EmptyColor: lipgloss.Color("#374151"), // Dark gray
	}
}

// CostBar renders cost as a fraction of baseline: the filled amber portion is
// the plan cost, the green remainder the savings. A plan that costs as much
// as the baseline fills the whole bar.
func CostBar(cost, baseline float64, config CostBarConfig) string {
	if config.Width <= 0 {
		config.Width = 30
	}

	frac := 1.0
	if baseline > 0 {
		frac = cost / baseline
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(config.Width))
	saved := config.Width - filled

	fillStyle := lipgloss.NewStyle().Foreground(config.FillColor)
	saveStyle := lipgloss.NewStyle().Foreground(config.SaveColor)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(fillStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(saveStyle.Render(strings.Repeat("░", saved)))
	bar.WriteString("]")
	return bar.String()
}

// CostBarWithLabel renders the cost bar with the savings percentage
func CostBarWithLabel(cost, baseline float64, config CostBarConfig) string {
	bar := CostBar(cost, baseline, config)

	savings := 0.0
	if baseline > 0 {
		savings = (baseline - cost) / baseline * 100
	}
	label := lipgloss.NewStyle().Foreground(config.SaveColor).
		Render(fmt.Sprintf("%.1f%% saved", savings))

	return fmt.Sprintf("%s %s", bar, label)
}

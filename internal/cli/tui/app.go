// ABOUTME: Root bubbletea model for the interactive plan viewer
// ABOUTME: Solves a planning request and renders the resulting plan

package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stucchio/Cloud-capacity-planning/internal/cli/client"
	"github.com/stucchio/Cloud-capacity-planning/internal/cli/tui/styles"
	"github.com/stucchio/Cloud-capacity-planning/internal/cli/tui/widgets"
	"github.com/stucchio/Cloud-capacity-planning/models"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenSolving Screen = iota
	ScreenPlan
	ScreenError
)

const solveTimeout = 120 * time.Second

// planSolvedMsg is sent when the backend returns a planning result
type planSolvedMsg struct {
	resp *models.PlanResponse
	err  error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	request *models.PlanRequest
	screen  Screen
	spinner spinner.Model
	resp    *models.PlanResponse
	err     error
	width   int
}

// New creates a new TUI application for the given planning request
func New(apiClient *client.Client, request *models.PlanRequest) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		client:  apiClient,
		request: request,
		screen:  ScreenSolving,
		spinner: s,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.solvePlan())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return a, tea.Quit
		case "r":
			// Re-solve (a changed request file on disk is not re-read;
			// this refreshes server-side state like cache metadata)
			a.screen = ScreenSolving
			a.err = nil
			return a, tea.Batch(a.spinner.Tick, a.solvePlan())
		}
		return a, nil

	case planSolvedMsg:
		if msg.err != nil {
			a.screen = ScreenError
			a.err = msg.err
			return a, nil
		}
		a.screen = ScreenPlan
		a.resp = msg.resp
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// solvePlan posts the request to the backend off the update loop
func (a *App) solvePlan() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
		defer cancel()

		resp, err := a.client.Plan(ctx, a.request)
		return planSolvedMsg{resp: resp, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	switch a.screen {
	case ScreenSolving:
		return fmt.Sprintf("\n %s Solving plan...\n\n%s",
			a.spinner.View(),
			styles.Help.Render(" q: quit"))

	case ScreenError:
		return fmt.Sprintf("\n %s\n\n%s",
			styles.StatusCritical.Render("Error: "+a.err.Error()),
			styles.Help.Render(" r: retry • q: quit"))

	case ScreenPlan:
		return a.viewPlan()
	}
	return ""
}

// viewPlan renders the solved plan
func (a *App) viewPlan() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Provisioning Plan"))
	sb.WriteString("\n")

	if a.resp.Status != models.PlanStatusOptimal {
		sb.WriteString(styles.StatusWarning.Render(fmt.Sprintf("Status: %s", a.resp.Status)))
		if a.resp.Message != "" {
			sb.WriteString("\n" + styles.Subtitle.Render(a.resp.Message))
		}
		sb.WriteString("\n" + styles.Help.Render(" r: retry • q: quit"))
		return styles.Panel.Render(sb.String())
	}

	plan := a.resp.Plan

	sb.WriteString(styles.Subtitle.Render("Reservations"))
	sb.WriteString("\n")
	if len(plan.Reservations) == 0 {
		sb.WriteString("  (none, all demand on-demand)\n")
	} else {
		for _, tier := range sortedKeys(plan.Reservations) {
			sb.WriteString(fmt.Sprintf("  %-14s %g\n", tier, plan.Reservations[tier]))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Per-period allocation"))
	sb.WriteString("\n")
	for _, alloc := range plan.Periods {
		line := fmt.Sprintf("  %-14s on-demand %g", alloc.PeriodID, alloc.OnDemand)
		for _, tier := range sortedKeys(alloc.Reserved) {
			if alloc.Reserved[tier] > 0 {
				line += fmt.Sprintf(", %s %g", tier, alloc.Reserved[tier])
			}
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(widgets.CostBarWithLabel(plan.TotalCost, a.resp.OnDemandBaselineCost,
		widgets.DefaultCostBarConfig()))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Total cost:     %.2f\n", plan.TotalCost))
	sb.WriteString(fmt.Sprintf("  On-demand cost: %.2f\n", a.resp.OnDemandBaselineCost))

	status := fmt.Sprintf("solved in %dms", a.resp.Metadata.SolveTimeMS)
	if a.resp.Metadata.Cached {
		status = "served from cache"
	}
	sb.WriteString(styles.Subtitle.Render("  " + status))

	sb.WriteString("\n" + styles.Help.Render(" r: re-solve • q: quit"))

	return styles.Panel.Render(sb.String())
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

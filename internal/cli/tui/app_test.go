// ABOUTME: Integration tests for the TUI plan viewer
// ABOUTME: Tests state transitions and rendering

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stucchio/Cloud-capacity-planning/internal/cli/client"
	"github.com/stucchio/Cloud-capacity-planning/models"
)

func newTestApp() *App {
	return New(client.New("http://localhost:8080"), &models.PlanRequest{})
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp()

	if app.screen != ScreenSolving {
		t.Errorf("expected initial screen to be ScreenSolving, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Solving") {
		t.Error("expected solving view to mention solving")
	}
}

func TestAppPlanSolvedMsg(t *testing.T) {
	app := newTestApp()

	msg := planSolvedMsg{resp: &models.PlanResponse{
		Status: models.PlanStatusOptimal,
		Plan: &models.ProvisioningPlan{
			Reservations: map[string]float64{"heavy": 26},
			Periods: []models.PeriodAllocation{
				{PeriodID: "evening", OnDemand: 28, Reserved: map[string]float64{"heavy": 26}},
			},
			TotalCost: 289.92,
		},
		OnDemandBaselineCost: 476.16,
		SavingsPct:           39.1,
	}}

	updated, _ := app.Update(msg)
	result := updated.(*App)

	if result.screen != ScreenPlan {
		t.Errorf("expected ScreenPlan after solve, got %d", result.screen)
	}

	view := result.View()
	if !strings.Contains(view, "heavy") {
		t.Error("expected reservation tier in plan view")
	}
	if !strings.Contains(view, "289.92") {
		t.Error("expected total cost in plan view")
	}
}

func TestAppSolveError(t *testing.T) {
	app := newTestApp()

	updated, _ := app.Update(planSolvedMsg{err: errors.New("cannot connect to backend")})
	result := updated.(*App)

	if result.screen != ScreenError {
		t.Errorf("expected ScreenError after failure, got %d", result.screen)
	}
	if !strings.Contains(result.View(), "cannot connect") {
		t.Error("expected error message in view")
	}
}

func TestAppNonOptimalPlan(t *testing.T) {
	app := newTestApp()

	updated, _ := app.Update(planSolvedMsg{resp: &models.PlanResponse{
		Status:  models.PlanStatusInfeasible,
		Message: "no assignment satisfies all constraints",
	}})
	result := updated.(*App)

	view := result.View()
	if !strings.Contains(view, "infeasible") {
		t.Errorf("expected infeasible status in view, got %q", view)
	}
}

func TestAppQuitKey(t *testing.T) {
	app := newTestApp()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command for q key")
	}
	if msg := cmd(); msg == nil {
		t.Error("expected quit message")
	}
}

func TestAppRetryKey(t *testing.T) {
	app := newTestApp()
	app.screen = ScreenError
	app.err = errors.New("boom")

	updated, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	result := updated.(*App)

	if result.screen != ScreenSolving {
		t.Errorf("expected ScreenSolving after retry, got %d", result.screen)
	}
	if cmd == nil {
		t.Error("expected re-solve command after retry")
	}
}

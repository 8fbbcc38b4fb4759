package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagebind/pagebind/pkg/layout"
)

func testPlan() []layout.Entry {
	return []layout.Entry{
		{Source: "a.png", Page: layout.Page{Width: 595, Height: 842}},
		{Source: "b.png", Page: layout.Page{Width: 842, Height: 595}, RotationDeg: 90},
		{Source: "c.png", Page: layout.Page{Width: 595, Height: 842}},
	}
}

func TestPlanModelNavigation(t *testing.T) {
	m := newPlanModel(testPlan())

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	next, _ := m.Update(down)
	m = next.(planModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(down)
	next, _ = next.(planModel).Update(down) // clamped at last entry
	m = next.(planModel)
	if m.Cursor != 2 {
		t.Errorf("cursor should clamp at %d, got %d", 2, m.Cursor)
	}

	next, _ = m.Update(up)
	m = next.(planModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after up = %d, want 1", m.Cursor)
	}
}

func TestPlanModelQuit(t *testing.T) {
	m := newPlanModel(testPlan())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestPlanModelView(t *testing.T) {
	m := newPlanModel(testPlan())

	view := m.View()
	if !strings.Contains(view, "a.png") {
		t.Error("view should list the first image")
	}
	if !strings.Contains(view, "90°") {
		t.Error("view should show the rotated page")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view should show the cursor position")
	}
}

func TestPlanModelViewEmpty(t *testing.T) {
	m := newPlanModel(nil)

	view := m.View()
	if !strings.Contains(view, "no pages") {
		t.Error("empty plan should render a placeholder")
	}
}

package tasklist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/verdant/internal/models"
)

func testWeek() ([]models.DailyTask, []models.WeeklyTask) {
	daily := []models.DailyTask{
		{ID: "d2", Name: "Call mum", Date: "2026-10-17"},
		{ID: "d1", Name: "Pay rent", Date: "2026-10-13", IsCompleted: true},
	}
	weekly := []models.WeeklyTask{
		{ID: "w1", Name: "Laundry", WeekStartDate: "2026-10-12", Completions: models.Completions{"2026-10-14": true}},
	}
	return daily, weekly
}

func press(m Model, k tea.KeyMsg) tea.Msg {
	_, cmd := m.Update(k)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestSetWeekOrdersItems(t *testing.T) {
	m := New(80, 20)
	daily, weekly := testWeek()
	m.SetWeek("2026-10-15", daily, weekly)

	items := m.list.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{"w1", "d1", "d2"}
	for i, id := range want {
		if got := items[i].(Item).ID(); got != id {
			t.Errorf("item %d = %s, want %s", i, got, id)
		}
	}
}

func TestItemText(t *testing.T) {
	daily, weekly := testWeek()

	w := Item{Weekly: &weekly[0], today: "2026-10-14"}
	if w.Title() != "✓ Laundry" {
		t.Errorf("weekly title = %q", w.Title())
	}
	if w.Description() != "weekly | 1/7 days" {
		t.Errorf("weekly description = %q", w.Description())
	}

	d := Item{Daily: &daily[0]}
	if d.Title() != "○ Call mum" {
		t.Errorf("daily title = %q", d.Title())
	}
	if d.Description() != "Sat Oct 17" {
		t.Errorf("daily description = %q", d.Description())
	}
}

func TestToggleUsesTaskDay(t *testing.T) {
	m := New(80, 20)
	daily, weekly := testWeek()
	m.SetWeek("2026-10-15", daily, weekly)

	// the weekly task is selected first and toggles on today
	msg, ok := press(m, tea.KeyMsg{Type: tea.KeySpace}).(ToggleTaskMsg)
	if !ok || msg.Item.ID() != "w1" || msg.Key != "2026-10-15" {
		t.Errorf("toggle = %#v", msg)
	}

	m.list.Select(1)
	msg, ok = press(m, tea.KeyMsg{Type: tea.KeySpace}).(ToggleTaskMsg)
	if !ok || msg.Item.ID() != "d1" || msg.Key != "2026-10-13" {
		t.Errorf("toggle = %#v", msg)
	}
}

func TestAddKeys(t *testing.T) {
	m := New(80, 20)

	if msg := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}); msg != (AddTaskMsg{}) {
		t.Errorf("a = %#v", msg)
	}
	if msg := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}); msg != (AddTaskMsg{Weekly: true}) {
		t.Errorf("w = %#v", msg)
	}
}

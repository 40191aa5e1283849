package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/verdant/internal/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Read", "Read", false},
		{"two characters", "Go", "Go", false},
		{"trimmed", "  Walk  ", "Walk", false},
		{"single character", "a", "", true},
		{"padded single character", "  a ", "", true},
		{"empty", "", "", true},
		{"multibyte", "読書", "読書", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNameTooShort) {
					t.Fatalf("expected ErrNameTooShort, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateWeekStart(t *testing.T) {
	if err := ValidateWeekStart("2026-10-12"); err != nil {
		t.Errorf("Monday rejected: %v", err)
	}
	if err := ValidateWeekStart("2026-10-13"); !errors.Is(err, ErrNotMonday) {
		t.Errorf("expected ErrNotMonday, got %v", err)
	}
	if err := ValidateWeekStart("2026-10"); !errors.Is(err, ErrInvalidDateKey) {
		t.Errorf("expected ErrInvalidDateKey, got %v", err)
	}
}

func TestValidateCompletions(t *testing.T) {
	if err := ValidateCompletions(models.Completions{"2026-10-12": true}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateCompletions(models.Completions{"2026-10-12": true, "yesterday": true})
	if !errors.Is(err, ErrInvalidDateKey) {
		t.Errorf("expected ErrInvalidDateKey, got %v", err)
	}
}

func TestValidateWeekCompletions(t *testing.T) {
	tests := []struct {
		name    string
		c       models.Completions
		wantErr error
	}{
		{"inside week", models.Completions{"2026-10-26": true, "2026-11-01": false}, nil},
		{"empty", nil, nil},
		{"day after week", models.Completions{"2026-11-02": true}, ErrOutOfRange},
		{"day before week", models.Completions{"2026-10-25": true}, ErrOutOfRange},
		{"malformed", models.Completions{"2026-10-26T00:00": true}, ErrInvalidDateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeekCompletions("2026-10-26", tt.c)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func countType(result ValidationResult, ct ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

func TestValidateHabits_DuplicateNames(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "Read"},
		{ID: "2", Name: "Walk"},
		{ID: "3", Name: " Read "}, // Duplicate after trimming
	}

	result := validator.ValidateHabits(habits)
	if !result.HasConflicts() {
		t.Fatal("Expected to detect duplicate habit names")
	}
	if got := countType(result, ConflictDuplicateName); got != 1 {
		t.Errorf("Expected 1 duplicate name conflict, got %d", got)
	}
	if ids := result.Conflicts[0].IDs; len(ids) != 2 || ids[0] != "1" || ids[1] != "3" {
		t.Errorf("unexpected conflict IDs: %v", ids)
	}
}

func TestValidateHabits_InvalidKeysAndNames(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "R", Completions: models.Completions{"2026-10-12": true}},
		{ID: "", Name: "Walk", Completions: models.Completions{"12/10/2026": true, "2026-02-30": true}},
	}

	result := validator.ValidateHabits(habits)
	if got := countType(result, ConflictNameTooShort); got != 1 {
		t.Errorf("Expected 1 short name conflict, got %d", got)
	}
	if got := countType(result, ConflictMissingID); got != 1 {
		t.Errorf("Expected 1 missing ID conflict, got %d", got)
	}
	if got := countType(result, ConflictInvalidDateKey); got != 2 {
		t.Errorf("Expected 2 invalid key conflicts, got %d", got)
	}
}

func TestValidateDailyTasks_DuplicatesScopedToDay(t *testing.T) {
	validator := New()

	tasks := []models.DailyTask{
		{ID: "1", Name: "Laundry", Date: "2026-10-12"},
		{ID: "2", Name: "Laundry", Date: "2026-10-13"},
		{ID: "3", Name: "Laundry", Date: "2026-10-13"},
		{ID: "4", Name: "Groceries", Date: "Monday"},
	}

	result := validator.ValidateDailyTasks(tasks)
	if got := countType(result, ConflictDuplicateName); got != 1 {
		t.Errorf("Expected 1 duplicate name conflict, got %d", got)
	}
	if got := countType(result, ConflictInvalidDateKey); got != 1 {
		t.Errorf("Expected 1 invalid date conflict, got %d", got)
	}
}

func TestValidateWeeklyTasks(t *testing.T) {
	validator := New()

	tasks := []models.WeeklyTask{
		{ID: "1", Name: "Meal prep", WeekStartDate: "2026-10-12", Completions: models.Completions{"2026-10-18": true}},
		{ID: "2", Name: "Clean desk", WeekStartDate: "2026-10-14"},
		{ID: "3", Name: "Stretch", WeekStartDate: "2026-10-12", Completions: models.Completions{"2026-10-19": true}},
	}

	result := validator.ValidateWeeklyTasks(tasks)
	if got := countType(result, ConflictWeekStartMonday); got != 1 {
		t.Errorf("Expected 1 week start conflict, got %d", got)
	}
	if got := countType(result, ConflictOutOfRange); got != 1 {
		t.Errorf("Expected 1 out of range conflict, got %d", got)
	}
}

func TestValidateAll_Clean(t *testing.T) {
	validator := New()

	result := validator.ValidateAll(
		[]models.Habit{{ID: "1", Name: "Read", Completions: models.Completions{"2026-10-12": true}}},
		[]models.DailyTask{{ID: "2", Name: "Laundry", Date: "2026-10-12"}},
		[]models.WeeklyTask{{ID: "3", Name: "Meal prep", WeekStartDate: "2026-10-12"}},
	)

	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestFormatReport(t *testing.T) {
	validator := New()
	result := validator.ValidateHabits([]models.Habit{{ID: "1", Name: "x"}})

	report := result.FormatReport()
	if !strings.HasPrefix(report, "Conflicts detected:") {
		t.Errorf("unexpected report: %q", report)
	}
}

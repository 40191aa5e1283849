package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/verdant/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingID       ConflictType = "missing_id"
	ConflictDuplicateName   ConflictType = "duplicate_name"
	ConflictNameTooShort    ConflictType = "name_too_short"
	ConflictInvalidDateKey  ConflictType = "invalid_date_key"
	ConflictOutOfRange      ConflictType = "completion_out_of_range"
	ConflictWeekStartMonday ConflictType = "week_start_not_monday"
)

// Conflict represents one problem found in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Kind        string   // habit, task or weekly
	Items       []string // Names involved
	IDs         []string // IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator audits snapshots of stored entities
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(result *ValidationResult, c Conflict) {
	result.Conflicts = append(result.Conflicts, c)
}

// checkNames reports missing ids, short names and duplicate names for one
// entity kind.
func (v *Validator) checkNames(result *ValidationResult, kind string, ids, names []string) {
	byName := make(map[string][]string)
	for i, name := range names {
		if ids[i] == "" {
			v.add(result, Conflict{
				Type:        ConflictMissingID,
				Description: fmt.Sprintf("%s %q has no ID", kind, name),
				Kind:        kind,
				Items:       []string{name},
			})
		}
		trimmed, err := ValidateName(name)
		if err != nil {
			v.add(result, Conflict{
				Type:        ConflictNameTooShort,
				Description: fmt.Sprintf("%s %q has a name shorter than the minimum", kind, name),
				Kind:        kind,
				Items:       []string{name},
				IDs:         []string{ids[i]},
			})
			continue
		}
		byName[trimmed] = append(byName[trimmed], ids[i])
	}

	dupes := make([]string, 0)
	for name, list := range byName {
		if len(list) > 1 {
			dupes = append(dupes, name)
		}
	}
	sort.Strings(dupes)
	for _, name := range dupes {
		v.add(result, Conflict{
			Type:        ConflictDuplicateName,
			Description: fmt.Sprintf("Duplicate %s name: %q (IDs: %v)", kind, name, byName[name]),
			Kind:        kind,
			Items:       []string{name},
			IDs:         byName[name],
		})
	}
}

// ValidateHabits checks habits for conflicts
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make([]string, len(habits))
	names := make([]string, len(habits))
	for i, h := range habits {
		ids[i], names[i] = h.ID, h.Name
	}
	v.checkNames(&result, "habit", ids, names)

	for _, h := range habits {
		for _, key := range sortedKeys(h.Completions) {
			if ValidateDateKey(key) != nil {
				v.add(&result, Conflict{
					Type:        ConflictInvalidDateKey,
					Description: fmt.Sprintf("Habit %q has invalid completion key: %s", h.Name, key),
					Kind:        "habit",
					Items:       []string{h.Name},
					IDs:         []string{h.ID},
				})
			}
		}
	}
	return result
}

// ValidateDailyTasks checks daily tasks for conflicts. Duplicate names are
// only reported within the same day.
func (v *Validator) ValidateDailyTasks(tasks []models.DailyTask) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDate := make(map[string][]models.DailyTask)
	var dates []string
	for _, t := range tasks {
		if ValidateDateKey(t.Date) != nil {
			v.add(&result, Conflict{
				Type:        ConflictInvalidDateKey,
				Description: fmt.Sprintf("Task %q has invalid date: %s", t.Name, t.Date),
				Kind:        "task",
				Items:       []string{t.Name},
				IDs:         []string{t.ID},
			})
			continue
		}
		if _, ok := byDate[t.Date]; !ok {
			dates = append(dates, t.Date)
		}
		byDate[t.Date] = append(byDate[t.Date], t)
	}

	sort.Strings(dates)
	for _, date := range dates {
		day := byDate[date]
		ids := make([]string, len(day))
		names := make([]string, len(day))
		for i, t := range day {
			ids[i], names[i] = t.ID, t.Name
		}
		v.checkNames(&result, "task", ids, names)
	}
	return result
}

// ValidateWeeklyTasks checks weekly tasks for conflicts
func (v *Validator) ValidateWeeklyTasks(tasks []models.WeeklyTask) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byWeek := make(map[string][]models.WeeklyTask)
	var weeks []string
	for _, t := range tasks {
		if err := ValidateWeekStart(t.WeekStartDate); err != nil {
			v.add(&result, Conflict{
				Type:        ConflictWeekStartMonday,
				Description: fmt.Sprintf("Weekly task %q has invalid week start: %v", t.Name, err),
				Kind:        "weekly",
				Items:       []string{t.Name},
				IDs:         []string{t.ID},
			})
			continue
		}
		days := t.Days()
		for _, key := range sortedKeys(t.Completions) {
			if !contains(days, key) {
				v.add(&result, Conflict{
					Type:        ConflictOutOfRange,
					Description: fmt.Sprintf("Weekly task %q has completion %s outside its week", t.Name, key),
					Kind:        "weekly",
					Items:       []string{t.Name},
					IDs:         []string{t.ID},
				})
			}
		}
		if _, ok := byWeek[t.WeekStartDate]; !ok {
			weeks = append(weeks, t.WeekStartDate)
		}
		byWeek[t.WeekStartDate] = append(byWeek[t.WeekStartDate], t)
	}

	sort.Strings(weeks)
	for _, week := range weeks {
		list := byWeek[week]
		ids := make([]string, len(list))
		names := make([]string, len(list))
		for i, t := range list {
			ids[i], names[i] = t.ID, t.Name
		}
		v.checkNames(&result, "weekly", ids, names)
	}
	return result
}

// ValidateAll audits every kind and concatenates the results.
func (v *Validator) ValidateAll(habits []models.Habit, daily []models.DailyTask, weekly []models.WeeklyTask) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, r := range []ValidationResult{
		v.ValidateHabits(habits),
		v.ValidateDailyTasks(daily),
		v.ValidateWeeklyTasks(weekly),
	} {
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	return result
}

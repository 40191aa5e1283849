package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
)

// Document is the on-disk layout of the JSON store. Habits are written with
// the snapshot codec under constants.HabitSnapshotKey.
type Document struct {
	Version       int                   `json:"version"`
	Habits        []models.Habit        `json:"-"`
	DailyTasks    []models.DailyTask    `json:"dailyTasks"`
	WeeklyTasks   []models.WeeklyTask   `json:"weeklyTasks"`
	FocusSessions []models.FocusSession `json:"focusSessions"`
}

// documentFields has Document's layout without its JSON methods.
type documentFields Document

func (d Document) MarshalJSON() ([]byte, error) {
	habits, err := EncodeHabits(d.Habits)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"version":                  d.Version,
		constants.HabitSnapshotKey: json.RawMessage(habits),
		"dailyTasks":               d.DailyTasks,
		"weeklyTasks":              d.WeeklyTasks,
		"focusSessions":            d.FocusSessions,
	})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var fields documentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}

	*d = Document(fields)
	if raw, ok := sections[constants.HabitSnapshotKey]; ok {
		habits, err := DecodeHabits(raw)
		if err != nil {
			return err
		}
		d.Habits = habits
	}
	for i := range d.WeeklyTasks {
		if d.WeeklyTasks[i].Completions == nil {
			d.WeeklyTasks[i].Completions = models.Completions{}
		}
	}
	return nil
}

// clone copies the record slices. Records are values and patches never
// mutate completion maps in place, so this is enough for copy-on-write.
func (d *Document) clone() *Document {
	return &Document{
		Version:       d.Version,
		Habits:        slices.Clone(d.Habits),
		DailyTasks:    slices.Clone(d.DailyTasks),
		WeeklyTasks:   slices.Clone(d.WeeklyTasks),
		FocusSessions: slices.Clone(d.FocusSessions),
	}
}

// JSONStore keeps all users' data in one JSON file and rewrites it on
// every change.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	doc := &Document{Version: 1}
	if err := s.save(doc); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'verdant init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes doc through a temp file so a crash never leaves a truncated
// store behind. Callers hold mu.
func (s *JSONStore) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// begin locks the store and checks it is loaded. The returned func unlocks.
func (s *JSONStore) begin(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return nil, ErrNotLoaded
	}
	return s.mu.Unlock, nil
}

// commit applies fn to a copy of the document and keeps the copy only once
// it is on disk.
func (s *JSONStore) commit(ctx context.Context, fn func(doc *Document) error) error {
	unlock, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	next := s.doc.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *JSONStore) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	habits := make([]models.Habit, 0)
	for _, h := range s.doc.Habits {
		if h.UserID == userID {
			h.Completions = h.Completions.Clone()
			habits = append(habits, h)
		}
	}
	sort.SliceStable(habits, func(i, j int) bool { return habits[i].CreatedAt.Before(habits[j].CreatedAt) })
	return habits, nil
}

func (s *JSONStore) CreateHabit(ctx context.Context, userID, name string) (string, error) {
	h, err := NewHabit(userID, name)
	if err != nil {
		return "", err
	}

	err = s.commit(ctx, func(doc *Document) error {
		doc.Habits = append(doc.Habits, h)
		return nil
	})
	if err != nil {
		return "", err
	}
	return h.ID, nil
}

func findHabit(doc *Document, userID, id string) (int, error) {
	for i, h := range doc.Habits {
		if h.ID == id && h.UserID == userID {
			return i, nil
		}
	}
	return -1, NotFound("habit", id)
}

func (s *JSONStore) UpdateHabit(ctx context.Context, userID, id string, patch models.HabitPatch) error {
	patch, err := PrepareHabitPatch(patch)
	if err != nil {
		return err
	}

	return s.commit(ctx, func(doc *Document) error {
		i, err := findHabit(doc, userID, id)
		if err != nil {
			return err
		}
		doc.Habits[i] = patch.Apply(doc.Habits[i])
		return nil
	})
}

func (s *JSONStore) DeleteHabit(ctx context.Context, userID, id string) error {
	return s.commit(ctx, func(doc *Document) error {
		i, err := findHabit(doc, userID, id)
		if err != nil {
			return err
		}
		doc.Habits = slices.Delete(doc.Habits, i, i+1)
		return nil
	})
}

func (s *JSONStore) ListDailyTasks(ctx context.Context, userID, from, to string) ([]models.DailyTask, error) {
	if err := CheckRange(from, to); err != nil {
		return nil, err
	}

	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tasks := make([]models.DailyTask, 0)
	for _, t := range s.doc.DailyTasks {
		if t.UserID == userID && t.Date >= from && t.Date <= to {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks, nil
}

func (s *JSONStore) CreateDailyTask(ctx context.Context, userID, name, date string) (string, error) {
	t, err := NewDailyTask(userID, name, date)
	if err != nil {
		return "", err
	}

	err = s.commit(ctx, func(doc *Document) error {
		doc.DailyTasks = append(doc.DailyTasks, t)
		return nil
	})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func findDailyTask(doc *Document, userID, id string) (int, error) {
	for i, t := range doc.DailyTasks {
		if t.ID == id && t.UserID == userID {
			return i, nil
		}
	}
	return -1, NotFound("task", id)
}

func (s *JSONStore) UpdateDailyTask(ctx context.Context, userID, id string, patch models.DailyTaskPatch) error {
	patch, err := PrepareDailyTaskPatch(patch)
	if err != nil {
		return err
	}

	return s.commit(ctx, func(doc *Document) error {
		i, err := findDailyTask(doc, userID, id)
		if err != nil {
			return err
		}
		doc.DailyTasks[i] = patch.Apply(doc.DailyTasks[i])
		return nil
	})
}

func (s *JSONStore) DeleteDailyTask(ctx context.Context, userID, id string) error {
	return s.commit(ctx, func(doc *Document) error {
		i, err := findDailyTask(doc, userID, id)
		if err != nil {
			return err
		}
		doc.DailyTasks = slices.Delete(doc.DailyTasks, i, i+1)
		return nil
	})
}

func (s *JSONStore) ListWeeklyTasks(ctx context.Context, userID, weekStart string) ([]models.WeeklyTask, error) {
	return s.ListWeeklyTasksInRange(ctx, userID, weekStart, weekStart)
}

func (s *JSONStore) ListWeeklyTasksInRange(ctx context.Context, userID, from, to string) ([]models.WeeklyTask, error) {
	if err := CheckRange(from, to); err != nil {
		return nil, err
	}

	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tasks := make([]models.WeeklyTask, 0)
	for _, t := range s.doc.WeeklyTasks {
		if t.UserID == userID && t.WeekStartDate >= from && t.WeekStartDate <= to {
			t.Completions = t.Completions.Clone()
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks, nil
}

func (s *JSONStore) CreateWeeklyTask(ctx context.Context, userID, name, weekStart string) (string, error) {
	t, err := NewWeeklyTask(userID, name, weekStart)
	if err != nil {
		return "", err
	}

	err = s.commit(ctx, func(doc *Document) error {
		doc.WeeklyTasks = append(doc.WeeklyTasks, t)
		return nil
	})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func findWeeklyTask(doc *Document, userID, id string) (int, error) {
	for i, t := range doc.WeeklyTasks {
		if t.ID == id && t.UserID == userID {
			return i, nil
		}
	}
	return -1, NotFound("weekly task", id)
}

func (s *JSONStore) UpdateWeeklyTask(ctx context.Context, userID, id string, patch models.WeeklyTaskPatch) error {
	return s.commit(ctx, func(doc *Document) error {
		i, err := findWeeklyTask(doc, userID, id)
		if err != nil {
			return err
		}
		prepared, err := PrepareWeeklyTaskPatch(doc.WeeklyTasks[i].WeekStartDate, patch)
		if err != nil {
			return err
		}
		doc.WeeklyTasks[i] = prepared.Apply(doc.WeeklyTasks[i])
		return nil
	})
}

func (s *JSONStore) DeleteWeeklyTask(ctx context.Context, userID, id string) error {
	return s.commit(ctx, func(doc *Document) error {
		i, err := findWeeklyTask(doc, userID, id)
		if err != nil {
			return err
		}
		doc.WeeklyTasks = slices.Delete(doc.WeeklyTasks, i, i+1)
		return nil
	})
}

func (s *JSONStore) AddFocusSession(ctx context.Context, userID string, session models.FocusSession) (string, error) {
	session, err := PrepareFocusSession(userID, session)
	if err != nil {
		return "", err
	}

	err = s.commit(ctx, func(doc *Document) error {
		doc.FocusSessions = append(doc.FocusSessions, session)
		return nil
	})
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

func (s *JSONStore) ListFocusSessions(ctx context.Context, userID string, from, to time.Time) ([]models.FocusSession, error) {
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sessions := make([]models.FocusSession, 0)
	for _, fs := range s.doc.FocusSessions {
		if fs.UserID == userID && !fs.CompletedAt.Before(from) && fs.CompletedAt.Before(to) {
			sessions = append(sessions, fs)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].CompletedAt.Before(sessions[j].CompletedAt) })
	return sessions, nil
}

// GetConfigPath returns the path of the JSON file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}

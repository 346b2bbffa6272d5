package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benvon/taskdesk/internal/kv"
	"github.com/benvon/taskdesk/internal/models"
)

// tasksKey is the fixed slot key for the serialized task collection.
// Changing the schema requires a new key; there is no migration logic.
const tasksKey = "tasks_v2"

var (
	// ErrEmptyTitle is returned when a task title is empty after trimming
	ErrEmptyTitle = errors.New("task title must not be empty")
	// ErrNotFound is returned when no task matches the given id
	ErrNotFound = errors.New("task not found")
)

// ChangeKind describes the kind of mutation applied to the collection
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes one applied mutation, delivered to subscribers
type Change struct {
	Kind ChangeKind
	Task models.Task
}

// NewTask carries the fields for creating a task. Only Title is required.
type NewTask struct {
	Title           string
	Notes           *string
	DueDate         *time.Time
	LocationDetails *string
}

// TaskStore is the sole owner of the task collection. It keeps tasks in
// insertion order and writes the whole collection through to its slot on
// every mutation. All methods must be called from a single goroutine.
type TaskStore struct {
	slot        kv.Slot
	logger      *zap.Logger
	tasks       []models.Task
	subscribers []func(Change)
}

// NewTaskStore loads the persisted collection from the slot. A missing key
// or an unreadable payload initializes an empty collection; neither is fatal.
func NewTaskStore(slot kv.Slot, logger *zap.Logger) *TaskStore {
	s := &TaskStore{slot: slot, logger: logger}
	s.load()
	return s
}

func (s *TaskStore) load() {
	data, found, err := s.slot.Get(tasksKey)
	if err != nil {
		s.logger.Warn("failed to read saved tasks, starting empty", zap.Error(err))
		return
	}
	if !found {
		return
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("failed to decode saved tasks, starting empty", zap.Error(err))
		return
	}
	s.tasks = tasks
}

// persist serializes the whole collection and writes it through to the slot.
// Failure leaves the previous durable state untouched; in-memory state is
// not rolled back.
func (s *TaskStore) persist() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.logger.Error("failed to encode tasks for saving", zap.Error(err))
		return
	}
	if err := s.slot.Put(tasksKey, data); err != nil {
		s.logger.Error("failed to save tasks", zap.Error(err))
	}
}

// Subscribe registers fn to be called after every applied mutation
func (s *TaskStore) Subscribe(fn func(Change)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *TaskStore) notify(c Change) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}

// List returns the collection in insertion order. The returned slice is a
// copy; mutating it does not affect the store.
func (s *TaskStore) List() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ListFiltered returns the tasks visible under filter, in insertion order
func (s *TaskStore) ListFiltered(filter models.TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Matches(filter) {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the task with the given id
func (s *TaskStore) Get(id uuid.UUID) (models.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add creates a task with a fresh id and appends it to the collection
func (s *TaskStore) Add(input NewTask) (models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Task{}, ErrEmptyTitle
	}

	task := models.Task{
		ID:              uuid.New(),
		Title:           input.Title,
		Completed:       false,
		Notes:           input.Notes,
		DueDate:         input.DueDate,
		LocationDetails: input.LocationDetails,
	}
	s.tasks = append(s.tasks, task)
	s.persist()
	s.notify(Change{Kind: ChangeAdded, Task: task})
	return task, nil
}

// Update replaces the stored task with the same id, preserving its position.
// The title rule is enforced here as well as on Add.
func (s *TaskStore) Update(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return ErrEmptyTitle
	}

	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			s.persist()
			s.notify(Change{Kind: ChangeUpdated, Task: task})
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, task.ID)
}

// Toggle flips the completion flag on the task with the given id and
// returns the updated task
func (s *TaskStore) Toggle(id uuid.UUID) (models.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persist()
			s.notify(Change{Kind: ChangeUpdated, Task: s.tasks[i]})
			return s.tasks[i], nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the task with the given id
func (s *TaskStore) Delete(id uuid.UUID) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			deleted := s.tasks[i]
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist()
			s.notify(Change{Kind: ChangeDeleted, Task: deleted})
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// DeleteMany removes every task whose id is in ids. Unmatched ids are
// skipped. Persistence happens once, after all removals.
func (s *TaskStore) DeleteMany(ids []uuid.UUID) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var kept []models.Task
	var deleted []models.Task
	for _, t := range s.tasks {
		if wanted[t.ID] {
			deleted = append(deleted, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(deleted) == 0 {
		return
	}

	s.tasks = kept
	s.persist()
	for _, t := range deleted {
		s.notify(Change{Kind: ChangeDeleted, Task: t})
	}
}

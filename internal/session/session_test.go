package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/benvon/taskdesk/internal/models"
	"github.com/benvon/taskdesk/internal/store"
)

// fakeWriter records commits without a real store
type fakeWriter struct {
	added     []store.NewTask
	updated   []models.Task
	addErr    error
	updateErr error
}

func (f *fakeWriter) Add(input store.NewTask) (models.Task, error) {
	if f.addErr != nil {
		return models.Task{}, f.addErr
	}
	f.added = append(f.added, input)
	return models.Task{ID: uuid.New(), Title: input.Title, Notes: input.Notes,
		DueDate: input.DueDate, LocationDetails: input.LocationDetails}, nil
}

func (f *fakeWriter) Update(task models.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, task)
	return nil
}

func strPtr(s string) *string { return &s }

func TestNew_SeedsFromExistingTask(t *testing.T) {
	t.Parallel()

	due := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	existing := models.Task{
		ID:              uuid.New(),
		Title:           "Meeting with Ugo",
		Notes:           strPtr("bring slides"),
		DueDate:         &due,
		LocationDetails: strPtr("Office 3B"),
	}

	sess := New(&existing)

	if !sess.Editing() {
		t.Error("expected Editing() for session over an existing task")
	}
	if sess.Title != existing.Title || sess.Notes != "bring slides" || sess.Location != "Office 3B" {
		t.Errorf("staged fields not seeded: %+v", sess)
	}
	if !sess.IncludeDueDate || sess.DueDate == nil || !sess.DueDate.Equal(due) {
		t.Errorf("due date not seeded: include=%v date=%v", sess.IncludeDueDate, sess.DueDate)
	}
}

func TestNew_DefaultsForCreation(t *testing.T) {
	t.Parallel()

	sess := New(nil)
	if sess.Editing() {
		t.Error("expected creation session")
	}
	if sess.Title != "" || sess.Notes != "" || sess.Location != "" || sess.DueDate != nil || sess.IncludeDueDate {
		t.Errorf("expected empty staged fields: %+v", sess)
	}
}

func TestCommit_CreatesThroughAdd(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	sess := New(nil)
	sess.Title = "New event"
	sess.Notes = "details"
	sess.Location = "  Central Park  "

	task, err := sess.Commit(writer)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(writer.added) != 1 || len(writer.updated) != 0 {
		t.Fatalf("expected one add, got %d adds / %d updates", len(writer.added), len(writer.updated))
	}
	if task.LocationDetails == nil || *task.LocationDetails != "Central Park" {
		t.Errorf("location not trimmed: %v", task.LocationDetails)
	}
}

func TestCommit_UpdatesExistingTaskSameID(t *testing.T) {
	t.Parallel()

	existing := models.Task{ID: uuid.New(), Title: "before", Completed: true}
	writer := &fakeWriter{}

	sess := New(&existing)
	sess.Title = "after"

	task, err := sess.Commit(writer)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(writer.updated) != 1 {
		t.Fatalf("expected one update, got %d", len(writer.updated))
	}
	if task.ID != existing.ID {
		t.Errorf("commit changed the task id")
	}
	if !task.Completed {
		t.Errorf("completion flag lost on commit")
	}
	if task.Title != "after" {
		t.Errorf("title not updated: %q", task.Title)
	}
}

func TestCommit_DueDateGating(t *testing.T) {
	t.Parallel()

	staged := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		include bool
		date    *time.Time
		wantNil bool
	}{
		{name: "flag off discards staged date", include: false, date: &staged, wantNil: true},
		{name: "flag on keeps staged date", include: true, date: &staged, wantNil: false},
		{name: "flag on without date", include: true, date: nil, wantNil: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			writer := &fakeWriter{}
			sess := New(nil)
			sess.Title = "dated"
			sess.DueDate = tt.date
			sess.IncludeDueDate = tt.include

			task, err := sess.Commit(writer)
			if err != nil {
				t.Fatalf("Commit failed: %v", err)
			}
			if tt.wantNil && task.DueDate != nil {
				t.Errorf("expected nil due date, got %v", task.DueDate)
			}
			if !tt.wantNil && (task.DueDate == nil || !task.DueDate.Equal(staged)) {
				t.Errorf("expected due date %v, got %v", staged, task.DueDate)
			}
		})
	}
}

func TestIncludeDueDateToggle_PreservesStagedDate(t *testing.T) {
	t.Parallel()

	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	existing := models.Task{ID: uuid.New(), Title: "Trip", DueDate: &due}

	sess := New(&existing)
	sess.IncludeDueDate = false
	if sess.DueDate == nil || !sess.DueDate.Equal(due) {
		t.Fatalf("staged date cleared by toggling the flag off")
	}

	sess.IncludeDueDate = true
	writer := &fakeWriter{}
	task, err := sess.Commit(writer)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("date did not resurface after re-enabling the flag: %v", task.DueDate)
	}
}

func TestCommit_BlankOptionalFieldsBecomeAbsent(t *testing.T) {
	t.Parallel()

	existing := models.Task{
		ID:              uuid.New(),
		Title:           "had everything",
		Notes:           strPtr("old notes"),
		LocationDetails: strPtr("old place"),
	}

	sess := New(&existing)
	sess.Notes = ""
	sess.Location = "   "

	writer := &fakeWriter{}
	task, err := sess.Commit(writer)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if task.Notes != nil {
		t.Errorf("blank notes should map to absent, got %q", *task.Notes)
	}
	if task.LocationDetails != nil {
		t.Errorf("blank location should map to absent, got %q", *task.LocationDetails)
	}
}

func TestCommit_PropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("store said no")

	writer := &fakeWriter{addErr: wantErr}
	sess := New(nil)
	sess.Title = "doomed"
	if _, err := sess.Commit(writer); !errors.Is(err, wantErr) {
		t.Errorf("add error not propagated: %v", err)
	}

	existing := models.Task{ID: uuid.New(), Title: "doomed too"}
	writer = &fakeWriter{updateErr: wantErr}
	sess = New(&existing)
	if _, err := sess.Commit(writer); !errors.Is(err, wantErr) {
		t.Errorf("update error not propagated: %v", err)
	}
}

func TestLocationFetch_AppliesCurrentToken(t *testing.T) {
	t.Parallel()

	sess := New(nil)
	token := sess.BeginLocationFetch()
	if !sess.FetchPending() {
		t.Fatal("expected pending fetch")
	}

	if !sess.ApplyLocationResult(token, "Central Park, New York") {
		t.Fatal("current token result was not applied")
	}
	if sess.Location != "Central Park, New York" {
		t.Errorf("location not staged: %q", sess.Location)
	}
	if sess.FetchPending() {
		t.Error("fetch still pending after result")
	}
}

func TestLocationFetch_DropsStaleResults(t *testing.T) {
	t.Parallel()

	t.Run("superseded fetch", func(t *testing.T) {
		t.Parallel()

		sess := New(nil)
		stale := sess.BeginLocationFetch()
		current := sess.BeginLocationFetch()

		if sess.ApplyLocationResult(stale, "old answer") {
			t.Error("stale token result was applied")
		}
		if !sess.ApplyLocationResult(current, "new answer") {
			t.Error("current token result was rejected")
		}
		if sess.Location != "new answer" {
			t.Errorf("unexpected staged location %q", sess.Location)
		}
	})

	t.Run("cancelled fetch", func(t *testing.T) {
		t.Parallel()

		sess := New(nil)
		sess.Location = ""
		token := sess.BeginLocationFetch()
		sess.CancelLocationFetch()

		if sess.ApplyLocationResult(token, "too late") {
			t.Error("result applied after cancel")
		}
		if sess.Location != "" {
			t.Errorf("location staged after cancel: %q", sess.Location)
		}
	})

	t.Run("result after commit", func(t *testing.T) {
		t.Parallel()

		sess := New(nil)
		sess.Title = "committed"
		token := sess.BeginLocationFetch()

		writer := &fakeWriter{}
		if _, err := sess.Commit(writer); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		if sess.ApplyLocationResult(token, "too late") {
			t.Error("result applied after commit")
		}
	})
}

func TestCancelLocationFetch_RestoresSavedLocation(t *testing.T) {
	t.Parallel()

	existing := models.Task{
		ID:              uuid.New(),
		Title:           "Meeting",
		LocationDetails: strPtr("Office 3B"),
	}

	sess := New(&existing)
	sess.BeginLocationFetch()
	// The resolver was denied or unavailable; the fetch is abandoned.
	sess.CancelLocationFetch()

	if sess.Location != "Office 3B" {
		t.Fatalf("staged location after failed fetch = %q, want %q", sess.Location, "Office 3B")
	}

	writer := &fakeWriter{}
	task, err := sess.Commit(writer)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if task.LocationDetails == nil || *task.LocationDetails != "Office 3B" {
		t.Errorf("saved location wiped after failed fetch: got %v, want %q", task.LocationDetails, "Office 3B")
	}
}

func TestCancelLocationFetch_RestoresTypedText(t *testing.T) {
	t.Parallel()

	sess := New(nil)
	sess.Location = "typed by hand"
	token := sess.BeginLocationFetch()
	sess.CancelLocationFetch()

	if sess.Location != "typed by hand" {
		t.Errorf("typed location lost after cancel: %q", sess.Location)
	}
	// A late result for the abandoned fetch must not clobber the restore.
	if sess.ApplyLocationResult(token, "too late") {
		t.Error("result applied after cancel")
	}
	if sess.Location != "typed by hand" {
		t.Errorf("late result overwrote restored location: %q", sess.Location)
	}
}

func TestCommitWithPendingFetch_KeepsPriorLocation(t *testing.T) {
	t.Parallel()

	existing := models.Task{
		ID:              uuid.New(),
		Title:           "Meeting",
		LocationDetails: strPtr("Office 3B"),
	}

	sess := New(&existing)
	sess.BeginLocationFetch()

	// Commit while the fetch is still outstanding: the unanswered fetch
	// must not discard the saved location.
	writer := &fakeWriter{}
	task, err := sess.Commit(writer)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if task.LocationDetails == nil || *task.LocationDetails != "Office 3B" {
		t.Errorf("pending fetch dropped the saved location: got %v", task.LocationDetails)
	}
}

func TestBeginLocationFetch_ClearsStagedLocation(t *testing.T) {
	t.Parallel()

	sess := New(nil)
	sess.Location = "typed by hand"
	sess.BeginLocationFetch()
	if sess.Location != "" {
		t.Errorf("staged location not cleared on fetch: %q", sess.Location)
	}
}

func TestDiscard_CancelsFetchAndLeavesStoreAlone(t *testing.T) {
	t.Parallel()

	sess := New(nil)
	sess.Title = "never saved"
	token := sess.BeginLocationFetch()
	sess.Discard()

	if sess.FetchPending() {
		t.Error("fetch still pending after discard")
	}
	if sess.ApplyLocationResult(token, "late") {
		t.Error("result applied after discard")
	}
}

package commands

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/benvon/taskdesk/internal/config"
	"github.com/benvon/taskdesk/internal/kv"
	"github.com/benvon/taskdesk/internal/logger"
	"github.com/benvon/taskdesk/internal/models"
	"github.com/benvon/taskdesk/internal/store"
)

// ConfigPath is the --config flag value shared by all commands
var ConfigPath string

// App bundles the wired-up stores for one command invocation
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Tasks  *store.TaskStore
	Inbox  *store.InboxStore

	db *kv.Store
}

func openApp() (*App, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := kv.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}

	var seed []models.InboxMessage
	if cfg.SeedInbox {
		seed = store.DefaultInboxMessages(time.Now())
	}

	return &App{
		Config: cfg,
		Logger: log,
		Tasks:  store.NewTaskStore(db, log),
		Inbox:  store.NewInboxStore(db, log, seed),
		db:     db,
	}, nil
}

// Close flushes logs and closes the data file
func (a *App) Close() {
	_ = logger.Sync(a.Logger)
	if err := a.db.Close(); err != nil {
		a.Logger.Warn("failed to close data file", zap.Error(err))
	}
}

// findTask resolves a full id or an unambiguous id prefix to a task
func findTask(a *App, arg string) (models.Task, error) {
	var matches []models.Task
	for _, t := range a.Tasks.List() {
		if strings.HasPrefix(t.ID.String(), strings.ToLower(arg)) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("%q matches %d tasks, use a longer prefix", arg, len(matches))
	}
}

// parseWhen parses the date formats accepted on the command line
func parseWhen(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want RFC3339, '2006-01-02 15:04' or '2006-01-02')", value)
}

func printTask(t models.Task) {
	status := " "
	if t.Completed {
		status = "x"
	}
	fmt.Printf("[%s] %s  %s\n", status, t.ID.String()[:8], t.Title)
	if t.DueDate != nil {
		fmt.Printf("        due: %s\n", t.DueDate.Local().Format("2006-01-02 15:04"))
	}
	if t.LocationDetails != nil {
		fmt.Printf("        at:  %s\n", *t.LocationDetails)
	}
	if t.Notes != nil {
		fmt.Printf("        notes: %s\n", *t.Notes)
	}
}

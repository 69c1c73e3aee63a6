// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/history"
	"github.com/shwilliamson/taskdeck/internal/infra/api"
	"github.com/shwilliamson/taskdeck/internal/infra/config"
	"github.com/shwilliamson/taskdeck/internal/infra/logging"
	"github.com/shwilliamson/taskdeck/internal/store"
)

// Container holds the port implementations and provides factory
// methods for stores and history. Stores are created per scope, never
// as process-wide singletons: each open list gets its own TaskStore
// and, when it needs undo/redo, its own Log.
type Container struct {
	TaskAPI domain.TaskService
	ListAPI domain.ListService
	Clock   domain.Clock
	Logger  *slog.Logger
	Config  *config.Config

	listStore *store.ListStore
}

// New creates a Container from the config file at path (empty = the
// default location).
func New(configPath string) (*Container, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout())
	if err != nil {
		return nil, fmt.Errorf("configure api client: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)

	return &Container{
		TaskAPI: client.Tasks(),
		ListAPI: client.Lists(),
		Clock:   domain.RealClock{},
		Logger:  logger,
		Config:  cfg,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(tasks domain.TaskService, lists domain.ListService, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		TaskAPI: tasks,
		ListAPI: lists,
		Clock:   clock,
		Logger:  logger,
		Config:  config.NewDefault(),
	}
}

// ListStore returns the user-scope list store, created on first use so
// task stores can share it as their side-effect sink.
func (c *Container) ListStore() *store.ListStore {
	if c.listStore == nil {
		c.listStore = store.NewListStore(c.ListAPI, c.Clock, c.Logger)
	}
	return c.listStore
}

// TaskStore creates the task store for one list scope, wired to the
// list store so owning-list side effects land there.
func (c *Container) TaskStore(listID string) *store.TaskStore {
	return store.NewTaskStore(listID, c.TaskAPI, c.Clock, c.Logger).
		WithListSink(c.ListStore())
}

// Tasks creates the recording adapter for one list scope with an
// Action Log attached, for views that offer undo/redo.
func (c *Container) Tasks(listID string) *history.Tasks {
	s := c.TaskStore(listID)
	return history.NewTasks(s, history.NewLog(s, c.Logger), c.Clock)
}

// PlainTasks creates the adapter without a log, for one-shot commands
// where history would not outlive the process anyway.
func (c *Container) PlainTasks(listID string) *history.Tasks {
	return history.NewTasks(c.TaskStore(listID), nil, c.Clock)
}

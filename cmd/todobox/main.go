package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/czhang/todobox/internal/app"
	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/remind"
	"github.com/czhang/todobox/internal/repo"
	"github.com/czhang/todobox/internal/store"
	"github.com/czhang/todobox/internal/viewmodel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "todobox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	sched := remind.NewScheduler()
	defer sched.Stop()

	vm := viewmodel.New(repo.New(s), sched, viewmodel.Options{
		FirstRun: cfg.FirstRun,
		MarkSeeded: func() error {
			cfg.FirstRun = false
			return model.SaveConfig(configPath, cfg)
		},
	})
	if err := vm.Init(context.Background()); err != nil {
		return fmt.Errorf("initializing state: %w", err)
	}

	p := tea.NewProgram(app.New(vm, sched), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

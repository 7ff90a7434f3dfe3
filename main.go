package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tagtime/internal"
	"tagtime/internal/config"
	"tagtime/internal/logging"
	"tagtime/internal/store"
	"tagtime/internal/watch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Environment, cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	repo, err := store.NewRepository(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}

	m, err := internal.NewModel(repo, internal.Options{
		Format: cfg.Format(),
		Logger: logger,
	})
	if err != nil {
		repo.Close()
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())

	w, err := watch.New(cfg.DatabasePath, watch.DefaultDebounce, func() {
		p.Send(internal.MsgRefresh{})
	}, logger)
	if err != nil {
		// The TUI still works without live reload.
		logger.Warn("failed to watch database", zap.Error(err))
	} else {
		defer w.Close()
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			p.Send(internal.MsgTick{})
		}
	}()

	logger.Info("starting", zap.String("database", cfg.DatabasePath))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

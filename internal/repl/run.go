// File: run.go
// Title: REPL Program
// Description: Starts the bubbletea program and wires manifest hot reload.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-11
//
// Change History:
// - 2025-11-11 v0.1.0: Initial implementation

package repl

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/msto63/unilang/unilang"
)

// WatchConfig enables hot reload of command manifests
type WatchConfig struct {
	Files    []string
	Debounce time.Duration
	// Rebuild creates a pipeline from the changed manifests
	Rebuild func() (*unilang.Pipeline, error)
}

// Run starts the REPL and blocks until the user quits or ctx is cancelled.
// A nil watch disables hot reload.
func Run(ctx context.Context, cfg Config, watch *WatchConfig) error {
	model := New(cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch != nil && len(watch.Files) > 0 {
		w, err := NewWatcher(watch.Files, watch.Debounce, cfg.Logger)
		if err != nil {
			return err
		}
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.Run(watchCtx, func(string) {
			p, err := watch.Rebuild()
			program.Send(ReloadMsg{Pipeline: p, Err: err})
		})
	}

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

package tui

import (
	"context"
	"errors"
	"time"

	"folio-cli/internal/site"
	"folio-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Content site.Content
	// ContentPath, when set, is watched and reloaded on change.
	ContentPath string
	// Inbox persists contact requests; nil keeps them in memory only.
	Inbox  *store.Inbox
	Logger *zap.Logger
	Theme  string
	Glyphs string
	Mouse  bool

	clock func() time.Time
	seed  int64
}

// Run starts the interactive page and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, opts)
	if opts.ContentPath != "" {
		ch := make(chan contentMsg)
		m.reloads = ch
		logger := m.logger
		go func() {
			err := site.Watch(ctx, opts.ContentPath, func(c site.Content, err error) {
				select {
				case ch <- contentMsg{content: c, err: err}:
				case <-ctx.Done():
				}
			})
			if err != nil {
				logger.Warn("content watcher stopped", zap.Error(err))
			}
		}()
	}

	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		popts = append(popts, tea.WithMouseAllMotion())
	}
	_, err := tea.NewProgram(m, popts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

package compiler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/buildergen/compiler/gen"
)

// DefaultDebounce is the quiet period after the last change before a new
// round starts.
const DefaultDebounce = 300 * time.Millisecond

// WatchConfig configures Watch.
type WatchConfig struct {
	// Dirs are the directories watched for changes. Defaults to the
	// loading directory, or the current directory.
	Dirs []string
	// Debounce is the quiet period before regenerating. Defaults to
	// DefaultDebounce.
	Debounce time.Duration
	// OnReport receives the outcome of every round.
	OnReport func(*gen.Report, error)
}

// Watch runs Generate once and again whenever a Go source file in the
// watched directories changes, until ctx is done.
//
// Builder files and generated files never trigger a round, so the writes
// of a round do not start the next one.
func Watch(ctx context.Context, cfg *gen.Config, wc *WatchConfig, patterns []string, opts ...Option) error {
	if wc == nil {
		wc = &WatchConfig{}
	}
	debounce := wc.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	dirs := wc.Dirs
	if len(dirs) == 0 {
		dir := LoadConfig(cfg, opts...).Dir
		if dir == "" {
			dir = "."
		}
		dirs = []string{dir}
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("compiler: creating watcher: %w", err)
	}
	defer w.Close()
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("compiler: watching %s: %w", dir, err)
		}
	}

	round := func() {
		report, err := Generate(ctx, cfg, patterns, opts...)
		if wc.OnReport != nil {
			wc.OnReport(report, err)
		}
	}
	round()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !triggers(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			round()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were lost; regenerate to catch up.
				round()
				continue
			}
			return fmt.Errorf("compiler: watching: %w", err)
		}
	}
}

// triggers reports whether a file system event starts a new round.
func triggers(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	switch {
	case !strings.HasSuffix(name, ".go"),
		strings.HasSuffix(name, "_builder.go"),
		strings.HasSuffix(name, "_test.go"),
		strings.HasPrefix(name, "."):
		return false
	}
	return true
}

package speedup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/EvanDorsky/3dprint-gcode-speedup/scanner"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	// events on a file this soon after the watcher wrote it are its own
	ownWriteWindow = 2 * time.Second
)

type pendingFix struct {
	timer *time.Timer
}

// Watcher fixes G-code files as soon as a slicer finishes writing them.
type Watcher struct {
	// OnReport is called from the fixing goroutine after every file.
	OnReport func(Report)

	fixer    FileFixer
	logger   *zap.Logger
	scanner  *scanner.Scanner
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	timers  map[string]*pendingFix
	written map[string]time.Time
	wg      sync.WaitGroup
}

func NewWatcher(fixer FileFixer, logger *zap.Logger, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fixer:    fixer,
		logger:   logger,
		scanner:  scanner.New("", scanner.Extensions...),
		debounce: debounce,
		watcher:  fw,
		timers:   make(map[string]*pendingFix),
		written:  make(map[string]time.Time),
	}, nil
}

// Add watches dir and its subdirectories, hidden ones excluded.
func (w *Watcher) Add(dir string) error {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

// Run handles events until ctx is done, then waits for in-flight files and
// closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Error("error watching new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if !w.scanner.IsTarget(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if at, ok := w.written[event.Name]; ok && time.Since(at) < ownWriteWindow {
		return
	}

	// the slicer writes in chunks; fix once it has been quiet for a while
	if p, ok := w.timers[event.Name]; ok && p.timer.Stop() {
		p.timer.Reset(w.debounce)
		return
	}
	w.wg.Add(1)
	path := event.Name
	p := &pendingFix{}
	p.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.process(path, p)
	})
	w.timers[path] = p
}

func (w *Watcher) process(path string, p *pendingFix) {
	w.mu.Lock()
	if w.timers[path] == p {
		delete(w.timers, path)
	}
	w.written[path] = time.Now()
	w.mu.Unlock()

	result, err := w.fixer.Fix(path)

	w.mu.Lock()
	if err != nil {
		// nothing was written, the slicer's next write must be picked up
		delete(w.written, path)
	} else {
		w.written[path] = time.Now()
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("error fixing file", zap.String("file", path), zap.Error(err))
	}

	if w.OnReport != nil {
		w.OnReport(Report{Path: path, Result: result, Err: err})
	}
}

func (w *Watcher) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *Watcher) close() {
	w.mu.Lock()
	for path, p := range w.timers {
		if p.timer.Stop() {
			delete(w.timers, path)
			w.wg.Done()
		}
	}
	w.mu.Unlock()

	w.wg.Wait()
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing watcher", zap.Error(err))
	}
}

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDebounce batches the bursts of events editors produce on save
const DefaultWatchDebounce = 200 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk and hands
// every successfully parsed result to a callback.
//
// The parent directory is watched rather than the file itself, since many
// editors save by writing a temporary file and renaming it over the original.
type Watcher struct {
	mu       sync.Mutex
	service  ConfigService
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	debounce time.Duration
	onChange func(*Config)
	onError  func(error)

	cancel  context.CancelFunc
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the service's file. onChange runs on the
// watcher goroutine.
func NewWatcher(service ConfigService, log *zap.Logger, onChange func(*Config), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		service:  service,
		watcher:  fw,
		log:      log,
		debounce: DefaultWatchDebounce,
		onChange: onChange,
		onError:  onError,
	}, nil
}

// SetDebounce changes the settle delay; call before Start
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Dir(w.service.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.log.Info("Watching content file", zap.String("path", w.service.Path()))

	ctx, w.cancel = context.WithCancel(ctx)
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.cancel()
	done := w.doneCh
	w.mu.Unlock()

	<-done
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("Closing content watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	target := filepath.Clean(w.service.Path())
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("Content file event", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("Content watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.service.Reload()
	if err != nil {
		w.log.Warn("Content reload failed", zap.Error(err))
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.log.Info("Content reloaded", zap.Int("sliders", len(cfg.Sliders)))
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

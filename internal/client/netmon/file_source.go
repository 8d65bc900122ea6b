package netmon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/iudanet/fieldsync/internal/models"
)

var errEmptyState = errors.New("state file is empty")

// FileSource is the generic online/offline signal: a state file written by
// the platform (for example a NetworkManager dispatcher hook).
// Content is "online [type]" or "offline". A missing file means online.
type FileSource struct {
	logger *slog.Logger
	path   string
}

// NewFileSource создает источник на основе файла состояния
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{
		path:   filepath.Clean(path),
		logger: logger,
	}
}

// Name returns "file"
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the watched state file
func (s *FileSource) Path() string {
	return s.path
}

// Current reads the state file once
func (s *FileSource) Current(ctx context.Context) (models.ConnectivityState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Online(models.ConnectionUnknown), nil
		}
		return models.ConnectivityState{}, fmt.Errorf("failed to read state file: %w", err)
	}
	return ParseState(string(data))
}

// Watch следит за каталогом файла состояния, чтобы пережить атомарную замену файла
func (s *FileSource) Watch(ctx context.Context, fn func(models.ConnectivityState)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: failed to create fsnotify watcher: %w", ErrSourceUnavailable, err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("%w: failed to watch %s: %w", ErrSourceUnavailable, dir, err)
	}

	s.logger.Debug("Watching connectivity state file", "path", s.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			state, err := s.Current(ctx)
			if err != nil {
				// Файл мог быть прочитан между truncate и write
				s.logger.Debug("Ignoring unreadable state file", "path", s.path, "error", err)
				continue
			}
			fn(state)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("State file watcher error", "path", s.path, "error", err)
		}
	}
}

// Close is a no-op; the watcher is released when Watch returns
func (s *FileSource) Close() error {
	return nil
}

// ParseState parses "online [type]" / "offline" state strings
func ParseState(content string) (models.ConnectivityState, error) {
	fields := strings.Fields(strings.ToLower(content))
	if len(fields) == 0 {
		return models.ConnectivityState{}, errEmptyState
	}

	switch fields[0] {
	case "offline", "down", "disconnected":
		return models.Offline(), nil
	case "online", "up", "connected":
		if len(fields) > 1 {
			return models.Online(fields[1]), nil
		}
		return models.Online(models.ConnectionUnknown), nil
	}
	return models.ConnectivityState{}, fmt.Errorf("unknown connectivity state %q", fields[0])
}

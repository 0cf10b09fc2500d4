package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileStorage persists the favorites collection as a JSON array in a
// single file, the moral equivalent of a key-value blob under a fixed
// key. A missing file reads as an empty collection.
type FileStorage struct {
	path   string
	logger *zap.Logger

	mu        sync.Mutex
	lastSaved []byte
}

func NewFileStorage(path string, logger *zap.Logger) *FileStorage {
	return &FileStorage{
		path:   filepath.Clean(path),
		logger: logger,
	}
}

func (f *FileStorage) Load() ([]Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}

	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode favorites file: %w", err)
	}

	return snapshots, nil
}

func (f *FileStorage) Save(snapshots []Snapshot) error {
	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}

	f.lastSaved = data

	return nil
}

// Watch invokes onChange whenever the favorites file is modified by
// someone other than this storage instance, for example another
// process sharing the same profile. Writes issued through Save are
// recognized by content and skipped. The watcher stops when ctx is
// cancelled.
func (f *FileStorage) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create favorites watcher: %w", err)
	}

	// Watch the directory: editors and other writers often replace the
	// file instead of writing it in place.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch favorites directory: %w", err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != f.path {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
					continue
				}

				if f.ownWrite() {
					continue
				}

				f.logger.Info("favorites file changed externally")
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				f.logger.Warn("favorites watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}

func (f *FileStorage) ownWrite() bool {
	f.mu.Lock()
	lastSaved := f.lastSaved
	f.mu.Unlock()

	if lastSaved == nil {
		return false
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return false
	}

	return bytes.Equal(data, lastSaved)
}

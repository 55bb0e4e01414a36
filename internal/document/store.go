package document

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/idursun/rebase-edit/internal/edit"
)

// Store is the authoritative text buffer over the instruction file. The
// in-memory text is the source of truth between saves; external writes to the
// file are folded back in by the watcher. Every observed change, including
// the store's own edits, is announced on Changes so the sync loop can rebuild
// its model.
type Store struct {
	path string

	mu   sync.Mutex
	text string

	changes chan struct{}
}

func NewStore(path string) (*Store, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:    path,
		text:    string(content),
		changes: make(chan struct{}, 1),
	}, nil
}

// Text returns the current document snapshot.
func (s *Store) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Changes delivers one (coalesced) signal per observed text change.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Apply applies a batch of edits atomically. All ranges refer to the snapshot
// the edits were planned against.
func (s *Store) Apply(edits []edit.TextEdit) {
	if len(edits) == 0 {
		return
	}
	s.mu.Lock()
	s.text = edit.Apply(s.text, edits)
	s.mu.Unlock()
	s.notify()
}

// Save persists the in-memory text to the file.
func (s *Store) Save() error {
	s.mu.Lock()
	text := s.text
	s.mu.Unlock()
	return os.WriteFile(s.path, []byte(text), 0o644)
}

// Reload reads the file and, if its content differs from the in-memory text,
// adopts it and announces a change. A save's own watcher echo reloads
// identical content and is dropped here.
func (s *Store) Reload() {
	content, err := os.ReadFile(s.path)
	if err != nil {
		// The file disappearing mid-rebase is the executor's business,
		// not ours.
		log.Println("reload failed:", err)
		return
	}
	s.mu.Lock()
	changed := s.text != string(content)
	if changed {
		s.text = string(content)
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Watch observes the file for external edits until ctx is done. The parent
// directory is watched because editors typically replace the file rather
// than write it in place.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}
	base := filepath.Base(s.path)
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
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("watch error:", err)
			}
		}
	}()
	return nil
}

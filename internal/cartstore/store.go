// Package cartstore persists the cart as a single JSON document on disk and
// watches it for writes from other storefront processes, the way browser
// tabs share one localStorage key and hear about each other through storage
// events.
package cartstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"vitrineshop.org/vitrine-web/internal/cart"
)

// DocumentName is the well-known key the cart document lives under.
const DocumentName = "cart.json"

// FileStore implements cart.Repository over one JSON file. The document is
// the serialized ordered line sequence, no envelope and no schema version;
// an absent or corrupt file reads as the empty cart.
type FileStore struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu        sync.Mutex
	persisted bool   // a document has been observed or written on disk
	lastSeen  []byte // raw bytes of the last state this store wrote or observed
	subs      map[int]func(cart.State)
	nextSub   int
}

// Open creates a store rooted at dir and starts the change watcher. The
// directory is created if missing.
func Open(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cartstore: mkdir %s: %w", dir, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cartstore: watcher: %w", err)
	}
	// Watch the directory, not the file: the document may not exist yet and
	// may be replaced rather than rewritten.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("cartstore: watch %s: %w", dir, err)
	}
	s := &FileStore{
		path:    filepath.Join(dir, DocumentName),
		watcher: watcher,
		done:    make(chan struct{}),
		subs:    map[int]func(cart.State){},
	}
	if raw, err := os.ReadFile(s.path); err == nil {
		s.persisted = true
		s.lastSeen = raw
	}
	go s.watch()
	return s, nil
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Load reads the persisted cart. A missing document is the empty cart; a
// document that fails to parse degrades to empty with a logged warning
// rather than failing the caller.
func (s *FileStore) Load() cart.State {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("cartstore: read %s: %v", s.path, err)
		}
		return cart.State{}
	}
	return decode(s.path, raw)
}

// Save serializes and writes the whole document. The very first save of an
// empty state is skipped so a fresh handle cannot clobber a value another
// process wrote before our first read.
func (s *FileStore) Save(state cart.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.persisted && len(state) == 0 {
		return nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("cartstore: encode: %w", err)
	}
	// Write to a sibling temp file and rename it over the document, so a
	// concurrent reader never observes a torn write. The temp name does not
	// match DocumentName, so watchers ignore it until the rename lands.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), DocumentName+"-*")
	if err != nil {
		return fmt.Errorf("cartstore: temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cartstore: chmod %s: %w", tmp.Name(), err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cartstore: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cartstore: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cartstore: replace %s: %w", s.path, err)
	}
	s.persisted = true
	s.lastSeen = raw
	return nil
}

// Subscribe registers a callback for changes made by external writers. Own
// saves are suppressed; same-process consumers are updated by the writing
// component directly.
func (s *FileStore) Subscribe(fn func(cart.State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close stops the watcher. Pending subscriptions receive no further calls.
func (s *FileStore) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *FileStore) watch() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != DocumentName {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			s.reloadAndNotify()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("cartstore: watch: %v", err)
		}
	}
}

// reloadAndNotify reads the document and fans the new state out to
// subscribers. Events whose content matches what this store last wrote or
// observed are dropped: a writer does not hear its own save, and duplicate
// filesystem events for one write collapse into a single notification.
func (s *FileStore) reloadAndNotify() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			raw = nil
		} else {
			log.Printf("cartstore: reload %s: %v", s.path, err)
			return
		}
	}

	s.mu.Lock()
	if bytes.Equal(raw, s.lastSeen) {
		s.mu.Unlock()
		return
	}
	s.lastSeen = raw
	s.persisted = raw != nil
	subs := make([]func(cart.State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	state := decode(s.path, raw)
	for _, fn := range subs {
		fn(state)
	}
}

func decode(path string, raw []byte) cart.State {
	if len(raw) == 0 {
		return cart.State{}
	}
	var state cart.State
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("cartstore: corrupt document %s, treating as empty: %v", path, err)
		return cart.State{}
	}
	return state
}

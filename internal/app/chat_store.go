package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	catalogFile = "chats_metadata.json"
	chatsDir    = "chats"
)

// ChatStore owns the on-disk chat history under a single data directory. The
// catalog file holds per-session metadata; each session's messages live in
// their own record file, which is the sole source of truth for content.
//
// A store handle is single-writer: open it once at startup and pass it around.
type ChatStore struct {
	root     string
	catalog  map[string]*catalogEntry
	activeID string
}

// OpenChatStore loads (or initializes) the store rooted at dir. A store with
// an empty catalog gets an initial session so the caller always has somewhere
// to append.
func OpenChatStore(dir string) (*ChatStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, chatsDir), 0o755); err != nil {
		return nil, &StorageError{Op: "write", Path: dir, Err: err}
	}

	s := &ChatStore{root: dir, catalog: map[string]*catalogEntry{}}

	path := filepath.Join(dir, catalogFile)
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	if err == nil {
		if jsonErr := json.Unmarshal(data, &s.catalog); jsonErr != nil {
			return nil, &StorageError{Op: "read", Path: path, Err: jsonErr}
		}
	}

	if len(s.catalog) == 0 {
		if _, err := s.Create(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Root returns the data directory the store was opened on.
func (s *ChatStore) Root() string {
	return s.root
}

// Create starts a new empty session, makes it active, and persists both the
// record file and the catalog before returning.
func (s *ChatStore) Create() (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	title := defaultChatTitle(len(s.catalog) + 1)

	if err := s.writeRecord(id, &chatRecord{Messages: []Message{}}); err != nil {
		return "", err
	}
	s.catalog[id] = &catalogEntry{CreatedAt: now, UpdatedAt: now, Title: title}
	if err := s.writeCatalog(); err != nil {
		delete(s.catalog, id)
		return "", err
	}
	s.activeID = id
	return id, nil
}

// Append adds one message to the session and bumps its updated_at. An empty
// id means the active session. A missing record file for a known session is
// tolerated and treated as an empty transcript.
func (s *ChatStore) Append(id, role, content string) error {
	if id == "" {
		if s.activeID == "" {
			return ErrNoActiveChat
		}
		id = s.activeID
	}
	entry, ok := s.catalog[id]
	if !ok {
		return ErrNotFound
	}

	rec, err := s.readRecord(id)
	if err != nil {
		var serr *StorageError
		if errors.As(err, &serr) && errors.Is(serr.Err, os.ErrNotExist) {
			rec = &chatRecord{Messages: []Message{}}
		} else {
			return err
		}
	}

	rec.Messages = append(rec.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err := s.writeRecord(id, rec); err != nil {
		return err
	}
	entry.UpdatedAt = time.Now().UTC()
	return s.writeCatalog()
}

// Messages returns the full transcript of a session without changing the
// active session.
func (s *ChatStore) Messages(id string) ([]Message, error) {
	if _, ok := s.catalog[id]; !ok {
		return nil, ErrNotFound
	}
	rec, err := s.readRecord(id)
	if err != nil {
		var serr *StorageError
		if errors.As(err, &serr) && errors.Is(serr.Err, os.ErrNotExist) {
			return []Message{}, nil
		}
		return nil, err
	}
	return rec.Messages, nil
}

// Load makes the session active and returns its transcript. Unlike Messages,
// a session whose record file has gone missing is reported as ErrNotFound.
func (s *ChatStore) Load(id string) ([]Message, error) {
	if _, ok := s.catalog[id]; !ok {
		return nil, ErrNotFound
	}
	rec, err := s.readRecord(id)
	if err != nil {
		var serr *StorageError
		if errors.As(err, &serr) && errors.Is(serr.Err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.activeID = id
	return rec.Messages, nil
}

// Rename sets the session title and persists the catalog.
func (s *ChatStore) Rename(id, title string) error {
	entry, ok := s.catalog[id]
	if !ok {
		return ErrNotFound
	}
	entry.Title = title
	entry.UpdatedAt = time.Now().UTC()
	return s.writeCatalog()
}

// Delete removes the session record and its catalog entry. Deleting the
// active session leaves the store with no active session. A missing record
// file is tolerated; a missing catalog entry is ErrNotFound.
func (s *ChatStore) Delete(id string) error {
	if _, ok := s.catalog[id]; !ok {
		return ErrNotFound
	}
	path := s.recordPath(id)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Op: "delete", Path: path, Err: err}
	}
	delete(s.catalog, id)
	if err := s.writeCatalog(); err != nil {
		return err
	}
	if s.activeID == id {
		s.activeID = ""
	}
	return nil
}

// List returns one ChatInfo per session, served from the catalog alone. Order
// is unspecified; callers sort for display.
func (s *ChatStore) List() []ChatInfo {
	out := make([]ChatInfo, 0, len(s.catalog))
	for id, entry := range s.catalog {
		out = append(out, ChatInfo{ID: id, Title: entry.Title, UpdatedAt: entry.UpdatedAt})
	}
	return out
}

// Active returns the active session id, or "" when none is active.
func (s *ChatStore) Active() string {
	return s.activeID
}

// Title returns the current title of a session.
func (s *ChatStore) Title(id string) (string, error) {
	entry, ok := s.catalog[id]
	if !ok {
		return "", ErrNotFound
	}
	return entry.Title, nil
}

func (s *ChatStore) recordPath(id string) string {
	return filepath.Join(s.root, chatsDir, id+".json")
}

func (s *ChatStore) readRecord(id string) (*chatRecord, error) {
	path := s.recordPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	var rec chatRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return &rec, nil
}

func (s *ChatStore) writeRecord(id string, rec *chatRecord) error {
	path := s.recordPath(id)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (s *ChatStore) writeCatalog() error {
	path := filepath.Join(s.root, catalogFile)
	data, err := json.MarshalIndent(s.catalog, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

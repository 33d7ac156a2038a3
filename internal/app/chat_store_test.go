package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *ChatStore {
	t.Helper()
	s, err := OpenChatStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenChatStore: %v", err)
	}
	return s
}

func TestOpenCreatesInitialSession(t *testing.T) {
	s := openTestStore(t)
	if s.Active() == "" {
		t.Fatal("new store has no active session")
	}
	infos := s.List()
	if len(infos) != 1 {
		t.Fatalf("new store lists %d sessions, want 1", len(infos))
	}
	if infos[0].Title != "Chat 1" {
		t.Fatalf("initial title = %q, want %q", infos[0].Title, "Chat 1")
	}
}

func TestAppendLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	id, err := s.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Append(id, RoleUser, "hi"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	msgs, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Content != "hi" {
		t.Fatalf("unexpected message: %+v", msgs[0])
	}
	if msgs[0].Timestamp.IsZero() {
		t.Fatal("appended message has no timestamp")
	}
}

func TestAppendToActiveSession(t *testing.T) {
	s := openTestStore(t)
	active := s.Active()
	if err := s.Append("", RoleUser, "via active pointer"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	msgs, err := s.Messages(active)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "via active pointer" {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
}

func TestAppendErrors(t *testing.T) {
	s := openTestStore(t)
	if err := s.Append("missing-id", RoleUser, "x"); err != ErrNotFound {
		t.Fatalf("Append unknown id: %v, want ErrNotFound", err)
	}

	if err := s.Delete(s.Active()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Append("", RoleUser, "x"); err != ErrNoActiveChat {
		t.Fatalf("Append with no active session: %v, want ErrNoActiveChat", err)
	}
}

func TestAppendToleratesMissingRecord(t *testing.T) {
	s := openTestStore(t)
	id := s.Active()
	if err := os.Remove(filepath.Join(s.Root(), chatsDir, id+".json")); err != nil {
		t.Fatalf("remove record: %v", err)
	}
	if err := s.Append(id, RoleUser, "recovered"); err != nil {
		t.Fatalf("Append after record loss: %v", err)
	}
	msgs, err := s.Messages(id)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "recovered" {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
}

func TestDeleteActivePointerSemantics(t *testing.T) {
	s := openTestStore(t)
	a := s.Active()
	b, err := s.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Active() != b {
		t.Fatalf("active = %q, want %q", s.Active(), b)
	}

	// Deleting a non-active session leaves the pointer alone.
	if err := s.Delete(a); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Active() != b {
		t.Fatalf("active changed to %q after deleting other session", s.Active())
	}

	// Deleting the active session clears it.
	if err := s.Delete(b); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Active() != "" {
		t.Fatalf("active = %q after deleting active session, want empty", s.Active())
	}

	if err := s.Delete(b); err != ErrNotFound {
		t.Fatalf("Delete deleted session: %v, want ErrNotFound", err)
	}
}

func TestRename(t *testing.T) {
	s := openTestStore(t)
	id := s.Active()
	if err := s.Rename(id, "My Topic"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	title, err := s.Title(id)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "My Topic" {
		t.Fatalf("title = %q", title)
	}
	if err := s.Rename("missing", "x"); err != ErrNotFound {
		t.Fatalf("Rename unknown id: %v, want ErrNotFound", err)
	}
}

func TestListContainsAllSessions(t *testing.T) {
	s := openTestStore(t)
	first := s.Active()
	// Guard against the two creations landing on the same clock reading.
	time.Sleep(2 * time.Millisecond)
	second, err := s.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	infos := s.List()
	if len(infos) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(infos))
	}
	byID := map[string]ChatInfo{}
	for _, info := range infos {
		byID[info.ID] = info
	}
	if byID[first].Title != "Chat 1" || byID[second].Title != "Chat 2" {
		t.Fatalf("unexpected titles: %+v", byID)
	}
	for id, info := range byID {
		if info.UpdatedAt.IsZero() {
			t.Fatalf("session %s has zero updated_at", id)
		}
	}
	if byID[first].UpdatedAt.Equal(byID[second].UpdatedAt) {
		t.Fatalf("sessions share updated_at %v", byID[first].UpdatedAt)
	}
}

func TestStoreReopenPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenChatStore(dir)
	if err != nil {
		t.Fatalf("OpenChatStore: %v", err)
	}
	id := s.Active()
	if err := s.Append(id, RoleUser, "persisted"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Rename(id, "Kept"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	s2, err := OpenChatStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	title, err := s2.Title(id)
	if err != nil {
		t.Fatalf("Title after reopen: %v", err)
	}
	if title != "Kept" {
		t.Fatalf("title after reopen = %q", title)
	}
	msgs, err := s2.Load(id)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "persisted" {
		t.Fatalf("transcript after reopen: %+v", msgs)
	}
}

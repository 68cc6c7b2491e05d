package store

import (
	"testing"

	"github.com/annavogt-hci/ascend/internal/models"
)

func TestSessionStoreLifecycle(t *testing.T) {
	s := NewSessionStore()

	if s.Exists("ABCD") {
		t.Error("empty store should not contain ABCD")
	}
	sess := &models.Session{Code: "ABCD", Players: []string{"p1"}}
	s.Set("ABCD", sess)

	if !s.Exists("ABCD") {
		t.Error("ABCD should exist after Set")
	}
	got, ok := s.Get("ABCD")
	if !ok || got != sess {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
	// Set indexes existing participants.
	if resolved, ok := s.Resolve("p1"); !ok || resolved != sess {
		t.Error("p1 should resolve to the session")
	}

	s.Index("p2", "ABCD")
	if resolved, ok := s.Resolve("p2"); !ok || resolved != sess {
		t.Error("p2 should resolve after Index")
	}

	s.Unindex("p2")
	if _, ok := s.Resolve("p2"); ok {
		t.Error("p2 should not resolve after Unindex")
	}

	s.Delete("ABCD")
	if s.Exists("ABCD") {
		t.Error("ABCD should be gone after Delete")
	}
	if _, ok := s.Resolve("p1"); ok {
		t.Error("Delete should drop index entries for the room")
	}
}

func TestResolveUnknownIdentity(t *testing.T) {
	s := NewSessionStore()
	if _, ok := s.Resolve("nobody"); ok {
		t.Error("unknown identity should not resolve")
	}
}

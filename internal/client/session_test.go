package client

import (
	"path/filepath"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := LoadSession(path)
	if err != nil {
		t.Fatalf("load fresh session: %v", err)
	}
	if s.LoggedIn() {
		t.Fatal("a missing token file means logged out")
	}

	if err := s.Save("abc.def.ghi"); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A new process loads the persisted token once at startup
	s2, err := LoadSession(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s2.LoggedIn() || s2.Token() != "abc.def.ghi" {
		t.Fatalf("token not persisted, got %q", s2.Token())
	}

	s2.Clear()
	if s2.LoggedIn() {
		t.Fatal("clear must drop the token in memory")
	}
	s3, _ := LoadSession(path)
	if s3.LoggedIn() {
		t.Fatal("clear must drop the token on disk")
	}
}

package client

import (
	"os"
	"path/filepath"
	"strings"
)

// Session holds the authentication token as explicit process-scoped state:
// loaded once at startup from the token file, attached to outgoing calls,
// cleared on logout or on any authentication failure.
type Session struct {
	path  string
	token string
}

// LoadSession reads the persisted token, if any. A missing file means a
// logged-out session, not an error.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) LoggedIn() bool {
	return s.token != ""
}

// Save persists a freshly issued token.
func (s *Session) Save(token string) error {
	s.token = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear drops the token, both in memory and on disk.
func (s *Session) Clear() {
	s.token = ""
	os.Remove(s.path)
}

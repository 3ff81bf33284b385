package client

import (
    "encoding/json"
    "os"
    "path/filepath"
    "sync"
)

// SessionStore holds the bearer token and role of the signed-in user.
// Implementations must be safe for concurrent use. Observers registered
// with Subscribe fire on every change, including Clear, so UI layers can
// react to a login or a forced logout without polling.
type SessionStore interface {
    // Token returns the current access token, or "" when signed out.
    Token() string
    // Role returns the current role ("buyer" or "seller"), or "".
    Role() string
    // Set stores a token/role pair. Both are written together: a session
    // is never observable with a token but no role.
    Set(token, role string) error
    // Clear removes the session.
    Clear() error
    // Subscribe registers fn to run after every change. The returned
    // function removes the subscription.
    Subscribe(fn func(token, role string)) (unsubscribe func())
}

// MemorySessionStore keeps the session in process memory. It is the
// default store and the right choice for tests and short-lived tools.
type MemorySessionStore struct {
    mu    sync.RWMutex
    token string
    role  string

    subMu  sync.Mutex
    nextID int
    subs   map[int]func(token, role string)
}

func NewMemorySessionStore() *MemorySessionStore {
    return &MemorySessionStore{subs: map[int]func(string, string){}}
}

func (s *MemorySessionStore) Token() string {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.token
}

func (s *MemorySessionStore) Role() string {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.role
}

func (s *MemorySessionStore) Set(token, role string) error {
    s.mu.Lock()
    s.token, s.role = token, role
    s.mu.Unlock()
    s.notify(token, role)
    return nil
}

func (s *MemorySessionStore) Clear() error {
    return s.Set("", "")
}

func (s *MemorySessionStore) Subscribe(fn func(token, role string)) func() {
    s.subMu.Lock()
    defer s.subMu.Unlock()
    id := s.nextID
    s.nextID++
    s.subs[id] = fn
    return func() {
        s.subMu.Lock()
        defer s.subMu.Unlock()
        delete(s.subs, id)
    }
}

func (s *MemorySessionStore) notify(token, role string) {
    s.subMu.Lock()
    fns := make([]func(string, string), 0, len(s.subs))
    for _, fn := range s.subs {
        fns = append(fns, fn)
    }
    s.subMu.Unlock()
    for _, fn := range fns {
        fn(token, role)
    }
}

// FileSessionStore persists the session as a small JSON file so a CLI
// survives restarts without re-login. Reads and observers go through an
// embedded MemorySessionStore; writes additionally rewrite the file.
type FileSessionStore struct {
    mem  *MemorySessionStore
    path string
    mu   sync.Mutex // serializes file writes
}

type sessionFile struct {
    Token string `json:"access_token"`
    Role  string `json:"role"`
}

// NewFileSessionStore loads any previously saved session from path. A
// missing file starts signed out; a corrupt file is treated the same.
func NewFileSessionStore(path string) (*FileSessionStore, error) {
    s := &FileSessionStore{mem: NewMemorySessionStore(), path: path}
    raw, err := os.ReadFile(path)
    if err != nil {
        if os.IsNotExist(err) {
            return s, nil
        }
        return nil, err
    }
    var f sessionFile
    if err := json.Unmarshal(raw, &f); err == nil {
        _ = s.mem.Set(f.Token, f.Role)
    }
    return s, nil
}

func (s *FileSessionStore) Token() string { return s.mem.Token() }
func (s *FileSessionStore) Role() string  { return s.mem.Role() }

func (s *FileSessionStore) Set(token, role string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if token == "" && role == "" {
        if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
            return err
        }
    } else {
        raw, err := json.Marshal(sessionFile{Token: token, Role: role})
        if err != nil {
            return err
        }
        if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
            return err
        }
        if err := os.WriteFile(s.path, raw, 0o600); err != nil {
            return err
        }
    }
    return s.mem.Set(token, role)
}

func (s *FileSessionStore) Clear() error { return s.Set("", "") }

func (s *FileSessionStore) Subscribe(fn func(token, role string)) func() {
    return s.mem.Subscribe(fn)
}

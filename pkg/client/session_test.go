package client_test

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/Nihihitik/car-dealership/pkg/client"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
    path := filepath.Join(t.TempDir(), "session.json")

    s, err := client.NewFileSessionStore(path)
    if err != nil {
        t.Fatalf("open store: %v", err)
    }
    if s.Token() != "" || s.Role() != "" {
        t.Fatalf("fresh store not empty: %q %q", s.Token(), s.Role())
    }

    if err := s.Set("tok-123", "buyer"); err != nil {
        t.Fatalf("set: %v", err)
    }

    // A new store over the same file sees the saved session.
    reopened, err := client.NewFileSessionStore(path)
    if err != nil {
        t.Fatalf("reopen store: %v", err)
    }
    if reopened.Token() != "tok-123" || reopened.Role() != "buyer" {
        t.Fatalf("session did not survive reopen: %q %q", reopened.Token(), reopened.Role())
    }

    if err := reopened.Clear(); err != nil {
        t.Fatalf("clear: %v", err)
    }
    if _, err := os.Stat(path); !os.IsNotExist(err) {
        t.Fatalf("session file still present after clear")
    }
}

func TestFileSessionStoreCorruptFileStartsSignedOut(t *testing.T) {
    path := filepath.Join(t.TempDir(), "session.json")
    if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
        t.Fatal(err)
    }
    s, err := client.NewFileSessionStore(path)
    if err != nil {
        t.Fatalf("open store: %v", err)
    }
    if s.Token() != "" {
        t.Fatalf("corrupt file produced a token: %q", s.Token())
    }
}

func TestSessionStoreSubscribe(t *testing.T) {
    s := client.NewMemorySessionStore()

    var gotToken, gotRole string
    calls := 0
    unsub := s.Subscribe(func(token, role string) {
        calls++
        gotToken, gotRole = token, role
    })

    if err := s.Set("T", "seller"); err != nil {
        t.Fatal(err)
    }
    if calls != 1 || gotToken != "T" || gotRole != "seller" {
        t.Fatalf("observer saw calls=%d token=%q role=%q", calls, gotToken, gotRole)
    }

    // Clear notifies with empty values: token and role vanish together.
    if err := s.Clear(); err != nil {
        t.Fatal(err)
    }
    if calls != 2 || gotToken != "" || gotRole != "" {
        t.Fatalf("observer saw calls=%d token=%q role=%q after clear", calls, gotToken, gotRole)
    }

    unsub()
    if err := s.Set("U", "buyer"); err != nil {
        t.Fatal(err)
    }
    if calls != 2 {
        t.Fatalf("observer fired after unsubscribe: calls=%d", calls)
    }
}

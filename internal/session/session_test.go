package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// mapChecker is a CredentialChecker backed by a plain map, for tests.
type mapChecker map[string]string

func (m mapChecker) Check(username, credential string) (bool, error) {
	pass, ok := m[username]
	return ok && pass == credential, nil
}

// failingChecker always returns an error, simulating a broken principal
// source.
type failingChecker struct{}

func (failingChecker) Check(username, credential string) (bool, error) {
	return false, errors.New("principal source down")
}

func TestLoginRoundTrip(t *testing.T) {
	a := NewAuthority(mapChecker{"admin": "admin123"})

	token, err := a.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(token) != tokenLength*2 {
		t.Errorf("token length = %d, want %d hex chars", len(token), tokenLength*2)
	}

	username, ok := a.Authenticate(token)
	if !ok {
		t.Fatal("Authenticate: expected valid session")
	}
	if username != "admin" {
		t.Errorf("Authenticate = %q, want %q", username, "admin")
	}

	a.Logout(token)
	if _, ok := a.Authenticate(token); ok {
		t.Error("Authenticate after Logout: expected invalid session")
	}

	// Double logout must not fail or panic.
	a.Logout(token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	a := NewAuthority(mapChecker{"admin": "admin123"})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin123"},
		{"empty credential", "admin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Login(tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginCheckerFailure(t *testing.T) {
	a := NewAuthority(failingChecker{})

	_, err := a.Login("admin", "admin123")
	if err == nil {
		t.Fatal("expected error from failing checker")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("checker failure must not masquerade as bad credentials")
	}
}

func TestTokensAreUnique(t *testing.T) {
	a := NewAuthority(mapChecker{"admin": "admin123"})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := a.Login("admin", "admin123")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token minted: %s", token)
		}
		seen[token] = true
	}
}

// TestConcurrentAccess hammers the authority from many goroutines to make
// the race detector verify the internal synchronization.
func TestConcurrentAccess(t *testing.T) {
	creds := mapChecker{}
	for i := 0; i < 10; i++ {
		creds[fmt.Sprintf("user%d", i)] = "pw"
	}
	a := NewAuthority(creds)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user%d", i)
			for j := 0; j < 50; j++ {
				token, err := a.Login(user, "pw")
				if err != nil {
					t.Errorf("Login: %v", err)
					return
				}
				if got, ok := a.Authenticate(token); !ok || got != user {
					t.Errorf("Authenticate = %q, %v; want %q, true", got, ok, user)
					return
				}
				a.Logout(token)
				a.Logout(token)
			}
		}(i)
	}
	wg.Wait()
}

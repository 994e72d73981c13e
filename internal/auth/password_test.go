package auth

import "testing"

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "valid", raw: "Vault.User", want: "vault.user"},
		{name: "trim", raw: "  a-user  ", want: "a-user"},
		{name: "invalid chars", raw: "bad space", wantErr: true},
		{name: "leading dot", raw: ".hidden", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUsername(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("NormalizeUsername(%q)=%q want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password-123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !VerifyPassword(hash, "password-123") {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashPasswordRejectsShort(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestSessionTokens(t *testing.T) {
	one, err := NewSessionToken()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	two, err := NewSessionToken()
	if err != nil {
		t.Fatalf("second token: %v", err)
	}
	if one == two {
		t.Fatal("expected unique tokens")
	}
	if len(one) != sessionTokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", sessionTokenBytes*2, len(one))
	}
	if HashSessionToken(one) == HashSessionToken(two) {
		t.Fatal("expected distinct token hashes")
	}
	if HashSessionToken(one) != HashSessionToken(one) {
		t.Fatal("expected stable token hash")
	}
}

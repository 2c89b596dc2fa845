package auth

import (
	"testing"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "hunter2hunter2"},
		{name: "symbols", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode", password: "пароль-密码-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Error("Hash() returned the plaintext password")
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() rejected the correct password")
			}
			if hasher.Verify(tt.password+"x", hash) {
				t.Error("Verify() accepted a wrong password")
			}
		})
	}
}

func TestPasswordHasher_HashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("same password 123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same password 123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	domain "github.com/example/task-dashboard/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "users_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return NewAuthService(
		NewUserRepository(db),
		NewPasswordHasher(),
		NewJWTManager(DefaultJWTConfig()),
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() should assign an id")
	}
	if user.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", user.Name)
	}
	if user.PasswordHash == "correct horse battery" {
		t.Error("Register() stored the plaintext password")
	}

	tokens, err := svc.Login(ctx, "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Login() returned empty tokens")
	}

	// The access token resolves back to the registered user.
	claims, err := svc.ValidateToken(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "missing display name",
			email:    "a@example.com",
			password: "long enough",
			wantErr:  ErrNameRequired,
		},
		{
			name:     "bad email",
			userName: "A",
			email:    "not-an-email",
			password: "long enough",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "short password",
			userName: "A",
			email:    "a@example.com",
			password: "short",
			wantErr:  ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "long enough"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(ctx, "Other", "ada@example.com", "also long enough")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() error = %v, want %v", err, ErrUserExists)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "long enough"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "long enough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v, want %v", err, ErrInvalidCredentials)
	}
}

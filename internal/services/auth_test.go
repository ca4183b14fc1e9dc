package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/types"
)

func testAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&types.User{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	userRepo := repos.NewUserRepo(gdb, log)
	return NewAuthService(gdb, log, userRepo, "test-secret", ttl)
}

func TestAuthRegisterLoginVerify(t *testing.T) {
	as := testAuthService(t, time.Hour)
	ctx := context.Background()

	user, err := as.RegisterUser(ctx, "Admin", "Admin@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("email should be lowercased, got %q", user.Email)
	}
	if user.HashedPassword == "s3cret" {
		t.Fatal("password must not be stored in the clear")
	}

	token, err := as.LoginUser(ctx, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	got, err := as.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != user.Email {
		t.Fatalf("verified email = %q, want %q", got.Email, user.Email)
	}
}

func TestAuthRejectsDuplicateEmail(t *testing.T) {
	as := testAuthService(t, time.Hour)
	ctx := context.Background()

	if _, err := as.RegisterUser(ctx, "A", "dup@example.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := as.RegisterUser(ctx, "B", "dup@example.com", "pw2"); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestAuthRejectsWrongPassword(t *testing.T) {
	as := testAuthService(t, time.Hour)
	ctx := context.Background()

	if _, err := as.RegisterUser(ctx, "A", "a@example.com", "right"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := as.LoginUser(ctx, "a@example.com", "wrong"); err == nil {
		t.Fatal("expected login with wrong password to fail")
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	as := testAuthService(t, -time.Minute)
	ctx := context.Background()

	if _, err := as.RegisterUser(ctx, "A", "old@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := as.LoginUser(ctx, "old@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := as.VerifyToken(ctx, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	as := testAuthService(t, time.Hour)
	if _, err := as.VerifyToken(context.Background(), "not.a.token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

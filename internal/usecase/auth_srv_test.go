package usecase

import (
	"context"
	"strings"
	"testing"

	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/dto/request"
	"sweet-shop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAuthTestService() (AuthService, *repository.Repository) {
	repo := newFakeRepository()
	config := &utils.Config{
		Session:      utils.SessionConfig{ExpiryHours: 24},
		Confirmation: utils.ConfirmationConfig{ExpiryHours: 48},
	}
	return NewAuthService(repo, config, nil, zap.NewNop()), repo
}

func registerConfirmedUser(t *testing.T, service AuthService, repo *repository.Repository, email, password string) {
	t.Helper()
	ctx := context.Background()

	_, err := service.Register(ctx, &request.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Test User",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	confirmationRepo := repo.Confirmation.(*fakeConfirmationRepo)
	for token := range confirmationRepo.confirmations {
		if err := service.VerifyEmail(ctx, &request.VerifyEmailRequest{Token: token}); err != nil {
			t.Fatalf("verify email failed: %v", err)
		}
		return
	}
	t.Fatal("no confirmation token was issued")
}

func TestRegister_WeakPasswordRejectedBeforeAnyRepoCall(t *testing.T) {
	service, repo := newAuthTestService()

	cases := []struct {
		name     string
		password string
	}{
		{"no uppercase", "abcdefg1"},
		{"no lowercase", "ABCDEFG1"},
		{"no digit", "Abcdefgh"},
		{"too short", "Abc1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), &request.RegisterRequest{
				Email:    "weak@example.com",
				Password: tc.password,
				FullName: "Weak Password",
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	userRepo := repo.User.(*fakeUserRepo)
	if userRepo.findCalls != 0 || userRepo.createCalls != 0 {
		t.Errorf("weak passwords must be rejected before touching the repository, find=%d create=%d",
			userRepo.findCalls, userRepo.createCalls)
	}
}

func TestRegister_CreatesUnconfirmedUserWithoutSession(t *testing.T) {
	service, repo := newAuthTestService()

	resp, err := service.Register(context.Background(), &request.RegisterRequest{
		Email:    "new@example.com",
		Password: "Abcdefg1",
		FullName: "New User",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if resp.Token != "" {
		t.Error("registration must not hand out a session token")
	}
	if resp.IsAdmin {
		t.Error("new accounts must not be admin")
	}

	user, err := repo.User.FindByEmail(context.Background(), "new@example.com")
	if err != nil || user == nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.EmailConfirmed {
		t.Error("fresh account must start unconfirmed")
	}
	if user.PasswordHash == "Abcdefg1" {
		t.Error("password stored in plain text")
	}

	profileRepo := repo.Profile.(*fakeProfileRepo)
	if profileRepo.createCalls != 1 {
		t.Errorf("expected one profile creation, got %d", profileRepo.createCalls)
	}
	confirmationRepo := repo.Confirmation.(*fakeConfirmationRepo)
	if confirmationRepo.createCalls != 1 {
		t.Errorf("expected one confirmation token, got %d", confirmationRepo.createCalls)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, repo := newAuthTestService()
	registerConfirmedUser(t, service, repo, "dup@example.com", "Abcdefg1")

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Email:    "dup@example.com",
		Password: "Abcdefg1",
		FullName: "Second Try",
	})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected already registered, got %v", err)
	}
}

func TestLogin_UnconfirmedEmailGetsDistinctError(t *testing.T) {
	service, _ := newAuthTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, &request.RegisterRequest{
		Email:    "pending@example.com",
		Password: "Abcdefg1",
		FullName: "Pending User",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := service.Login(ctx, &request.LoginRequest{
		Email:    "pending@example.com",
		Password: "Abcdefg1",
	})
	if err == nil || err.Error() != "email not confirmed" {
		t.Fatalf("expected email not confirmed, got %v", err)
	}
}

func TestLogin_WrongCredentialsIndistinguishable(t *testing.T) {
	service, repo := newAuthTestService()
	registerConfirmedUser(t, service, repo, "known@example.com", "Abcdefg1")

	wrongPassword, err1 := service.Login(context.Background(), &request.LoginRequest{
		Email:    "known@example.com",
		Password: "Wrongpass1",
	})
	unknownEmail, err2 := service.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Abcdefg1",
	})

	if wrongPassword != nil || unknownEmail != nil {
		t.Fatal("failed logins must not return a response")
	}
	if err1 == nil || err2 == nil || err1.Error() != err2.Error() {
		t.Errorf("wrong password and unknown email must fail identically: %v vs %v", err1, err2)
	}
}

func TestLogin_IssuesSessionAfterConfirmation(t *testing.T) {
	service, repo := newAuthTestService()
	registerConfirmedUser(t, service, repo, "ready@example.com", "Abcdefg1")

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ready@example.com",
		Password: "Abcdefg1",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if _, err := uuid.Parse(resp.Token); err != nil {
		t.Errorf("token is not a UUID: %v", err)
	}
	if resp.IsAdmin {
		t.Error("regular account reported as admin")
	}

	sessionRepo := repo.Session.(*fakeSessionRepo)
	if sessionRepo.createCalls != 1 {
		t.Errorf("expected one session, got %d", sessionRepo.createCalls)
	}
}

func TestLogin_LazilyRecreatesMissingProfile(t *testing.T) {
	service, repo := newAuthTestService()
	registerConfirmedUser(t, service, repo, "orphan@example.com", "Abcdefg1")

	// Simulate a lost profile row
	profileRepo := repo.Profile.(*fakeProfileRepo)
	for id := range profileRepo.profiles {
		delete(profileRepo.profiles, id)
	}

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "orphan@example.com",
		Password: "Abcdefg1",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.IsAdmin {
		t.Error("recreated profile must not be admin")
	}
	if len(profileRepo.profiles) != 1 {
		t.Errorf("expected profile to be recreated, have %d", len(profileRepo.profiles))
	}
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	service, _ := newAuthTestService()

	err := service.VerifyEmail(context.Background(), &request.VerifyEmailRequest{
		Token: uuid.New().String(),
	})
	if err == nil || !strings.Contains(err.Error(), "invalid or expired") {
		t.Fatalf("expected invalid or expired token, got %v", err)
	}
}

func TestResendConfirmation_AlreadyConfirmed(t *testing.T) {
	service, repo := newAuthTestService()
	registerConfirmedUser(t, service, repo, "done@example.com", "Abcdefg1")

	err := service.ResendConfirmation(context.Background(), &request.ResendConfirmationRequest{
		Email: "done@example.com",
	})
	if err == nil || !strings.Contains(err.Error(), "already confirmed") {
		t.Fatalf("expected already confirmed, got %v", err)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	service, repo := newAuthTestService()
	registerConfirmedUser(t, service, repo, "leaver@example.com", "Abcdefg1")

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "leaver@example.com",
		Password: "Abcdefg1",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	session, err := repo.Session.FindValidSession(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("find session failed: %v", err)
	}
	if session != nil {
		t.Error("session still valid after logout")
	}
}

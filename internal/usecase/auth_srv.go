package usecase

import (
	"context"
	"fmt"
	"time"

	"sweet-shop/internal/data/entity"
	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/dto/request"
	"sweet-shop/internal/dto/response"
	"sweet-shop/internal/mail"
	"sweet-shop/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ResendConfirmation(ctx context.Context, req *request.ResendConfirmationRequest) error
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository // groups user, session, confirmation & profile repos
	config *utils.Config
	mailer mail.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mailer mail.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mailer: mailer,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// Password policy (length + upper/lower/digit) is part of struct
	// validation and rejects before any repository call.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	fullName := req.FullName
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:          req.Email,
		PasswordHash:   hashedPassword,
		FullName:       &fullName,
		EmailConfirmed: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// The profile row carries the admin flag; it starts false and is
	// never set by this service.
	profile := &entity.Profile{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsAdmin:   false,
		CreatedAt: now,
	}
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		s.log.Warn("Failed to create profile after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Login lazily recreates it
	}

	if err := s.issueConfirmation(ctx, user); err != nil {
		s.log.Warn("Failed to issue confirmation token",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	// No session yet: sign-in is gated on email confirmation
	return response.AuthToResponse(user, false, nil), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	// The distinguishable message drives the resend-confirmation flow
	// on the client.
	if !user.EmailConfirmed {
		s.log.Warn("Unconfirmed email tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("email not confirmed")
	}

	isAdmin, err := s.ensureProfile(ctx, user)
	if err != nil {
		s.log.Warn("Failed to ensure profile on login",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Treat as non-admin rather than failing the login
		isAdmin = false
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return response.AuthToResponse(user, isAdmin, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.String("token", token), zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("token", token))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("User logged out", zap.String("token", token))
	return nil
}

func (s *authService) ResendConfirmation(ctx context.Context, req *request.ResendConfirmationRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Resend confirmation validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for confirmation", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if user.EmailConfirmed {
		return fmt.Errorf("email already confirmed")
	}

	if err := s.issueConfirmation(ctx, user); err != nil {
		s.log.Error("Failed to issue confirmation token", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to send confirmation email")
	}

	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify email validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	confirmation, err := s.repo.Confirmation.FindValidToken(ctx, req.Token)
	if err != nil {
		s.log.Error("Failed to find confirmation token", zap.Error(err))
		return fmt.Errorf("failed to verify token")
	}
	if confirmation == nil {
		return fmt.Errorf("invalid or expired confirmation token")
	}

	if err := s.repo.Confirmation.MarkAsUsed(ctx, confirmation.ID); err != nil {
		s.log.Warn("Failed to mark confirmation as used",
			zap.Error(err), zap.String("confirmation_id", confirmation.ID.String()))
		// Continue anyway
	}

	user, err := s.repo.User.FindByID(ctx, confirmation.UserID)
	if err != nil || user == nil {
		s.log.Error("User not found for confirmation", zap.Error(err),
			zap.String("user_id", confirmation.UserID.String()))
		return fmt.Errorf("user not found")
	}

	user.EmailConfirmed = true
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user confirmation", zap.Error(err),
			zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to confirm email")
	}

	s.log.Info("Email confirmed",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID.String()))

	return nil
}

// CurrentUser answers the session's user view, re-checking the admin flag
// the way the storefront re-checks on every auth-state change.
func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*response.AuthResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find current user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	isAdmin, err := s.ensureProfile(ctx, user)
	if err != nil {
		s.log.Warn("Failed to ensure profile",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		isAdmin = false
	}

	return response.AuthToResponse(user, isAdmin, nil), nil
}

// ==================== HELPER METHODS ====================

// ensureProfile guarantees exactly one profile row exists for the user,
// creating one with admin=false when missing, and reports the admin flag.
func (s *authService) ensureProfile(ctx context.Context, user *entity.User) (bool, error) {
	profile, err := s.repo.Profile.FindByID(ctx, user.ID)
	if err != nil {
		return false, err
	}

	if profile == nil {
		profile = &entity.Profile{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			IsAdmin:   false,
			CreatedAt: time.Now(),
		}
		if err := s.repo.Profile.Create(ctx, profile); err != nil {
			return false, err
		}
		return false, nil
	}

	return profile.IsAdmin, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// issueConfirmation stores a fresh token and delivers it: mailed when SMTP
// is configured, logged otherwise so development flows stay usable.
func (s *authService) issueConfirmation(ctx context.Context, user *entity.User) error {
	token := utils.GenerateConfirmationToken()
	expiresAt := time.Now().Add(time.Duration(s.config.Confirmation.ExpiryHours) * time.Hour)

	confirmation := &entity.Confirmation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	if err := s.repo.Confirmation.Create(ctx, confirmation); err != nil {
		return err
	}

	if s.mailer == nil {
		s.log.Info("Confirmation token issued (no SMTP configured)",
			zap.String("email", user.Email),
			zap.String("token", token.String()),
			zap.Time("expires_at", expiresAt),
		)
		return nil
	}

	go s.sendConfirmationEmail(user.Email, token.String())
	return nil
}

func (s *authService) sendConfirmationEmail(email, token string) {
	body := fmt.Sprintf(
		"Welcome to Sweet Shop!\n\nConfirm your email address with this token: %s\n\nThe token expires in %d hours.",
		token, s.config.Confirmation.ExpiryHours,
	)

	if err := s.mailer.Send(email, "Confirm your Sweet Shop account", body); err != nil {
		s.log.Error("Failed to send confirmation email", zap.Error(err), zap.String("email", email))
	}
}

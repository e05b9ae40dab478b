package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shoplite/shoplite-api/internal/crypto"
	"github.com/shoplite/shoplite-api/internal/model"
	"github.com/shoplite/shoplite-api/internal/repository"
)

var (
	ErrSignupFieldsRequired = errors.New("Email, name and password are required")
	ErrLoginFieldsRequired  = errors.New("Email and password are required")
	ErrEmailRequired        = errors.New("Email is required")
	ErrVerifyFieldsRequired = errors.New("Email and OTP are required")

	ErrEmailTaken = errors.New("Email already registered")
	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password, so a caller cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidOTP         = errors.New("Invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired. Please request a new one")
)

// UserStore is the slice of the credential store the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (*model.User, error)
}

// OTPDispatcher delivers a verification code to an address.
type OTPDispatcher interface {
	SendOTP(email, code string) error
}

// AuthService orchestrates signup, login, OTP verification and resend
// as transitions over the credential store.
type AuthService struct {
	users      UserStore
	dispatcher OTPDispatcher
	jwtSecret  string
	jwtExpiry  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, dispatcher OTPDispatcher, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		jwtSecret:  secret,
		jwtExpiry:  expiry,
	}
}

// Signup registers a new account with a pending OTP and mails the
// code. The code itself is never returned to the caller.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) error {
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return ErrSignupFieldsRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	code, expiresAt := crypto.GenerateOTP()
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return err
	}

	// A failed dispatch leaves the stored code valid; resend recovers.
	if err := s.dispatcher.SendOTP(req.Email, code); err != nil {
		return fmt.Errorf("dispatching signup OTP: %w", err)
	}
	return nil
}

// Login checks the credentials and, on success, issues a fresh OTP.
// Any previously pending code is overwritten and so invalidated.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) error {
	if req.Email == "" || req.Password == "" {
		return ErrLoginFieldsRequired
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	return s.issueOTP(ctx, req.Email)
}

// ResendOTP issues a fresh code for an existing account. The previous
// code is invalidated even if still within its window.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	return s.issueOTP(ctx, email)
}

func (s *AuthService) issueOTP(ctx context.Context, email string) error {
	code, expiresAt := crypto.GenerateOTP()
	if err := s.users.SetOTP(ctx, email, code, expiresAt); err != nil {
		return err
	}
	if err := s.dispatcher.SendOTP(email, code); err != nil {
		return fmt.Errorf("dispatching OTP: %w", err)
	}
	return nil
}

// VerifyOTP consumes a pending code and mints a session. The clear is
// a single conditional update keyed on the matching, unexpired code,
// so each issued code authorizes at most one session. A non-matching
// code is reported as invalid regardless of expiry; an expired code
// that does match is reported as expired, never as invalid.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (model.ClaimPayload, string, error) {
	if email == "" || code == "" {
		return model.ClaimPayload{}, "", ErrVerifyFieldsRequired
	}

	user, err := s.users.ConsumeOTP(ctx, email, code, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrOTPMismatch) {
			return model.ClaimPayload{}, "", s.classifyOTPFailure(ctx, email, code)
		}
		return model.ClaimPayload{}, "", err
	}

	payload := model.ClaimPayload{
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
	}

	token, err := crypto.GenerateToken(payload, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.ClaimPayload{}, "", err
	}
	return payload, token, nil
}

// classifyOTPFailure decides which error a missed consume means. The
// code-match check comes strictly before the expiry check: only a code
// that matches the stored one can be reported as expired.
func (s *AuthService) classifyOTPFailure(ctx context.Context, email, code string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.OTP == nil || *user.OTP != code {
		return ErrInvalidOTP
	}
	return ErrOTPExpired
}

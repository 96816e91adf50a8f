package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/creator-studio/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 10 * time.Minute

// OTPMailer delivers a one-time passcode to an email address.
type OTPMailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// AuthService handles OTP-gated registration, login, Google sign-in, and
// JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	mailer     OTPMailer
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, mailer OTPMailer, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// SendOTP starts (or restarts) registration for an email address. A fresh
// 6-digit code with a 10-minute expiry is stored on the user record — a
// placeholder record is created if none exists — and mailed out. The most
// recent request's code always wins. Fails with ErrDuplicateEmail if a
// verified user already owns the address.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiresAt := time.Now().UTC().Add(otpTTL)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{
			Email:        email,
			OTPCode:      code,
			OTPExpiresAt: &expiresAt,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create placeholder user: %w", err)
		}
	case err != nil:
		return fmt.Errorf("get user: %w", err)
	case user.Verified:
		return domain.ErrDuplicateEmail
	default:
		user.OTPCode = code
		user.OTPExpiresAt = &expiresAt
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("store otp: %w", err)
		}
	}

	// Best effort: a transport failure surfaces to the caller, no retry.
	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

// VerifyOTP checks the pending code for an email address. On success the
// code is cleared and the user becomes verified.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and otp are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if user.OTPCode == "" {
		return domain.ErrNotFound
	}

	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	if user.OTPCode != code {
		return domain.ErrUnauthorized
	}

	user.OTPCode = ""
	user.OTPExpiresAt = nil
	user.Verified = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	return nil
}

// CompleteSignup finishes registration for a verified email: it stores the
// chosen name and password and issues a session token. Fails with
// ErrAlreadyRegistered if a password was already set.
func (s *AuthService) CompleteSignup(ctx context.Context, email, name, password string) (*domain.User, string, error) {
	if email == "" || name == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email, name, and password are required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if !user.Verified {
		return nil, "", fmt.Errorf("%w: email not verified", domain.ErrInvalidInput)
	}
	if user.PasswordHash != "" {
		return nil, "", domain.ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user.DisplayName = name
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("complete signup: %w", err)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a signed JWT.
// An account created through Google has no password hash and can never
// pass the bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}
	return user, token, nil
}

// LoginWithGoogle finds or creates the account for a verified Google
// profile and returns it with a signed JWT. New accounts are created
// verified, with no password.
func (s *AuthService) LoginWithGoogle(ctx context.Context, googleID, name, email string) (*domain.User, string, error) {
	if email == "" {
		return nil, "", fmt.Errorf("%w: google profile has no email", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		user = &domain.User{
			Email:       email,
			DisplayName: name,
			GoogleID:    googleID,
			Verified:    true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("create google user: %w", err)
		}
	} else if err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}
	return user, token, nil
}

// UpdatePassword replaces the stored hash after verifying the current
// password. The hash is left untouched on a mismatch.
func (s *AuthService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", domain.ErrInvalidInput)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeleteAccount removes the user. Deleting an already-deleted account
// returns ErrNotFound, never a server error.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// generateOTP returns a random 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

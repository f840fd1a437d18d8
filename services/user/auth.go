// File: services/user/auth.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	userRepo "femicare/database/repository/user"
	"femicare/models"
	"femicare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates the account and mails a verification code. Doctor signups
// also get an empty professional profile that must be completed and verified
// before they appear in listings.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistrationData) (*models.User, error) {
	logger := utils.GetLogger()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}
	if req.Role != models.RolePatient && req.Role != models.RoleDoctor {
		return nil, fmt.Errorf("role must be patient or doctor")
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err != nil && err != userRepo.ErrUserNotFound {
		logger.Error("Register: email lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}
	if existing, err := s.Repo.GetByUsername(ctx, username); err != nil && err != userRepo.ErrUserNotFound {
		logger.Error("Register: username lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, fmt.Errorf("this username is taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		logger.Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if u.Role == models.RoleDoctor && s.Doctors != nil {
		profile := &models.DoctorProfile{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Doctors.Create(ctx, profile); err != nil {
			logger.Error("Register: failed to create doctor profile",
				zap.String("userId", u.ID), zap.Error(err))
		}
	}

	if err := s.sendVerification(ctx, email); err != nil {
		logger.Warn("Register: failed to send verification code",
			zap.String("email", email), zap.Error(err))
	}
	return u, nil
}

// VerifyEmail consumes the mailed code and marks the account verified.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := utils.CheckVerificationCode(email, code); err != nil {
		return err
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.Repo.UpdateFields(ctx, u.ID, map[string]interface{}{
		"emailVerified": true,
		"updatedAt":     time.Now(),
	})
}

// ResendVerification issues a fresh code for an unverified account.
func (s *DefaultUserService) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return fmt.Errorf("this account is already verified")
	}
	return s.sendVerification(ctx, email)
}

// Login checks credentials and issues a session token. The token hash is
// cached so logout can revoke it before expiry.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	logger := utils.GetLogger()
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if err == userRepo.ErrUserNotFound {
			return nil, fmt.Errorf("invalid email or password")
		}
		logger.Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if !u.EmailVerified {
		return nil, fmt.Errorf("please verify your email before signing in")
	}

	token, err := utils.GenerateToken(u.ID, u.Role, TokenTTL)
	if err != nil {
		logger.Error("Login: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	cache := utils.GetAuthCacheClient()
	if err := cache.Set(ctx, utils.AuthCachePrefix+u.ID, tokenHash, TokenTTL).Err(); err != nil {
		logger.Error("Login: failed to cache session", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := s.Repo.UpdateFields(ctx, u.ID, map[string]interface{}{
		"tokenHash": tokenHash,
		"updatedAt": time.Now(),
	}); err != nil {
		logger.Error("Login: failed to store token hash", zap.Error(err))
	}

	return &models.AuthResponse{Token: token, User: u}, nil
}

// Logout revokes the cached session token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	cache := utils.GetAuthCacheClient()
	if err := cache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return s.Repo.UpdateFields(ctx, userID, map[string]interface{}{
		"tokenHash": "",
		"updatedAt": time.Now(),
	})
}

// ChangePassword verifies the current password before setting the new one and
// revoking the active session.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if err := VerifyPasswordComplexity(next); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to update password, please try again")
	}
	if err := s.Repo.UpdateFields(ctx, userID, map[string]interface{}{
		"passwordHash": string(hashed),
		"updatedAt":    time.Now(),
	}); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}

func (s *DefaultUserService) sendVerification(ctx context.Context, email string) error {
	code, err := utils.IssueVerificationCode(email)
	if err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.VerificationCode(ctx, email, code)
	}
	return nil
}

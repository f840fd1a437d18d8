// File: services/user/interface.go
package user

import (
	"context"
	"time"

	doctorRepo "femicare/database/repository/doctor"
	userRepo "femicare/database/repository/user"
	"femicare/models"
	"femicare/services/notification"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 72 * time.Hour

// UserService manages accounts, email verification and sessions.
type UserService interface {
	Register(ctx context.Context, req models.UserRegistrationData) (*models.User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	UpdateFCMToken(ctx context.Context, userID, token string) error
	Delete(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Doctors  doctorRepo.DoctorRepository
	Notifier notification.NotificationService
}

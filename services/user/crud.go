// File: services/user/crud.go
package user

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"femicare/models"
)

// GetByID returns the account record.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile replaces the patient-side tracking fields.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error) {
	if profile.DateOfBirth != "" {
		if _, err := time.Parse(models.DateLayout, profile.DateOfBirth); err != nil {
			return nil, fmt.Errorf("invalid dateOfBirth, expected YYYY-MM-DD")
		}
	}
	if profile.LastPeriodDate != "" {
		if _, err := time.Parse(models.DateLayout, profile.LastPeriodDate); err != nil {
			return nil, fmt.Errorf("invalid lastPeriodDate, expected YYYY-MM-DD")
		}
	}
	if profile.CycleLength != 0 && (profile.CycleLength < 15 || profile.CycleLength > 60) {
		return nil, fmt.Errorf("cycle length must be between 15 and 60 days")
	}
	if err := s.Repo.UpdateFields(ctx, userID, map[string]interface{}{
		"profile":   profile,
		"updatedAt": time.Now(),
	}); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdateFCMToken registers the device push token.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.Repo.UpdateFields(ctx, userID, map[string]interface{}{
		"fcmToken":  token,
		"updatedAt": time.Now(),
	})
}

// Delete removes the account and revokes its session.
func (s *DefaultUserService) Delete(ctx context.Context, userID string) error {
	if err := s.Logout(ctx, userID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, userID)
}

// VerifyPasswordComplexity enforces the minimum password policy.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain both letters and digits")
	}
	return nil
}

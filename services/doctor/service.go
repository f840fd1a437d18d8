// File: services/doctor/service.go
// Package doctor manages professional profiles and the admin verification
// queue. A doctor becomes publicly bookable only after completing their
// profile and being verified by an admin.
package doctor

import (
	"context"
	"fmt"
	"time"

	doctorRepo "femicare/database/repository/doctor"
	userRepo "femicare/database/repository/user"
	"femicare/models"
	"femicare/utils"

	"go.uber.org/zap"
)

// Service exposes profile management and the public doctor directory.
type Service interface {
	GetProfile(ctx context.Context, doctorUserID string) (*models.DoctorProfile, error)
	UpdateProfile(ctx context.Context, doctorUserID string, upd models.DoctorProfileUpdate) (*models.DoctorProfile, error)
	AttachCertificate(ctx context.Context, doctorUserID, certificateURL string) error
	AttachPhoto(ctx context.Context, doctorUserID, photoURL string) error
	ListBookable(ctx context.Context) ([]models.DoctorListing, error)

	// Admin verification queue.
	ListPending(ctx context.Context) ([]models.DoctorProfile, error)
	Verify(ctx context.Context, doctorUserID string) error
	Reject(ctx context.Context, doctorUserID string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo  doctorRepo.DoctorRepository
	Users userRepo.UserRepository
}

func (s *DefaultDoctorService) GetProfile(ctx context.Context, doctorUserID string) (*models.DoctorProfile, error) {
	return s.Repo.GetByUserID(ctx, doctorUserID)
}

// UpdateProfile saves the professional details. Changing them on a rejected
// profile puts the doctor back in the review queue.
func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, doctorUserID string, upd models.DoctorProfileUpdate) (*models.DoctorProfile, error) {
	if upd.ExperienceYears < 0 || upd.ExperienceYears > 70 {
		return nil, fmt.Errorf("experience years must be between 0 and 70")
	}
	profile, err := s.Repo.GetByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	set := map[string]interface{}{
		"specialization":  upd.Specialization,
		"experienceYears": upd.ExperienceYears,
		"licenseNumber":   upd.LicenseNumber,
		"bio":             upd.Bio,
		"updatedAt":       time.Now(),
	}
	if profile.Rejected {
		set["rejected"] = false
		set["verified"] = false
	}
	if err := s.Repo.UpdateFields(ctx, doctorUserID, set); err != nil {
		return nil, err
	}
	return s.Repo.GetByUserID(ctx, doctorUserID)
}

// AttachCertificate stores the uploaded license certificate URL.
func (s *DefaultDoctorService) AttachCertificate(ctx context.Context, doctorUserID, certificateURL string) error {
	return s.Repo.UpdateFields(ctx, doctorUserID, map[string]interface{}{
		"certificateUrl": certificateURL,
		"updatedAt":      time.Now(),
	})
}

// AttachPhoto stores the uploaded profile photo URL.
func (s *DefaultDoctorService) AttachPhoto(ctx context.Context, doctorUserID, photoURL string) error {
	return s.Repo.UpdateFields(ctx, doctorUserID, map[string]interface{}{
		"photoUrl":  photoURL,
		"updatedAt": time.Now(),
	})
}

// ListBookable returns the public directory of verified, complete doctors.
func (s *DefaultDoctorService) ListBookable(ctx context.Context) ([]models.DoctorListing, error) {
	profiles, err := s.Repo.ListBookable(ctx)
	if err != nil {
		return nil, err
	}
	listings := make([]models.DoctorListing, 0, len(profiles))
	for _, p := range profiles {
		if !p.Bookable() {
			continue
		}
		username := ""
		if u, uerr := s.Users.GetByID(ctx, p.UserID); uerr == nil {
			username = u.Username
		}
		listings = append(listings, models.DoctorListing{
			UserID:          p.UserID,
			Username:        username,
			Specialization:  p.Specialization,
			ExperienceYears: p.ExperienceYears,
			PhotoURL:        p.PhotoURL,
			Bio:             p.Bio,
		})
	}
	return listings, nil
}

// ListPending returns complete profiles awaiting verification.
func (s *DefaultDoctorService) ListPending(ctx context.Context) ([]models.DoctorProfile, error) {
	all, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]models.DoctorProfile, 0)
	for _, p := range all {
		if !p.Verified && !p.Rejected && p.ProfileComplete() {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

// Verify approves a doctor for public listing.
func (s *DefaultDoctorService) Verify(ctx context.Context, doctorUserID string) error {
	profile, err := s.Repo.GetByUserID(ctx, doctorUserID)
	if err != nil {
		return err
	}
	if !profile.ProfileComplete() {
		return fmt.Errorf("profile is incomplete and cannot be verified")
	}
	if err := s.Repo.UpdateFields(ctx, doctorUserID, map[string]interface{}{
		"verified":  true,
		"rejected":  false,
		"updatedAt": time.Now(),
	}); err != nil {
		return err
	}
	utils.GetLogger().Info("doctor verified", zap.String("doctorId", doctorUserID))
	return nil
}

// Reject declines a doctor's verification request.
func (s *DefaultDoctorService) Reject(ctx context.Context, doctorUserID string) error {
	if err := s.Repo.UpdateFields(ctx, doctorUserID, map[string]interface{}{
		"verified":  false,
		"rejected":  true,
		"updatedAt": time.Now(),
	}); err != nil {
		return err
	}
	utils.GetLogger().Info("doctor rejected", zap.String("doctorId", doctorUserID))
	return nil
}

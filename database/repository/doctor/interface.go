// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"
	"errors"

	"femicare/database"
	"femicare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProfileNotFound is returned when a doctor profile does not resolve.
var ErrProfileNotFound = errors.New("doctor profile not found")

// DoctorRepository persists doctor professional profiles.
type DoctorRepository interface {
	Create(ctx context.Context, p *models.DoctorProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error)
	UpdateFields(ctx context.Context, userID string, set map[string]interface{}) error
	ListAll(ctx context.Context) ([]models.DoctorProfile, error)
	ListBookable(ctx context.Context) ([]models.DoctorProfile, error)
	EnsureIndexes() error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	return &mongoDoctorRepo{coll: database.DB().Collection("doctor_profiles")}
}

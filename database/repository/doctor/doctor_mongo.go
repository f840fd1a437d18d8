// File: database/repository/doctor/doctor_mongo.go
package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"femicare/models"
)

func (r *mongoDoctorRepo) Create(ctx context.Context, p *models.DoctorProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert doctor profile: %w", err)
	}
	return nil
}

func (r *mongoDoctorRepo) GetByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.DoctorProfile
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("find doctor profile: %w", err)
	}
	return &p, nil
}

func (r *mongoDoctorRepo) UpdateFields(ctx context.Context, userID string, set map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update doctor profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoDoctorRepo) ListAll(ctx context.Context) ([]models.DoctorProfile, error) {
	return r.list(ctx, bson.M{})
}

// ListBookable returns verified, non-rejected profiles. Completeness is a
// field-presence check and is applied by the caller via ProfileComplete.
func (r *mongoDoctorRepo) ListBookable(ctx context.Context) ([]models.DoctorProfile, error) {
	return r.list(ctx, bson.M{"verified": true, "rejected": false})
}

func (r *mongoDoctorRepo) list(ctx context.Context, filter bson.M) ([]models.DoctorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch doctor profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.DoctorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode doctor profiles: %w", err)
	}
	return profiles, nil
}

// EnsureIndexes creates the necessary indexes on the doctor_profiles collection.
func (r *mongoDoctorRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_id"),
		},
		{
			Keys:    bson.D{{Key: "verified", Value: 1}, {Key: "rejected", Value: 1}},
			Options: options.Index().SetName("verified_rejected_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create doctor profile indexes: %w", err)
	}
	return nil
}

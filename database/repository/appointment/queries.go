// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"femicare/models"
)

func (r *mongoAppointmentRepo) CountActiveOnDate(ctx context.Context, patientID, date, doctorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"patientId": patientID,
		"date":      date,
		"status":    bson.M{"$in": models.NonTerminalStatuses},
	}
	if doctorID != "" {
		filter["doctorId"] = doctorID
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count active appointments: %w", err)
	}
	return count, nil
}

func (r *mongoAppointmentRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count appointments by status: %w", err)
	}
	return count, nil
}

func (r *mongoAppointmentRepo) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"status":    models.StatusPending,
		"createdAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch stale pending appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("decode stale pending appointments: %w", err)
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) FindApprovedEndedBy(ctx context.Context, today string, nowMinutes int) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.StatusApproved,
		"$or": bson.A{
			bson.M{"date": bson.M{"$lt": today}},
			bson.M{"date": today, "end": bson.M{"$lte": nowMinutes}},
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch ended approved appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("decode ended approved appointments: %w", err)
	}
	return appts, nil
}

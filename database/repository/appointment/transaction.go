// File: database/repository/appointment/transaction.go
package appointmentRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	slotRepo "femicare/database/repository/slot"
	"femicare/models"
)

// BookTransactionally creates the pending appointment and deactivates its slot
// inside one Mongo transaction. The slot claim is conditional on the active
// flag, so of two concurrent bookings only one matches; the loser's transaction
// aborts with ErrSlotTaken and no appointment row survives.
func (r *mongoAppointmentRepo) BookTransactionally(ctx context.Context, appt *models.Appointment) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// The session rides in sc, so the claim and the insert commit or
		// abort together.
		if _, err := r.slots.Claim(sc, appt.SlotID); err != nil {
			if err == slotRepo.ErrSlotUnavailable {
				return ErrSlotTaken
			}
			return err
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

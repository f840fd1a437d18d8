// File: handlers/bundle.go
package handlers

import (
	userRepoPkg "femicare/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repository the auth
// middleware needs for cache-miss lookups.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth         *AuthHandler
	User         *UserHandler
	Doctor       *DoctorHandler
	Admin        *AdminHandler
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
	Cycle        *CycleHandler
	Chat         *ChatHandler
}

package models

import "time"

// Roles assignable at signup. Admin accounts are provisioned out of band.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is a registered account, patient or doctor.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Role          string    `bson:"role" json:"role"`
	EmailVerified bool      `bson:"emailVerified" json:"emailVerified"`
	FCMToken      string    `bson:"fcmToken,omitempty" json:"-"`
	TokenHash     string    `bson:"tokenHash,omitempty" json:"-"`
	Profile       Profile   `bson:"profile,omitempty" json:"profile"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Profile carries the patient-side tracking fields.
type Profile struct {
	DateOfBirth    string `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"` // "2006-01-02"
	CycleLength    int    `bson:"cycleLength,omitempty" json:"cycleLength,omitempty"`
	LastPeriodDate string `bson:"lastPeriodDate,omitempty" json:"lastPeriodDate,omitempty"`
}

// UserRegistrationData is the signup payload.
type UserRegistrationData struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=patient doctor"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

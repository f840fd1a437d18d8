package models

import "time"

// DoctorProfile holds the professional details attached to a doctor account.
// A profile is created unverified at signup and must be verified by an admin
// and completed by the doctor before the doctor is publicly listed or bookable.
type DoctorProfile struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	Specialization  string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	ExperienceYears int       `bson:"experienceYears" json:"experienceYears"`
	LicenseNumber   string    `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	CertificateURL  string    `bson:"certificateUrl,omitempty" json:"certificateUrl,omitempty"`
	PhotoURL        string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Bio             string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Verified        bool      `bson:"verified" json:"verified"`
	Rejected        bool      `bson:"rejected" json:"rejected"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileComplete reports whether the doctor filled in everything a patient
// needs to see before booking.
func (d *DoctorProfile) ProfileComplete() bool {
	return d.Specialization != "" && d.LicenseNumber != "" && d.CertificateURL != ""
}

// Bookable reports whether the doctor may be publicly listed and booked.
func (d *DoctorProfile) Bookable() bool {
	return d.Verified && !d.Rejected && d.ProfileComplete()
}

// DoctorProfileUpdate is the payload a doctor submits to complete their profile.
type DoctorProfileUpdate struct {
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experienceYears"`
	LicenseNumber   string `json:"licenseNumber"`
	Bio             string `json:"bio"`
}

// DoctorListing is the public view of a bookable doctor.
type DoctorListing struct {
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experienceYears"`
	PhotoURL        string `json:"photoUrl,omitempty"`
	Bio             string `json:"bio,omitempty"`
}

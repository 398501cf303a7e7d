package domain

import "time"

// ApplicationStatus enumerates review states for lodge applications.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// IsKnownStatus reports whether s is one of the recognized status values.
func IsKnownStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// EmergencyContact holds the person reached first when something happens
// to a lodger.
type EmergencyContact struct {
	Name    string
	Address string
	Phone1  string
	Phone2  *string
}

// NextOfKin holds the applicant's registered next of kin.
type NextOfKin struct {
	Name    string
	Address string
	Phone1  string
	Phone2  *string
}

// Application is the aggregate for a lodge registration submission.
// Every field except Status is immutable once the record is created; there
// is no edit or delete path for applicants.
type Application struct {
	ID              string
	ReferenceNumber string
	Status          ApplicationStatus
	FullName        string
	Email           string
	MobileNumber    string
	CallUpNumber    string
	StateOfOrigin   string
	LGA             string
	Gender          string
	DateOfBirth     string
	MaritalStatus   string
	RegistrationNo  string
	Institution     string
	BloodGroup      string
	Genotype        string
	Allergies       *string
	Disabilities    *string
	Emergency       EmergencyContact
	NextOfKin       NextOfKin
	// PassportPhoto is an embedded data URI; no external object storage
	// is used for the active submission path.
	PassportPhoto *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplicationStats aggregates counts per status for the admin dashboard.
type ApplicationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

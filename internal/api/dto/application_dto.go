package dto

import (
	"time"

	"github.com/spec-kit/lodge-registration/internal/domain"
)

// CreateApplicationRequest is the public registration payload. A password
// pair may accompany the form to open an account alongside the submission.
type CreateApplicationRequest struct {
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Password        string  `json:"password,omitempty"`
	ConfirmPassword string  `json:"confirm_password,omitempty"`
	MobileNumber    string  `json:"mobile_number"`
	CallUpNumber    string  `json:"call_up_number"`
	StateOfOrigin   string  `json:"state_of_origin"`
	LGA             string  `json:"lga"`
	Gender          string  `json:"gender"`
	DateOfBirth     string  `json:"date_of_birth"`
	MaritalStatus   string  `json:"marital_status"`
	RegistrationNo  string  `json:"registration_no"`
	Institution     string  `json:"institution"`
	BloodGroup      string  `json:"blood_group"`
	Genotype        string  `json:"genotype"`
	Allergies       *string `json:"allergies,omitempty"`
	Disabilities    *string `json:"disabilities,omitempty"`

	EmergencyName    string  `json:"emergency_name"`
	EmergencyAddress string  `json:"emergency_address"`
	EmergencyPhone1  string  `json:"emergency_phone1"`
	EmergencyPhone2  *string `json:"emergency_phone2,omitempty"`

	NextOfKinName    string  `json:"next_of_kin_name"`
	NextOfKinAddress string  `json:"next_of_kin_address"`
	NextOfKinPhone1  string  `json:"next_of_kin_phone1"`
	NextOfKinPhone2  *string `json:"next_of_kin_phone2,omitempty"`

	PassportPhoto *string `json:"passport_photo,omitempty"`
	RulesAccepted bool    `json:"rules_accepted"`
}

// UpdateStatusRequest is the admin review payload.
type UpdateStatusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// ApplicationSummary is the listing shape.
type ApplicationSummary struct {
	ID              string                   `json:"id"`
	ReferenceNumber string                   `json:"reference_number"`
	FullName        string                   `json:"full_name"`
	Email           string                   `json:"email"`
	Status          domain.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ApplicationDetail carries the full record.
type ApplicationDetail struct {
	ID              string                   `json:"id"`
	ReferenceNumber string                   `json:"reference_number"`
	Status          domain.ApplicationStatus `json:"status"`
	FullName        string                   `json:"full_name"`
	Email           string                   `json:"email"`
	MobileNumber    string                   `json:"mobile_number"`
	CallUpNumber    string                   `json:"call_up_number"`
	StateOfOrigin   string                   `json:"state_of_origin"`
	LGA             string                   `json:"lga"`
	Gender          string                   `json:"gender"`
	DateOfBirth     string                   `json:"date_of_birth"`
	MaritalStatus   string                   `json:"marital_status"`
	RegistrationNo  string                   `json:"registration_no"`
	Institution     string                   `json:"institution"`
	BloodGroup      string                   `json:"blood_group"`
	Genotype        string                   `json:"genotype"`
	Allergies       *string                  `json:"allergies,omitempty"`
	Disabilities    *string                  `json:"disabilities,omitempty"`

	EmergencyName    string  `json:"emergency_name"`
	EmergencyAddress string  `json:"emergency_address"`
	EmergencyPhone1  string  `json:"emergency_phone1"`
	EmergencyPhone2  *string `json:"emergency_phone2,omitempty"`

	NextOfKinName    string  `json:"next_of_kin_name"`
	NextOfKinAddress string  `json:"next_of_kin_address"`
	NextOfKinPhone1  string  `json:"next_of_kin_phone1"`
	NextOfKinPhone2  *string `json:"next_of_kin_phone2,omitempty"`

	PassportPhoto *string   `json:"passport_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

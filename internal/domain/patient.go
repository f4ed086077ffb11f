package domain

import "time"

type PatientProfile struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userID"`
	DateOfBirth      string    `json:"dateOfBirth"` // YYYY-MM-DD
	Gender           string    `json:"gender"`
	BloodGroup       string    `json:"bloodGroup"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergencyContact"`
	EmergencyPhone   string    `json:"emergencyPhone"`
	Allergies        string    `json:"allergies"`
	MedicalHistory   string    `json:"medicalHistory"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}

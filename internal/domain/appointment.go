package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment 表示一次预约。预约创建后只会通过状态流转被修改，不会被删除；
// 除了 CANCELLED 之外的任何状态都占用对应的时段。
type Appointment struct {
	ID                 int64             `json:"id"`
	ConfirmationNumber string            `json:"confirmationNumber"`
	PatientID          int64             `json:"patientID"`
	DoctorID           int64             `json:"doctorID"`
	BranchID           int64             `json:"branchID"`
	Date               string            `json:"date"`      // YYYY-MM-DD
	StartTime          string            `json:"startTime"` // HH:MM
	EndTime            string            `json:"endTime"`   // HH:MM
	DurationMinutes    int32             `json:"durationMinutes"`
	Status             AppointmentStatus `json:"status"`
	Reason             string            `json:"reason"`
	Notes              string            `json:"notes"`
	CreatedAt          time.Time         `json:"createdAt"`
	Version            int32             `json:"-"`
}

package domain

import "time"

type DoctorProfile struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userID"`
	BranchID            int64     `json:"branchID"`
	Specialization      string    `json:"specialization"`
	LicenseNumber       string    `json:"licenseNumber"`
	ConsultationFee     float64   `json:"consultationFee"`
	SlotDurationMinutes int32     `json:"slotDurationMinutes"` // 该医生的就诊时段被切分的唯一依据
	CreatedAt           time.Time `json:"createdAt"`
	Version             int32     `json:"-"`
}

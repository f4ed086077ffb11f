package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AppointmentCreatedMailData struct {
	FullName           string `json:"fullName"`
	DoctorName         string `json:"doctorName"`
	ConfirmationNumber string `json:"confirmationNumber"`
	Date               string `json:"date"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
}

type OverrideDecisionMailData struct {
	FullName string `json:"fullName"`
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	Reason   string `json:"reason"`
}

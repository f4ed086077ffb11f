package handler

type ContextKey string

var (
	RoleCtxKey        ContextKey = "role"
	SubCtxKey         ContextKey = "sub"
	MyInfoCtx         ContextKey = "myInfo"
	UserInfoCtx       ContextKey = "userInfo"
	BranchCtx         ContextKey = "branch"
	PatientProfileCtx ContextKey = "patientProfile"
	DoctorProfileCtx  ContextKey = "doctorProfile"
	OverrideCtx       ContextKey = "override"
	AppointmentCtx    ContextKey = "appointment"
)

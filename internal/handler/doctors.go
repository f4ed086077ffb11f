package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/medisync-dev/hospital-manager/backend/internal/slotengine"
	"github.com/medisync-dev/hospital-manager/backend/internal/utils"
)

func (h *Handler) CreateDoctorProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID              int64   `json:"userID" validate:"required"`
		BranchID            int64   `json:"branchID" validate:"required"`
		Specialization      string  `json:"specialization" validate:"required"`
		LicenseNumber       string  `json:"licenseNumber" validate:"required"`
		ConsultationFee     float64 `json:"consultationFee" validate:"gte=0"`
		SlotDurationMinutes int32   `json:"slotDurationMinutes" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检查目标用户存在且为医生
	user, err := h.repository.GetUserByID(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "用户不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if user.Role != domain.RoleDoctor {
		h.errorResponse(w, r, "该用户不是医生")
		return
	}

	profile := &domain.DoctorProfile{
		UserID:              req.UserID,
		BranchID:            req.BranchID,
		Specialization:      req.Specialization,
		LicenseNumber:       req.LicenseNumber,
		ConsultationFee:     req.ConsultationFee,
		SlotDurationMinutes: req.SlotDurationMinutes,
	}

	if err := h.repository.CreateDoctorProfile(profile); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "doctor_profiles_user_id_key":
				h.badRequest(w, r, errors.New("该用户已有医生档案"))
			case pgErr.ConstraintName == "doctor_profiles_license_number_key":
				h.badRequest(w, r, errors.New("执业证号已存在"))
			case pgErr.ConstraintName == "doctor_profiles_branch_id_fkey":
				h.badRequest(w, r, errors.New("院区不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建医生档案成功", profile)
}

func (h *Handler) GetAllDoctorProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.repository.GetAllDoctorProfiles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取医生列表成功", profiles)
}

func (h *Handler) GetDoctorProfile(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(DoctorProfileCtx).(*domain.DoctorProfile)
	h.successResponse(w, r, "获取医生档案成功", profile)
}

func (h *Handler) UpdateDoctorProfile(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(DoctorProfileCtx).(*domain.DoctorProfile)

	var req struct {
		BranchID            *int64   `json:"branchID"`
		Specialization      *string  `json:"specialization"`
		LicenseNumber       *string  `json:"licenseNumber"`
		ConsultationFee     *float64 `json:"consultationFee" validate:"omitempty,gte=0"`
		SlotDurationMinutes *int32   `json:"slotDurationMinutes" validate:"omitempty,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.BranchID != nil {
		profile.BranchID = *req.BranchID
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.LicenseNumber != nil {
		profile.LicenseNumber = *req.LicenseNumber
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
	}
	if req.SlotDurationMinutes != nil {
		profile.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	if err := h.repository.UpdateDoctorProfile(profile); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "doctor_profiles_license_number_key":
				h.badRequest(w, r, errors.New("执业证号已存在"))
			case pgErr.ConstraintName == "doctor_profiles_branch_id_fkey":
				h.badRequest(w, r, errors.New("院区不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新医生档案成功", profile)
}

func (h *Handler) GetDoctorWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(DoctorProfileCtx).(*domain.DoctorProfile)

	entries, err := h.repository.GetWeeklyScheduleByDoctorID(profile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取每周排班成功", entries)
}

func (h *Handler) ReplaceDoctorWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(DoctorProfileCtx).(*domain.DoctorProfile)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 医生只能修改自己的排班，管理员不受限制
	if myInfo.Role == domain.RoleDoctor && myInfo.ID != profile.UserID {
		h.errorResponse(w, r, "只能修改自己的排班")
		return
	}

	var req struct {
		Entries []struct {
			DayOfWeek int32  `json:"dayOfWeek"`
			StartTime string `json:"startTime" validate:"required"`
			EndTime   string `json:"endTime" validate:"required"`
			IsActive  bool   `json:"isActive"`
		} `json:"entries" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries := make([]*domain.WeeklyScheduleEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, &domain.WeeklyScheduleEntry{
			DoctorID:  profile.ID,
			DayOfWeek: entry.DayOfWeek,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			IsActive:  entry.IsActive,
		})
	}

	if err := utils.ValidateWeeklySchedule(entries); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.ReplaceWeeklySchedule(profile.ID, entries); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新每周排班成功", entries)
}

func (h *Handler) GetDoctorAvailableSlots(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(DoctorProfileCtx).(*domain.DoctorProfile)

	req := struct {
		Date string `validate:"required,datetime=2006-01-02"`
	}{
		Date: r.URL.Query().Get("date"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries, err := h.repository.GetWeeklyScheduleByDoctorID(profile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	overrides, err := h.repository.GetOverridesByDoctorID(profile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	appointments, err := h.repository.GetAppointmentsByDoctorIDAndDate(profile.ID, req.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	engine := slotengine.New(profile, entries, overrides, appointments)
	slots, err := engine.AvailableSlots(req.Date)
	if err != nil {
		switch {
		case errors.Is(err, slotengine.ErrInvalidSlotDuration):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取可预约时段成功", slots)
}

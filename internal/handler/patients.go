package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func (h *Handler) CreatePatientProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID           int64  `json:"userID" validate:"required"`
		DateOfBirth      string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
		Gender           string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
		BloodGroup       string `json:"bloodGroup"`
		Address          string `json:"address"`
		EmergencyContact string `json:"emergencyContact"`
		EmergencyPhone   string `json:"emergencyPhone"`
		Allergies        string `json:"allergies"`
		MedicalHistory   string `json:"medicalHistory"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检查目标用户存在且为患者
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
	if user.Role != domain.RolePatient {
		h.errorResponse(w, r, "该用户不是患者")
		return
	}

	profile := &domain.PatientProfile{
		UserID:           req.UserID,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		BloodGroup:       req.BloodGroup,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Allergies:        req.Allergies,
		MedicalHistory:   req.MedicalHistory,
	}

	if err := h.repository.CreatePatientProfile(profile); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "patient_profiles_user_id_key":
				h.badRequest(w, r, errors.New("该用户已有患者档案"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建患者档案成功", profile)
}

func (h *Handler) GetAllPatientProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.repository.GetAllPatientProfiles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取患者档案列表成功", profiles)
}

func (h *Handler) GetMyPatientProfile(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	profile, err := h.repository.GetPatientProfileByUserID(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "患者档案不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取患者档案成功", profile)
}

func (h *Handler) GetPatientProfile(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(PatientProfileCtx).(*domain.PatientProfile)
	h.successResponse(w, r, "获取患者档案成功", profile)
}

func (h *Handler) UpdatePatientProfile(w http.ResponseWriter, r *http.Request) {
	profile := r.Context().Value(PatientProfileCtx).(*domain.PatientProfile)

	var req struct {
		DateOfBirth      *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
		Gender           *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
		BloodGroup       *string `json:"bloodGroup"`
		Address          *string `json:"address"`
		EmergencyContact *string `json:"emergencyContact"`
		EmergencyPhone   *string `json:"emergencyPhone"`
		Allergies        *string `json:"allergies"`
		MedicalHistory   *string `json:"medicalHistory"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DateOfBirth != nil {
		profile.DateOfBirth = *req.DateOfBirth
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		profile.BloodGroup = *req.BloodGroup
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		profile.EmergencyPhone = *req.EmergencyPhone
	}
	if req.Allergies != nil {
		profile.Allergies = *req.Allergies
	}
	if req.MedicalHistory != nil {
		profile.MedicalHistory = *req.MedicalHistory
	}

	if err := h.repository.UpdatePatientProfile(profile); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新患者档案成功", profile)
}

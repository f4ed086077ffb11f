package handler

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/medisync-dev/hospital-manager/backend/internal/slotengine"
	"github.com/medisync-dev/hospital-manager/backend/internal/utils"
)

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		DoctorID  int64  `json:"doctorID" validate:"required"`
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime string `json:"startTime" validate:"required"`
		Reason    string `json:"reason" validate:"required"`
		Notes     string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := slotengine.ParseClock(req.StartTime)
	if err != nil {
		h.badRequest(w, r, errors.New("开始时间格式错误"))
		return
	}

	patientProfile, err := h.repository.GetPatientProfileByUserID(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "患者档案不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	doctorProfile, err := h.repository.GetDoctorProfileByID(req.DoctorID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "医生不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 提交前基于最新记录重新校验时段，不信任此前展示给用户的列表
	entries, err := h.repository.GetWeeklyScheduleByDoctorID(doctorProfile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	overrides, err := h.repository.GetOverridesByDoctorID(doctorProfile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	appointments, err := h.repository.GetAppointmentsByDoctorIDAndDate(doctorProfile.ID, req.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	engine := slotengine.New(doctorProfile, entries, overrides, appointments)
	available, err := engine.IsAvailable(req.Date, req.StartTime)
	if err != nil {
		switch {
		case errors.Is(err, slotengine.ErrInvalidSlotDuration):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !available {
		h.errorResponse(w, r, "该时段已不可预约")
		return
	}

	appointment := &domain.Appointment{
		ConfirmationNumber: utils.GenerateConfirmationNumber(),
		PatientID:          patientProfile.ID,
		DoctorID:           doctorProfile.ID,
		BranchID:           doctorProfile.BranchID,
		Date:               req.Date,
		StartTime:          slotengine.FormatClock(start),
		EndTime:            slotengine.FormatClock(start + int(doctorProfile.SlotDurationMinutes)),
		DurationMinutes:    doctorProfile.SlotDurationMinutes,
		Status:             domain.AppointmentStatusPending,
		Reason:             req.Reason,
		Notes:              req.Notes,
	}

	if err := h.repository.InsertAppointment(appointment); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			// 并发提交同一个时段时，后到的插入会触发唯一索引冲突
			case pgErr.ConstraintName == "appointments_doctor_id_date_start_time_key":
				h.errorResponse(w, r, "该时段已不可预约")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 将预约详情通过邮件发送给患者
	doctorUser, err := h.repository.GetUserByID(doctorProfile.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "appointment_created",
		To:   myInfo.Email,
		Data: domain.AppointmentCreatedMailData{
			FullName:           myInfo.FullName,
			DoctorName:         doctorUser.FullName,
			ConfirmationNumber: appointment.ConfirmationNumber,
			Date:               appointment.Date,
			StartTime:          appointment.StartTime,
			EndTime:            appointment.EndTime,
		},
	}

	if err := h.sendMailMessage(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "预约成功", appointment)
}

// GetAppointments 按角色返回不同范围的预约：
// 患者和医生只能看到自己的，管理员和工作人员可以看到全部。
func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var appointments []*domain.Appointment

	switch myInfo.Role {
	case domain.RolePatient:
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
		appointments, err = h.repository.GetAppointmentsByPatientID(profile.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	case domain.RoleDoctor:
		profile, err := h.repository.GetDoctorProfileByUserID(myInfo.ID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "医生档案不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		appointments, err = h.repository.GetAppointmentsByDoctorID(profile.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	default:
		var err error
		appointments, err = h.repository.GetAllAppointments()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "获取预约列表成功", appointments)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 患者和医生只能查看与自己相关的预约
	switch myInfo.Role {
	case domain.RolePatient:
		profile, err := h.repository.GetPatientProfileByUserID(myInfo.ID)
		if err != nil || profile.ID != appointment.PatientID {
			h.errorResponse(w, r, "无权查看该预约")
			return
		}
	case domain.RoleDoctor:
		profile, err := h.repository.GetDoctorProfileByUserID(myInfo.ID)
		if err != nil || profile.ID != appointment.DoctorID {
			h.errorResponse(w, r, "无权查看该预约")
			return
		}
	}

	h.successResponse(w, r, "获取预约详情成功", appointment)
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	var req struct {
		Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateStatusTransition(appointment.Status, domain.AppointmentStatus(req.Status)); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointment.Status = domain.AppointmentStatus(req.Status)

	if err := h.repository.UpdateAppointmentStatus(appointment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新预约状态成功", appointment)
}

func (h *Handler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.repository.GetAllAppointments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="appointments.csv"`)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"确认号", "患者ID", "医生ID", "院区ID", "日期", "开始时间", "结束时间", "时长(分钟)", "状态", "就诊原因"}
	if err := writer.Write(header); err != nil {
		return
	}

	for _, appointment := range appointments {
		record := []string{
			appointment.ConfirmationNumber,
			fmt.Sprintf("%d", appointment.PatientID),
			fmt.Sprintf("%d", appointment.DoctorID),
			fmt.Sprintf("%d", appointment.BranchID),
			appointment.Date,
			appointment.StartTime,
			appointment.EndTime,
			fmt.Sprintf("%d", appointment.DurationMinutes),
			string(appointment.Status),
			appointment.Reason,
		}
		if err := writer.Write(record); err != nil {
			return
		}
	}
}

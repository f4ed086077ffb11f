package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/medisync-dev/hospital-manager/backend/internal/utils"
)

func (h *Handler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		Kind      string `json:"kind" validate:"required,oneof=LEAVE SHIFT_CHANGE"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Reason    string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateOverrideWindow(domain.OverrideKind(req.Kind), req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 申请人必须已有医生档案
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

	override := &domain.ScheduleOverride{
		DoctorID:  profile.ID,
		Date:      req.Date,
		Kind:      domain.OverrideKind(req.Kind),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Status:    domain.OverrideStatusPending,
	}

	if err := h.repository.CreateOverride(override); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交调班申请成功", override)
}

func (h *Handler) GetMyOverrides(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

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

	overrides, err := h.repository.GetOverridesByDoctorID(profile.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取调班申请列表成功", overrides)
}

func (h *Handler) GetOverridesByStatus(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Status string `validate:"required,oneof=PENDING APPROVED DECLINED"`
	}{
		Status: r.URL.Query().Get("status"),
	}
	if req.Status == "" {
		req.Status = string(domain.OverrideStatusPending)
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	overrides, err := h.repository.GetOverridesByStatus(domain.OverrideStatus(req.Status))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取调班申请列表成功", overrides)
}

func (h *Handler) UpdateOverrideStatus(w http.ResponseWriter, r *http.Request) {
	override := r.Context().Value(OverrideCtx).(*domain.ScheduleOverride)

	var req struct {
		Status string `json:"status" validate:"required,oneof=APPROVED DECLINED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 只有待审批的申请可以被处理
	if override.Status != domain.OverrideStatusPending {
		h.errorResponse(w, r, "该申请已被处理")
		return
	}

	override.Status = domain.OverrideStatus(req.Status)

	if err := h.repository.UpdateOverrideStatus(override); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 将审批结果通过邮件通知医生
	profile, err := h.repository.GetDoctorProfileByID(override.DoctorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	doctorUser, err := h.repository.GetUserByID(profile.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "override_decision",
		To:   doctorUser.Email,
		Data: domain.OverrideDecisionMailData{
			FullName: doctorUser.FullName,
			Date:     override.Date,
			Kind:     string(override.Kind),
			Status:   string(override.Status),
			Reason:   override.Reason,
		},
	}

	if err := h.sendMailMessage(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "审批调班申请成功", override)
}

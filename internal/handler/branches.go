package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func (h *Handler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Code    string `json:"code" validate:"required"`
		Address string `json:"address" validate:"required"`
		City    string `json:"city" validate:"required"`
		Phone   string `json:"phone"`
		Email   string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	branch := &domain.Branch{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.repository.CreateBranch(branch); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "branches_name_key":
				h.badRequest(w, r, errors.New("院区名称已存在"))
			case pgErr.ConstraintName == "branches_code_key":
				h.badRequest(w, r, errors.New("院区编号已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建院区成功", branch)
}

func (h *Handler) GetAllBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.repository.GetAllBranches()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取院区列表成功", branches)
}

func (h *Handler) GetBranch(w http.ResponseWriter, r *http.Request) {
	branch := r.Context().Value(BranchCtx).(*domain.Branch)
	h.successResponse(w, r, "获取院区信息成功", branch)
}

func (h *Handler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	branch := r.Context().Value(BranchCtx).(*domain.Branch)

	var req struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		Phone    *string `json:"phone"`
		Email    *string `json:"email" validate:"omitempty,email"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateBranch(branch); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "branches_name_key":
				h.badRequest(w, r, errors.New("院区名称已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新院区信息成功", branch)
}

func (h *Handler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	branch := r.Context().Value(BranchCtx).(*domain.Branch)

	if err := h.repository.DeleteBranch(branch.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除院区成功", nil)
}

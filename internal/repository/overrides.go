package repository

import (
	"context"
	"time"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func (r *Repository) CreateOverride(override *domain.ScheduleOverride) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO schedule_overrides (doctor_id, date, kind, start_time, end_time, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{override.DoctorID, override.Date, override.Kind, override.StartTime, override.EndTime, override.Reason, override.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&override.ID, &override.CreatedAt, &override.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOverrideByID(id int64) (*domain.ScheduleOverride, error) {
	query := `
		SELECT doctor_id, date, kind, start_time, end_time, reason, status, created_at, version
		FROM schedule_overrides WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	override := &domain.ScheduleOverride{
		ID: id,
	}

	dst := []any{&override.DoctorID, &override.Date, &override.Kind, &override.StartTime, &override.EndTime, &override.Reason, &override.Status, &override.CreatedAt, &override.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return override, nil
}

// GetOverridesByDoctorID 按插入顺序返回医生的全部调班申请，
// 可用时段解析在同一天出现多条审批通过的记录时取最后一条。
func (r *Repository) GetOverridesByDoctorID(doctorID int64) ([]*domain.ScheduleOverride, error) {
	query := `
		SELECT id, date, kind, start_time, end_time, reason, status, created_at, version
		FROM schedule_overrides WHERE doctor_id = $1 ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]*domain.ScheduleOverride, 0)
	for rows.Next() {
		override := &domain.ScheduleOverride{
			DoctorID: doctorID,
		}
		dst := []any{&override.ID, &override.Date, &override.Kind, &override.StartTime, &override.EndTime, &override.Reason, &override.Status, &override.CreatedAt, &override.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

func (r *Repository) GetOverridesByStatus(status domain.OverrideStatus) ([]*domain.ScheduleOverride, error) {
	query := `
		SELECT id, doctor_id, date, kind, start_time, end_time, reason, status, created_at, version
		FROM schedule_overrides WHERE status = $1 ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]*domain.ScheduleOverride, 0)
	for rows.Next() {
		override := &domain.ScheduleOverride{}
		dst := []any{&override.ID, &override.DoctorID, &override.Date, &override.Kind, &override.StartTime, &override.EndTime, &override.Reason, &override.Status, &override.CreatedAt, &override.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// UpdateOverrideStatus 由管理员的审批流程调用，时段引擎本身不会修改调班申请。
func (r *Repository) UpdateOverrideStatus(override *domain.ScheduleOverride) error {
	query := `
		UPDATE schedule_overrides
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{override.Status, override.ID, override.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&override.Version); err != nil {
		return err
	}

	return nil
}

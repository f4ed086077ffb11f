package repository

import (
	"context"
	"time"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

// InsertAppointment 以单条插入的方式写入预约。
// appointments 表上有针对 (doctor_id, date, start_time) 的部分唯一索引
// （只覆盖非 CANCELLED 的记录），并发提交同一个时段时只有一个插入会成功，
// 另一个会以唯一约束冲突失败，由 handler 转换成「时段已被预约」。
func (r *Repository) InsertAppointment(appointment *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO appointments (confirmation_number, patient_id, doctor_id, branch_id, date, start_time, end_time, duration_minutes, status, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`

	args := []any{
		appointment.ConfirmationNumber,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.BranchID,
		appointment.Date,
		appointment.StartTime,
		appointment.EndTime,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.Reason,
		appointment.Notes,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT confirmation_number, patient_id, doctor_id, branch_id, date, start_time, end_time, duration_minutes, status, reason, notes, created_at, version
		FROM appointments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	appointment := &domain.Appointment{
		ID: id,
	}

	dst := []any{
		&appointment.ConfirmationNumber,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.BranchID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.DurationMinutes,
		&appointment.Status,
		&appointment.Reason,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appointment, nil
}

// GetAppointmentsByDoctorIDAndDate 返回医生在某一天的全部预约（含已取消的），
// 由时段引擎自行排除 CANCELLED 记录。
func (r *Repository) GetAppointmentsByDoctorIDAndDate(doctorID int64, date string) ([]*domain.Appointment, error) {
	query := `
		SELECT id, confirmation_number, patient_id, branch_id, start_time, end_time, duration_minutes, status, reason, notes, created_at, version
		FROM appointments WHERE doctor_id = $1 AND date = $2 ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{
			DoctorID: doctorID,
			Date:     date,
		}
		dst := []any{
			&appointment.ID,
			&appointment.ConfirmationNumber,
			&appointment.PatientID,
			&appointment.BranchID,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.DurationMinutes,
			&appointment.Status,
			&appointment.Reason,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) GetAppointmentsByPatientID(patientID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT id, confirmation_number, doctor_id, branch_id, date, start_time, end_time, duration_minutes, status, reason, notes, created_at, version
		FROM appointments WHERE patient_id = $1 ORDER BY date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{
			PatientID: patientID,
		}
		dst := []any{
			&appointment.ID,
			&appointment.ConfirmationNumber,
			&appointment.DoctorID,
			&appointment.BranchID,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.DurationMinutes,
			&appointment.Status,
			&appointment.Reason,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) GetAppointmentsByDoctorID(doctorID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT id, confirmation_number, patient_id, branch_id, date, start_time, end_time, duration_minutes, status, reason, notes, created_at, version
		FROM appointments WHERE doctor_id = $1 ORDER BY date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{
			DoctorID: doctorID,
		}
		dst := []any{
			&appointment.ID,
			&appointment.ConfirmationNumber,
			&appointment.PatientID,
			&appointment.BranchID,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.DurationMinutes,
			&appointment.Status,
			&appointment.Reason,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) GetAllAppointments() ([]*domain.Appointment, error) {
	query := `
		SELECT id, confirmation_number, patient_id, doctor_id, branch_id, date, start_time, end_time, duration_minutes, status, reason, notes, created_at, version
		FROM appointments ORDER BY date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{}
		dst := []any{
			&appointment.ID,
			&appointment.ConfirmationNumber,
			&appointment.PatientID,
			&appointment.DoctorID,
			&appointment.BranchID,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.DurationMinutes,
			&appointment.Status,
			&appointment.Reason,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

// UpdateAppointmentStatus 只允许修改状态，预约的其余字段在创建后不可变。
func (r *Repository) UpdateAppointmentStatus(appointment *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{appointment.Status, appointment.ID, appointment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.Version); err != nil {
		return err
	}

	return nil
}

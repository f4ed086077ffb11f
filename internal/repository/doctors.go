package repository

import (
	"context"
	"time"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func (r *Repository) CreateDoctorProfile(profile *domain.DoctorProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO doctor_profiles (user_id, branch_id, specialization, license_number, consultation_fee, slot_duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{profile.UserID, profile.BranchID, profile.Specialization, profile.LicenseNumber, profile.ConsultationFee, profile.SlotDurationMinutes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.CreatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDoctorProfileByID(id int64) (*domain.DoctorProfile, error) {
	query := `
		SELECT user_id, branch_id, specialization, license_number, consultation_fee, slot_duration_minutes, created_at, version
		FROM doctor_profiles WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profile := &domain.DoctorProfile{
		ID: id,
	}

	dst := []any{&profile.UserID, &profile.BranchID, &profile.Specialization, &profile.LicenseNumber, &profile.ConsultationFee, &profile.SlotDurationMinutes, &profile.CreatedAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) GetDoctorProfileByUserID(userID int64) (*domain.DoctorProfile, error) {
	query := `
		SELECT id, branch_id, specialization, license_number, consultation_fee, slot_duration_minutes, created_at, version
		FROM doctor_profiles WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profile := &domain.DoctorProfile{
		UserID: userID,
	}

	dst := []any{&profile.ID, &profile.BranchID, &profile.Specialization, &profile.LicenseNumber, &profile.ConsultationFee, &profile.SlotDurationMinutes, &profile.CreatedAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) GetAllDoctorProfiles() ([]*domain.DoctorProfile, error) {
	query := `
		SELECT id, user_id, branch_id, specialization, license_number, consultation_fee, slot_duration_minutes, created_at, version
		FROM doctor_profiles ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*domain.DoctorProfile, 0)
	for rows.Next() {
		profile := &domain.DoctorProfile{}
		dst := []any{&profile.ID, &profile.UserID, &profile.BranchID, &profile.Specialization, &profile.LicenseNumber, &profile.ConsultationFee, &profile.SlotDurationMinutes, &profile.CreatedAt, &profile.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *Repository) UpdateDoctorProfile(profile *domain.DoctorProfile) error {
	query := `
		UPDATE doctor_profiles
		SET
			branch_id = $1,
			specialization = $2,
			license_number = $3,
			consultation_fee = $4,
			slot_duration_minutes = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{profile.BranchID, profile.Specialization, profile.LicenseNumber, profile.ConsultationFee, profile.SlotDurationMinutes, profile.ID, profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.CreatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}

// GetWeeklyScheduleByDoctorID 按插入顺序返回医生的每周排班，
// 可用时段解析依赖这个顺序在出现重复记录时取最后一条。
func (r *Repository) GetWeeklyScheduleByDoctorID(doctorID int64) ([]*domain.WeeklyScheduleEntry, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, is_active, created_at, version
		FROM doctor_weekly_schedules WHERE doctor_id = $1 ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.WeeklyScheduleEntry, 0)
	for rows.Next() {
		entry := &domain.WeeklyScheduleEntry{
			DoctorID: doctorID,
		}
		dst := []any{&entry.ID, &entry.DayOfWeek, &entry.StartTime, &entry.EndTime, &entry.IsActive, &entry.CreatedAt, &entry.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ReplaceWeeklySchedule 以替换的方式更新医生的每周排班：
// 先删除原有记录再插入新记录，在同一个事务中完成。
func (r *Repository) ReplaceWeeklySchedule(doctorID int64, entries []*domain.WeeklyScheduleEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM doctor_weekly_schedules WHERE doctor_id = $1`
	if _, err := tx.ExecContext(ctx, query, doctorID); err != nil {
		return err
	}

	for _, entry := range entries {
		query := `
			INSERT INTO doctor_weekly_schedules (doctor_id, day_of_week, start_time, end_time, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, version
		`
		entry.DoctorID = doctorID
		args := []any{doctorID, entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.IsActive}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt, &entry.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

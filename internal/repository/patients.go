package repository

import (
	"context"
	"time"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func (r *Repository) CreatePatientProfile(profile *domain.PatientProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO patient_profiles (user_id, date_of_birth, gender, blood_group, address, emergency_contact, emergency_phone, allergies, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	args := []any{profile.UserID, profile.DateOfBirth, profile.Gender, profile.BloodGroup, profile.Address, profile.EmergencyContact, profile.EmergencyPhone, profile.Allergies, profile.MedicalHistory}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.CreatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPatientProfileByID(id int64) (*domain.PatientProfile, error) {
	query := `
		SELECT user_id, date_of_birth, gender, blood_group, address, emergency_contact, emergency_phone, allergies, medical_history, created_at, version
		FROM patient_profiles WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profile := &domain.PatientProfile{
		ID: id,
	}

	dst := []any{&profile.UserID, &profile.DateOfBirth, &profile.Gender, &profile.BloodGroup, &profile.Address, &profile.EmergencyContact, &profile.EmergencyPhone, &profile.Allergies, &profile.MedicalHistory, &profile.CreatedAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) GetPatientProfileByUserID(userID int64) (*domain.PatientProfile, error) {
	query := `
		SELECT id, date_of_birth, gender, blood_group, address, emergency_contact, emergency_phone, allergies, medical_history, created_at, version
		FROM patient_profiles WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profile := &domain.PatientProfile{
		UserID: userID,
	}

	dst := []any{&profile.ID, &profile.DateOfBirth, &profile.Gender, &profile.BloodGroup, &profile.Address, &profile.EmergencyContact, &profile.EmergencyPhone, &profile.Allergies, &profile.MedicalHistory, &profile.CreatedAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) GetAllPatientProfiles() ([]*domain.PatientProfile, error) {
	query := `
		SELECT id, user_id, date_of_birth, gender, blood_group, address, emergency_contact, emergency_phone, allergies, medical_history, created_at, version
		FROM patient_profiles ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*domain.PatientProfile, 0)
	for rows.Next() {
		profile := &domain.PatientProfile{}
		dst := []any{&profile.ID, &profile.UserID, &profile.DateOfBirth, &profile.Gender, &profile.BloodGroup, &profile.Address, &profile.EmergencyContact, &profile.EmergencyPhone, &profile.Allergies, &profile.MedicalHistory, &profile.CreatedAt, &profile.Version}
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

func (r *Repository) UpdatePatientProfile(profile *domain.PatientProfile) error {
	query := `
		UPDATE patient_profiles
		SET
			date_of_birth = $1,
			gender = $2,
			blood_group = $3,
			address = $4,
			emergency_contact = $5,
			emergency_phone = $6,
			allergies = $7,
			medical_history = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{profile.DateOfBirth, profile.Gender, profile.BloodGroup, profile.Address, profile.EmergencyContact, profile.EmergencyPhone, profile.Allergies, profile.MedicalHistory, profile.ID, profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.CreatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}

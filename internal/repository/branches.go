package repository

import (
	"context"
	"time"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func (r *Repository) CreateBranch(branch *domain.Branch) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO branches (name, code, address, city, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	args := []any{branch.Name, branch.Code, branch.Address, branch.City, branch.Phone, branch.Email}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&branch.ID, &branch.IsActive, &branch.CreatedAt, &branch.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBranchByID(id int64) (*domain.Branch, error) {
	query := `
		SELECT name, code, address, city, phone, email, is_active, created_at, version
		FROM branches WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	branch := &domain.Branch{
		ID: id,
	}

	dst := []any{&branch.Name, &branch.Code, &branch.Address, &branch.City, &branch.Phone, &branch.Email, &branch.IsActive, &branch.CreatedAt, &branch.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return branch, nil
}

func (r *Repository) GetAllBranches() ([]*domain.Branch, error) {
	query := `
		SELECT id, name, code, address, city, phone, email, is_active, created_at, version
		FROM branches ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		branch := &domain.Branch{}
		dst := []any{&branch.ID, &branch.Name, &branch.Code, &branch.Address, &branch.City, &branch.Phone, &branch.Email, &branch.IsActive, &branch.CreatedAt, &branch.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return branches, nil
}

func (r *Repository) UpdateBranch(branch *domain.Branch) error {
	query := `
		UPDATE branches
		SET
			name = $1,
			code = $2,
			address = $3,
			city = $4,
			phone = $5,
			email = $6,
			is_active = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{branch.Name, branch.Code, branch.Address, branch.City, branch.Phone, branch.Email, branch.IsActive, branch.ID, branch.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&branch.CreatedAt, &branch.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBranch(id int64) error {
	query := `
		DELETE FROM branches WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

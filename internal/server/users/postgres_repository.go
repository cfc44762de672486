package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ekarpova/resumecraft/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (email, password_hash, first_name, last_name, phone)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// unique_violation on the email column
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, coalesce(phone, ''), created_at
		 FROM users
		 WHERE email = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, coalesce(phone, ''), created_at
		 FROM users
		 WHERE id = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, phone string) error {
	query :=
		`UPDATE users SET first_name = $1, last_name = $2, phone = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, firstName, lastName, phone, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context, id string) (*Stats, error) {
	query :=
		`SELECT
		   (SELECT count(*) FROM resumes r WHERE r.user_id = $1),
		   (SELECT count(*) FROM work_experience we JOIN resumes r ON we.resume_id = r.id WHERE r.user_id = $1),
		   (SELECT count(*) FROM education e JOIN resumes r ON e.resume_id = r.id WHERE r.user_id = $1),
		   (SELECT count(*) FROM skills s JOIN resumes r ON s.resume_id = r.id WHERE r.user_id = $1)
		 `

	stats := &Stats{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&stats.ResumeCount, &stats.WorkExperienceCount, &stats.EducationCount, &stats.SkillsCount)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return stats, nil
}

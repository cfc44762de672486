package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ekarpova/resumecraft/internal/server/migrations"
	"github.com/ekarpova/resumecraft/internal/server/refreshtokens"
	"github.com/ekarpova/resumecraft/internal/server/resumes"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	users         users.Repository
	refreshTokens refreshtokens.Repository
	resumes       resumes.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *PostgresRepositoryManager) Resumes() resumes.Repository {
	return m.resumes
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	refreshTokenRepo, err := refreshtokens.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("refresh token repo creation error: %w", err)
	}

	resumeRepo, err := resumes.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("resume repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:            db,
		users:         userRepo,
		refreshTokens: refreshTokenRepo,
		resumes:       resumeRepo,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

package db

import (
	"context"
	"database/sql"

	"github.com/ekarpova/resumecraft/internal/server/refreshtokens"
	"github.com/ekarpova/resumecraft/internal/server/resumes"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Resumes() resumes.Repository
}

package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/ekarpova/resumecraft/internal/client/api"
	"github.com/ekarpova/resumecraft/internal/client/config"
	"github.com/ekarpova/resumecraft/internal/client/services"
	"github.com/ekarpova/resumecraft/internal/client/session"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	resumeService services.ResumeService
	userEmail     string
	reader        *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient := api.NewClient(c.ServerURL, c.RequestTimeout)
	store := session.NewStore(apiClient)

	as := services.NewAuthService(apiClient)
	rs := services.NewResumeService(apiClient, store)

	return &App{config: c, authService: as, resumeService: rs, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}

func (a *App) hasOpenResume() bool {
	return a.resumeService.Current() != nil
}

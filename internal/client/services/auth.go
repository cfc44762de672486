// Package services contains application services for the ResumeCraft
// client: account/session management and the resume editing workflow that
// ties the API client, the aggregate store and the section editors
// together.
package services

import (
	"context"

	"github.com/ekarpova/resumecraft/internal/client/api"
	"github.com/ekarpova/resumecraft/internal/resume"
)

// Client is the API surface the services need. *api.Client satisfies this;
// tests provide a stub.
type Client interface {
	Register(ctx context.Context, email, password, firstName, lastName string) error
	Login(ctx context.Context, email, password string) error
	Logout()
	IsAuthenticated() bool

	ListResumes(ctx context.Context) ([]resume.Summary, error)
	GetResume(ctx context.Context, id string) (*resume.Aggregate, error)
	CreateResume(ctx context.Context, title string, template resume.Template) (string, error)
	UpdateResume(ctx context.Context, id, title string, template resume.Template, isPublic bool) error
	DeleteResume(ctx context.Context, id string) error

	SavePersonalInfo(ctx context.Context, resumeID string, p *resume.PersonalInfo) error
	AddWorkExperience(ctx context.Context, resumeID string, w *resume.WorkExperience) (string, error)
	AddEducation(ctx context.Context, resumeID string, e *resume.Education) (string, error)
	AddSkill(ctx context.Context, resumeID string, s *resume.Skill) (string, error)

	GetProfile(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, firstName, lastName, phone string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, password string) error
	GetStats(ctx context.Context) (*api.Stats, error)
}

// AuthService defines account and session operations for the CLI.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) error
	Login(ctx context.Context, email, password string) error
	Logout()
	IsAuthenticated() bool

	Profile(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, firstName, lastName, phone string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, password string) error
	Stats(ctx context.Context) (*api.Stats, error)
}

type authService struct {
	client Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client Client) AuthService {
	return &authService{client: client}
}

func (a *authService) Register(ctx context.Context, email, password, firstName, lastName string) error {
	return a.client.Register(ctx, email, password, firstName, lastName)
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	return a.client.Login(ctx, email, password)
}

func (a *authService) Logout() {
	a.client.Logout()
}

func (a *authService) IsAuthenticated() bool {
	return a.client.IsAuthenticated()
}

func (a *authService) Profile(ctx context.Context) (*api.Profile, error) {
	return a.client.GetProfile(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, firstName, lastName, phone string) error {
	return a.client.UpdateProfile(ctx, firstName, lastName, phone)
}

func (a *authService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return a.client.ChangePassword(ctx, currentPassword, newPassword)
}

func (a *authService) DeleteAccount(ctx context.Context, password string) error {
	return a.client.DeleteAccount(ctx, password)
}

func (a *authService) Stats(ctx context.Context) (*api.Stats, error) {
	return a.client.GetStats(ctx)
}

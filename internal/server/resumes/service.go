package resumes

import (
	"context"
	"fmt"

	"github.com/ekarpova/resumecraft/internal/resume"
)

// Service wraps the repository with ownership verification for section
// writes. Section payloads arrive already normalized and validated by the
// transport layer; the service re-checks that the target resume exists and
// belongs to the caller before any write (defense against id-guessing).
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID, title string, template resume.Template) (string, error) {
	if template == "" {
		template = resume.TemplateModern
	}
	id, err := s.repo.Create(ctx, userID, title, template)
	if err != nil {
		return "", fmt.Errorf("error creating resume: %w", err)
	}
	return id, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]resume.Summary, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID string) (*resume.Aggregate, error) {
	return s.repo.GetAggregate(ctx, id, userID)
}

func (s *Service) Update(ctx context.Context, id, userID, title string, template resume.Template, isPublic bool) error {
	if template == "" {
		template = resume.TemplateModern
	}
	return s.repo.Update(ctx, id, userID, title, template, isPublic)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *Service) verifyOwnership(ctx context.Context, resumeID, userID string) error {
	_, err := s.repo.GetOwned(ctx, resumeID, userID)
	return err
}

func (s *Service) SavePersonalInfo(ctx context.Context, resumeID, userID string, p *resume.PersonalInfo) error {
	if err := s.verifyOwnership(ctx, resumeID, userID); err != nil {
		return err
	}
	return s.repo.UpsertPersonalInfo(ctx, resumeID, p)
}

func (s *Service) AddWorkExperience(ctx context.Context, resumeID, userID string, w *resume.WorkExperience) (string, error) {
	if err := s.verifyOwnership(ctx, resumeID, userID); err != nil {
		return "", err
	}
	return s.repo.AddWorkExperience(ctx, resumeID, w)
}

func (s *Service) AddEducation(ctx context.Context, resumeID, userID string, e *resume.Education) (string, error) {
	if err := s.verifyOwnership(ctx, resumeID, userID); err != nil {
		return "", err
	}
	return s.repo.AddEducation(ctx, resumeID, e)
}

func (s *Service) AddSkill(ctx context.Context, resumeID, userID string, sk *resume.Skill) (string, error) {
	if err := s.verifyOwnership(ctx, resumeID, userID); err != nil {
		return "", err
	}
	return s.repo.AddSkill(ctx, resumeID, sk)
}

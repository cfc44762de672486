package resumes

import (
	"context"

	"github.com/ekarpova/resumecraft/internal/resume"
)

// Repository persists resumes and their sections. Every method that writes
// takes the owning user id so ownership is re-checked inside the query, not
// trusted from the caller.
type Repository interface {
	Create(ctx context.Context, userID, title string, template resume.Template) (string, error)
	List(ctx context.Context, userID string) ([]resume.Summary, error)
	GetOwned(ctx context.Context, id, userID string) (*resume.Resume, error)
	GetAggregate(ctx context.Context, id, userID string) (*resume.Aggregate, error)
	Update(ctx context.Context, id, userID, title string, template resume.Template, isPublic bool) error
	Delete(ctx context.Context, id, userID string) error

	UpsertPersonalInfo(ctx context.Context, resumeID string, p *resume.PersonalInfo) error
	AddWorkExperience(ctx context.Context, resumeID string, w *resume.WorkExperience) (string, error)
	AddEducation(ctx context.Context, resumeID string, e *resume.Education) (string, error)
	AddSkill(ctx context.Context, resumeID string, s *resume.Skill) (string, error)
}

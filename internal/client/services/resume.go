package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekarpova/resumecraft/internal/client/editor"
	"github.com/ekarpova/resumecraft/internal/client/session"
	"github.com/ekarpova/resumecraft/internal/resume"
)

// ResumeService drives the resume workflow: list/create/open/update/delete
// plus the section submission path. A successful section submit is pushed
// to the server first and merged into the aggregate store only after the
// server confirms it.
type ResumeService interface {
	List(ctx context.Context) ([]resume.Summary, error)
	Create(ctx context.Context, title string, template resume.Template) (string, error)
	Open(ctx context.Context, id string) (*resume.Aggregate, error)
	Reload(ctx context.Context) (*resume.Aggregate, error)
	Close()
	Current() *resume.Aggregate
	Update(ctx context.Context, title string, template resume.Template, isPublic bool) error
	Delete(ctx context.Context, id string) error

	// NewEditor builds the state machine for one section of the currently
	// opened resume.
	NewEditor(kind resume.SectionKind) (*editor.Editor, error)
}

// ErrNoResumeOpen is returned by operations that need an opened resume.
var ErrNoResumeOpen = errors.New("no resume is open")

type resumeService struct {
	client Client
	store  *session.Store
}

func NewResumeService(client Client, store *session.Store) ResumeService {
	return &resumeService{client: client, store: store}
}

func (s *resumeService) List(ctx context.Context) ([]resume.Summary, error) {
	return s.client.ListResumes(ctx)
}

func (s *resumeService) Create(ctx context.Context, title string, template resume.Template) (string, error) {
	return s.client.CreateResume(ctx, title, template)
}

func (s *resumeService) Open(ctx context.Context, id string) (*resume.Aggregate, error) {
	return s.store.Load(ctx, id)
}

// Reload refetches the currently opened resume. Section collections may
// come back in server order, which can differ from local append order.
func (s *resumeService) Reload(ctx context.Context) (*resume.Aggregate, error) {
	id := s.store.CurrentID()
	if id == "" {
		return nil, ErrNoResumeOpen
	}
	return s.store.Load(ctx, id)
}

func (s *resumeService) Close() {
	s.store.Clear()
}

func (s *resumeService) Current() *resume.Aggregate {
	return s.store.Current()
}

func (s *resumeService) Update(ctx context.Context, title string, template resume.Template, isPublic bool) error {
	id := s.store.CurrentID()
	if id == "" {
		return ErrNoResumeOpen
	}
	if err := s.client.UpdateResume(ctx, id, title, template, isPublic); err != nil {
		return err
	}
	_, err := s.store.Load(ctx, id)
	return err
}

func (s *resumeService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteResume(ctx, id); err != nil {
		return err
	}
	if s.store.CurrentID() == id {
		s.store.Clear()
	}
	return nil
}

func (s *resumeService) NewEditor(kind resume.SectionKind) (*editor.Editor, error) {
	agg := s.store.Current()
	if agg == nil {
		return nil, ErrNoResumeOpen
	}

	resumeID := agg.ID
	return editor.New(kind, sectionHasData(agg, kind), func(ctx context.Context, payload resume.SectionPayload) error {
		return s.syncSection(ctx, resumeID, payload)
	}), nil
}

func sectionHasData(agg *resume.Aggregate, kind resume.SectionKind) bool {
	switch kind {
	case resume.SectionPersonalInfo:
		return agg.HasPersonalInfo()
	case resume.SectionWorkExperience:
		return len(agg.WorkExperience) > 0
	case resume.SectionEducation:
		return len(agg.Education) > 0
	case resume.SectionSkill:
		return len(agg.Skills) > 0
	default:
		return false
	}
}

// syncSection performs the server write for one payload and merges the
// confirmed result. A result that comes back after the resume was closed or
// swapped is dropped; the server write itself already succeeded.
func (s *resumeService) syncSection(ctx context.Context, resumeID string, payload resume.SectionPayload) error {
	result := session.SectionResult{ResumeID: resumeID, Kind: payload.Kind()}

	switch p := payload.(type) {
	case *resume.PersonalInfo:
		if err := s.client.SavePersonalInfo(ctx, resumeID, p); err != nil {
			return err
		}
		result.PersonalInfo = p

	case *resume.WorkExperience:
		id, err := s.client.AddWorkExperience(ctx, resumeID, p)
		if err != nil {
			return err
		}
		p.ID = id
		result.WorkExperience = p

	case *resume.Education:
		id, err := s.client.AddEducation(ctx, resumeID, p)
		if err != nil {
			return err
		}
		p.ID = id
		result.Education = p

	case *resume.Skill:
		id, err := s.client.AddSkill(ctx, resumeID, p)
		if err != nil {
			return err
		}
		p.ID = id
		result.Skill = p

	default:
		return fmt.Errorf("unknown section payload %T", payload)
	}

	if err := s.store.ApplySectionResult(result); err != nil {
		if errors.Is(err, session.ErrStaleResult) || errors.Is(err, session.ErrNoResume) {
			return nil
		}
		return err
	}
	return nil
}

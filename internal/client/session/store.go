// Package session holds the client-side copy of the currently opened
// resume. The store is pessimistic: it only ever contains the last
// successfully loaded aggregate plus section results the server has
// confirmed, merged in the order they were confirmed.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ekarpova/resumecraft/internal/resume"
)

// ErrStaleResult is returned when a confirmed section result arrives for a
// resume that is no longer the one held by the store. The result is
// discarded; the caller may reload if it cares.
var ErrStaleResult = errors.New("stale section result")

// ErrNoResume is returned when a section result arrives while nothing is
// loaded.
var ErrNoResume = errors.New("no resume loaded")

// Loader fetches the full aggregate for one resume. *api.Client satisfies
// this.
type Loader interface {
	GetResume(ctx context.Context, id string) (*resume.Aggregate, error)
}

// SectionResult is a server-confirmed section mutation: the normalized
// payload as submitted, plus the id the server assigned (empty for the
// personal info upsert, which has no per-entry id on the wire).
type SectionResult struct {
	ResumeID       string
	Kind           resume.SectionKind
	PersonalInfo   *resume.PersonalInfo
	WorkExperience *resume.WorkExperience
	Education      *resume.Education
	Skill          *resume.Skill
}

// Store owns the current aggregate. All access goes through the mutex so a
// submission confirmed on another goroutine cannot race a reload.
type Store struct {
	mu      sync.Mutex
	loader  Loader
	current *resume.Aggregate
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Load fetches the aggregate for id and replaces the store content with it.
// On failure the previous content, if any, stays intact.
func (s *Store) Load(ctx context.Context, id string) (*resume.Aggregate, error) {
	agg, err := s.loader.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = agg
	return agg, nil
}

// Clear forgets the current aggregate. Calling it on an empty store is a
// no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the held aggregate, or nil when nothing is loaded.
func (s *Store) Current() *resume.Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentID returns the id of the held aggregate, or "".
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// ApplySectionResult merges one confirmed mutation into the aggregate.
// Results targeting a resume the store no longer holds are discarded with
// ErrStaleResult. Personal info replaces the section wholesale; collection
// results append. A later full reload may order entries differently than
// the append order seen here; that is accepted.
func (s *Store) ApplySectionResult(r SectionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoResume
	}
	if r.ResumeID != s.current.ID {
		return fmt.Errorf("%w: got %s, holding %s", ErrStaleResult, r.ResumeID, s.current.ID)
	}

	switch r.Kind {
	case resume.SectionPersonalInfo:
		p := *r.PersonalInfo
		s.current.PersonalInfo = &p
	case resume.SectionWorkExperience:
		s.current.WorkExperience = append(s.current.WorkExperience, *r.WorkExperience)
	case resume.SectionEducation:
		s.current.Education = append(s.current.Education, *r.Education)
	case resume.SectionSkill:
		s.current.Skills = append(s.current.Skills, *r.Skill)
	default:
		return fmt.Errorf("unknown section kind: %q", r.Kind)
	}
	return nil
}

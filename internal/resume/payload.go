package resume

import "strings"

// SectionPayload is implemented by the four section types that can be
// submitted to the backend. Normalize must be called before Validate so
// required-field checks run against trimmed values.
type SectionPayload interface {
	Kind() SectionKind
	Normalize()
}

func (p *PersonalInfo) Kind() SectionKind   { return SectionPersonalInfo }
func (w *WorkExperience) Kind() SectionKind { return SectionWorkExperience }
func (e *Education) Kind() SectionKind      { return SectionEducation }
func (s *Skill) Kind() SectionKind          { return SectionSkill }

func (p *PersonalInfo) Normalize() {
	trimAll(&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address,
		&p.City, &p.State, &p.ZipCode, &p.Country,
		&p.LinkedinURL, &p.GithubURL, &p.WebsiteURL, &p.Summary)
}

func (w *WorkExperience) Normalize() {
	trimAll(&w.CompanyName, &w.Position, &w.Location, &w.StartDate,
		&w.EndDate, &w.Description, &w.Achievements)
	// When the position is marked current, any supplied end date is
	// treated as absent.
	if w.IsCurrent {
		w.EndDate = ""
	}
}

func (e *Education) Normalize() {
	trimAll(&e.Institution, &e.Degree, &e.FieldOfStudy, &e.Location,
		&e.StartDate, &e.EndDate, &e.Description)
	if e.IsCurrent {
		e.EndDate = ""
	}
}

func (s *Skill) Normalize() {
	trimAll(&s.SkillName, &s.Category)
	if s.SkillLevel == "" {
		s.SkillLevel = SkillIntermediate
	}
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

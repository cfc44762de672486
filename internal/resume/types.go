// Package resume defines the resume domain model shared by the client and
// the server: the aggregate document, its four editable sections, payload
// validation, and display formatting.
//
// Field names cross the wire in camelCase ("firstName", "companyName"); the
// mapping to Go field names is a pure renaming.
package resume

import "time"

// Template identifies the visual template a resume is rendered with.
type Template string

const (
	TemplateModern   Template = "modern"
	TemplateClassic  Template = "classic"
	TemplateCreative Template = "creative"
	TemplateMinimal  Template = "minimal"
)

// SkillLevel is the proficiency attached to a skill entry.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// SectionKind is a closed tag over the editable resume sections. Code that
// dispatches on it must handle every constant; there is no open-ended
// string dispatch beyond this tag.
type SectionKind string

const (
	SectionPersonalInfo   SectionKind = "personal_info"
	SectionWorkExperience SectionKind = "work_experience"
	SectionEducation      SectionKind = "education"
	SectionSkill          SectionKind = "skill"
)

// Resume holds the top-level fields of a resume document.
type Resume struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Title     string    `json:"title" validate:"required"`
	Template  Template  `json:"template" validate:"omitempty,oneof=modern classic creative minimal"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Summary is a row of the resume list view: resume fields plus the owner
// name denormalized from personal info.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  Template  `json:"template"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
}

// PersonalInfo is the 1:1 identity/contact section. It is created and
// updated via upsert and never deleted on its own.
type PersonalInfo struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	Country     string `json:"country,omitempty"`
	LinkedinURL string `json:"linkedinUrl,omitempty"`
	GithubURL   string `json:"githubUrl,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// WorkExperience is one entry of the ordered work history collection.
type WorkExperience struct {
	ID           string `json:"id,omitempty"`
	CompanyName  string `json:"companyName" validate:"required"`
	Position     string `json:"position" validate:"required"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent    bool   `json:"isCurrent"`
	Description  string `json:"description,omitempty"`
	Achievements string `json:"achievements,omitempty"`
}

// Education is one entry of the ordered education collection.
type Education struct {
	ID           string   `json:"id,omitempty"`
	Institution  string   `json:"institution" validate:"required"`
	Degree       string   `json:"degree" validate:"required"`
	FieldOfStudy string   `json:"fieldOfStudy,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string   `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent    bool     `json:"isCurrent"`
	GPA          *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	Description  string   `json:"description,omitempty"`
}

// Skill is one entry of the unordered skill set. Category is a free label
// used only for grouping on display.
type Skill struct {
	ID         string     `json:"id,omitempty"`
	SkillName  string     `json:"skillName" validate:"required"`
	SkillLevel SkillLevel `json:"skillLevel" validate:"required,oneof=Beginner Intermediate Advanced Expert"`
	Category   string     `json:"category,omitempty"`
}

// Project, Certification and Language are fetch-only collections: they are
// part of the composed aggregate read but have no submission path.
type Project struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	ProjectURL   string `json:"projectUrl,omitempty"`
	GithubURL    string `json:"githubUrl,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

type Certification struct {
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuingOrganization,omitempty"`
	IssueDate           string `json:"issueDate,omitempty"`
	ExpiryDate          string `json:"expiryDate,omitempty"`
	CredentialID        string `json:"credentialId,omitempty"`
	CredentialURL       string `json:"credentialUrl,omitempty"`
}

type Language struct {
	ID          string `json:"id,omitempty"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Aggregate is the complete composed resume document: the resume row plus
// all section data, as fetched in one read.
type Aggregate struct {
	Resume
	PersonalInfo   *PersonalInfo    `json:"personalInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	Languages      []Language       `json:"languages"`
}

// HasPersonalInfo reports whether the aggregate carries a populated
// personal info section. The server returns an empty object when no row
// exists yet, so presence is decided by the required fields.
func (a *Aggregate) HasPersonalInfo() bool {
	p := a.PersonalInfo
	if p == nil {
		return false
	}
	return p.FirstName != "" || p.LastName != "" || p.Email != ""
}

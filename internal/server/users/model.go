package users

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
}

// Stats aggregates counts across everything the user owns.
type Stats struct {
	ResumeCount         int `json:"resumeCount"`
	WorkExperienceCount int `json:"workExperienceCount"`
	EducationCount      int `json:"educationCount"`
	SkillsCount         int `json:"skillsCount"`
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ekarpova/resumecraft/internal/client/editor"
	"github.com/ekarpova/resumecraft/internal/client/services"
	"github.com/ekarpova/resumecraft/internal/resume"
)

// openEditor builds the editor for one section of the opened resume and
// puts it into editing. Prompts may prefill from existing data; the
// populated-section Viewing state is left via an explicit Edit transition.
func (a *App) openEditor(kind resume.SectionKind) (*editor.Editor, error) {
	ed, err := a.resumeService.NewEditor(kind)
	if err != nil {
		if errors.Is(err, services.ErrNoResumeOpen) {
			fmt.Println("No resume is open. Use 'open <id>' first.")
		}
		return nil, err
	}
	if ed.State() == editor.StateViewing {
		ed.Edit()
	}
	return ed, nil
}

// submitSection runs the validate-then-sync step and reports the outcome.
// On validation failure the field messages are printed; the server was
// never contacted and the user can rerun the command with corrected input.
func submitSection(ctx context.Context, ed *editor.Editor, payload resume.SectionPayload) error {
	if err := ed.Submit(ctx, payload); err != nil {
		var verr *resume.ValidationError
		if errors.As(err, &verr) {
			fmt.Println("Validation failed:")
			for _, f := range verr.Fields {
				fmt.Printf("  - %s\n", f.Message)
			}
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Saved")
	return nil
}

// EditPersonalInfo walks the user through the personal info form,
// prefilled with the current values, and upserts the section.
func (a *App) EditPersonalInfo(ctx context.Context) error {
	ed, err := a.openEditor(resume.SectionPersonalInfo)
	if err != nil {
		return nil
	}

	var def resume.PersonalInfo
	if current := a.resumeService.Current().PersonalInfo; current != nil {
		def = *current
	}

	fmt.Println("Personal information (':q' to cancel, Enter keeps the shown value)")

	p := &resume.PersonalInfo{}
	fields := []struct {
		label string
		def   string
		dst   *string
	}{
		{"First name", def.FirstName, &p.FirstName},
		{"Last name", def.LastName, &p.LastName},
		{"Email", def.Email, &p.Email},
		{"Phone", def.Phone, &p.Phone},
		{"Address", def.Address, &p.Address},
		{"City", def.City, &p.City},
		{"State", def.State, &p.State},
		{"Zip code", def.ZipCode, &p.ZipCode},
		{"Country", def.Country, &p.Country},
		{"LinkedIn URL", def.LinkedinURL, &p.LinkedinURL},
		{"GitHub URL", def.GithubURL, &p.GithubURL},
		{"Website URL", def.WebsiteURL, &p.WebsiteURL},
	}
	for _, f := range fields {
		value, err := GetField(a.reader, f.label, f.def, os.Stdout)
		if err != nil {
			_ = ed.Cancel()
			return cancelOrErr(err)
		}
		*f.dst = value
	}

	summary, err := GetMultiline(a.reader, "Summary:", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return err
	}
	if summary == "" {
		summary = def.Summary
	}
	p.Summary = summary

	return submitSection(ctx, ed, p)
}

// AddWorkExperience collects one work history entry and appends it.
func (a *App) AddWorkExperience(ctx context.Context) error {
	ed, err := a.openEditor(resume.SectionWorkExperience)
	if err != nil {
		return nil
	}

	fmt.Println("New work experience (':q' to cancel)")

	w := &resume.WorkExperience{}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Company name", &w.CompanyName},
		{"Position", &w.Position},
		{"Location", &w.Location},
		{"Start date (YYYY-MM-DD)", &w.StartDate},
	}
	for _, f := range fields {
		value, err := GetField(a.reader, f.label, "", os.Stdout)
		if err != nil {
			_ = ed.Cancel()
			return cancelOrErr(err)
		}
		*f.dst = value
	}

	isCurrent, err := GetYesNo(a.reader, "Current position?", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return err
	}
	w.IsCurrent = isCurrent

	if !isCurrent {
		endDate, err := GetField(a.reader, "End date (YYYY-MM-DD)", "", os.Stdout)
		if err != nil {
			_ = ed.Cancel()
			return cancelOrErr(err)
		}
		w.EndDate = endDate
	}

	description, err := GetMultiline(a.reader, "Description:", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return err
	}
	w.Description = description

	achievements, err := GetMultiline(a.reader, "Achievements:", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return err
	}
	w.Achievements = achievements

	return submitSection(ctx, ed, w)
}

// AddEducation collects one education entry and appends it.
func (a *App) AddEducation(ctx context.Context) error {
	ed, err := a.openEditor(resume.SectionEducation)
	if err != nil {
		return nil
	}

	fmt.Println("New education entry (':q' to cancel)")

	e := &resume.Education{}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Institution", &e.Institution},
		{"Degree", &e.Degree},
		{"Field of study", &e.FieldOfStudy},
		{"Location", &e.Location},
		{"Start date (YYYY-MM-DD)", &e.StartDate},
	}
	for _, f := range fields {
		value, err := GetField(a.reader, f.label, "", os.Stdout)
		if err != nil {
			_ = ed.Cancel()
			return cancelOrErr(err)
		}
		*f.dst = value
	}

	isCurrent, err := GetYesNo(a.reader, "Currently studying?", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return err
	}
	e.IsCurrent = isCurrent

	if !isCurrent {
		endDate, err := GetField(a.reader, "End date (YYYY-MM-DD)", "", os.Stdout)
		if err != nil {
			_ = ed.Cancel()
			return cancelOrErr(err)
		}
		e.EndDate = endDate
	}

	gpaText, err := GetField(a.reader, "GPA (0.0-4.0, Enter to skip)", "", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return cancelOrErr(err)
	}
	if gpaText != "" {
		gpa, err := strconv.ParseFloat(gpaText, 64)
		if err != nil {
			fmt.Println("GPA must be a number")
			_ = ed.Cancel()
			return nil
		}
		e.GPA = &gpa
	}

	description, err := GetMultiline(a.reader, "Description:", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return err
	}
	e.Description = description

	return submitSection(ctx, ed, e)
}

// AddSkill collects one skill and appends it.
func (a *App) AddSkill(ctx context.Context) error {
	ed, err := a.openEditor(resume.SectionSkill)
	if err != nil {
		return nil
	}

	fmt.Println("New skill (':q' to cancel)")

	s := &resume.Skill{}

	name, err := GetField(a.reader, "Skill name", "", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return cancelOrErr(err)
	}
	s.SkillName = name

	level, err := GetField(a.reader, "Level (Beginner/Intermediate/Advanced/Expert)", string(resume.SkillIntermediate), os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return cancelOrErr(err)
	}
	s.SkillLevel = resume.SkillLevel(level)

	category, err := GetField(a.reader, "Category", "", os.Stdout)
	if err != nil {
		_ = ed.Cancel()
		return cancelOrErr(err)
	}
	s.Category = category

	return submitSection(ctx, ed, s)
}

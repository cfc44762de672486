package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ekarpova/resumecraft/internal/resume"
)

// ListResumes prints one line per resume: id, title, template and the
// owner name when personal info exists.
func (a *App) ListResumes(ctx context.Context) error {
	list, err := a.resumeService.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(list) == 0 {
		fmt.Println("No resumes yet. Use 'create' to start one.")
		return nil
	}
	for _, item := range list {
		owner := ""
		if item.FirstName != "" || item.LastName != "" {
			owner = fmt.Sprintf(" (%s %s)", item.FirstName, item.LastName)
		}
		fmt.Printf("%s  %s [%s]%s\n", item.ID, item.Title, item.Template, owner)
	}
	return nil
}

// CreateResume prompts for a title and template, creates the resume and
// opens it.
func (a *App) CreateResume(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter resume title", os.Stdout)
	if err != nil {
		return err
	}
	template, err := getSimpleText(a.reader, "Enter template (modern/classic/creative/minimal, Enter for modern)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.resumeService.Create(ctx, title, resume.Template(template))
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.resumeService.Open(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Created and opened resume %s\n", id)
	return nil
}

// OpenResume loads the full aggregate for id and makes it current.
func (a *App) OpenResume(ctx context.Context, id string) error {
	agg, err := a.resumeService.Open(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Opened %q\n", agg.Title)
	return nil
}

// CloseResume forgets the current resume.
func (a *App) CloseResume(ctx context.Context) error {
	a.resumeService.Close()
	fmt.Println("Closed")
	return nil
}

// ShowResume renders the opened resume section by section.
func (a *App) ShowResume(ctx context.Context) error {
	agg := a.resumeService.Current()
	if agg == nil {
		fmt.Println("No resume is open. Use 'open <id>' first.")
		return nil
	}

	fmt.Printf("%s [%s]\n", agg.Title, agg.Template)

	if agg.HasPersonalInfo() {
		p := agg.PersonalInfo
		fmt.Printf("\n%s %s\n%s", p.FirstName, p.LastName, p.Email)
		if p.Phone != "" {
			fmt.Printf(" | %s", p.Phone)
		}
		fmt.Println()
		if p.Summary != "" {
			fmt.Println(p.Summary)
		}
	}

	if len(agg.WorkExperience) > 0 {
		fmt.Println("\nWork experience:")
		for _, w := range agg.WorkExperience {
			fmt.Printf("  %s, %s (%s)\n", w.Position, w.CompanyName,
				resume.FormatDateRange(w.StartDate, w.EndDate, w.IsCurrent))
		}
	}

	if len(agg.Education) > 0 {
		fmt.Println("\nEducation:")
		for _, e := range agg.Education {
			fmt.Printf("  %s, %s (%s)\n", e.Degree, e.Institution,
				resume.FormatDateRange(e.StartDate, e.EndDate, e.IsCurrent))
		}
	}

	if len(agg.Skills) > 0 {
		fmt.Println("\nSkills:")
		for _, s := range agg.Skills {
			fmt.Printf("  %s (%s)\n", s.SkillName, s.SkillLevel)
		}
	}

	if len(agg.Projects) > 0 {
		fmt.Println("\nProjects:")
		for _, p := range agg.Projects {
			fmt.Printf("  %s\n", p.Name)
		}
	}

	if len(agg.Certifications) > 0 {
		fmt.Println("\nCertifications:")
		for _, c := range agg.Certifications {
			fmt.Printf("  %s (%s)\n", c.Name, resume.DisplayDate(c.IssueDate))
		}
	}

	if len(agg.Languages) > 0 {
		fmt.Println("\nLanguages:")
		for _, l := range agg.Languages {
			fmt.Printf("  %s (%s)\n", l.Language, l.Proficiency)
		}
	}

	return nil
}

// UpdateResume renames or retemplates the opened resume.
func (a *App) UpdateResume(ctx context.Context) error {
	agg := a.resumeService.Current()
	if agg == nil {
		fmt.Println("No resume is open. Use 'open <id>' first.")
		return nil
	}

	title, err := GetField(a.reader, "Title", agg.Title, os.Stdout)
	if err != nil {
		return cancelOrErr(err)
	}
	template, err := GetField(a.reader, "Template (modern/classic/creative/minimal)", string(agg.Template), os.Stdout)
	if err != nil {
		return cancelOrErr(err)
	}
	isPublic, err := GetYesNo(a.reader, "Public?", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.resumeService.Update(ctx, title, resume.Template(template), isPublic); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Updated")
	return nil
}

// DeleteResume deletes a resume after confirmation. Deleting the opened
// resume also closes it.
func (a *App) DeleteResume(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id to delete", os.Stdout)
	if err != nil {
		return err
	}

	confirmed, err := GetYesNo(a.reader, fmt.Sprintf("Delete resume %s? This cannot be undone.", id), os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.resumeService.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Deleted")
	return nil
}

// cancelOrErr maps a user cancellation to a friendly message and nil error.
func cancelOrErr(err error) error {
	if errors.Is(err, ErrCancelled) {
		fmt.Println("Cancelled")
		return nil
	}
	return err
}

package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ekarpova/resumecraft/internal/common"
)

// ShowProfile prints the account profile.
func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.authService.Profile(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("%s %s\n%s\n", p.FirstName, p.LastName, p.Email)
	if p.Phone != "" {
		fmt.Println(p.Phone)
	}
	return nil
}

// EditProfile updates first/last name and phone, prefilled with the
// current values.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.authService.Profile(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Profile (':q' to cancel, Enter keeps the shown value)")

	firstName, err := GetField(a.reader, "First name", p.FirstName, os.Stdout)
	if err != nil {
		return cancelOrErr(err)
	}
	lastName, err := GetField(a.reader, "Last name", p.LastName, os.Stdout)
	if err != nil {
		return cancelOrErr(err)
	}
	phone, err := GetField(a.reader, "Phone", p.Phone, os.Stdout)
	if err != nil {
		return cancelOrErr(err)
	}

	if err := a.authService.UpdateProfile(ctx, firstName, lastName, phone); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Profile updated")
	return nil
}

// ChangePassword verifies the current password server-side and stores a
// new one. Both passwords are wiped before returning.
func (a *App) ChangePassword(ctx context.Context) error {
	fmt.Println("Current password")
	current, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	fmt.Println("New password")
	next, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.authService.ChangePassword(ctx, string(current), string(next)); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println("Password changed")
	return nil
}

// ShowStats prints per-account counters.
func (a *App) ShowStats(ctx context.Context) error {
	s, err := a.authService.Stats(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Resumes: %d\n", s.ResumeCount)
	fmt.Printf("Work experience entries: %d\n", s.WorkExperienceCount)
	fmt.Printf("Education entries: %d\n", s.EducationCount)
	fmt.Printf("Skills: %d\n", s.SkillsCount)
	return nil
}

// DeleteAccount removes the account and everything it owns after a
// password check and an explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	confirmed, err := GetYesNo(a.reader, "Delete your account and all resumes? This cannot be undone.", os.Stdout)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.DeleteAccount(ctx, string(password)); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.resumeService.Close()
	a.userEmail = ""
	fmt.Println("Account deleted")
	return nil
}

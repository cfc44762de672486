package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ekarpova/resumecraft/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for account details and attempts to create
// a new account via the AuthService.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning. Any I/O or service error is returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, string(password), firstName, lastName); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the email is remembered for the prompt. The password is
// securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userEmail = email
	log.Printf("Login successful")
	return nil
}

// Logout closes the opened resume and drops the session tokens.
func (a *App) Logout(ctx context.Context) error {
	a.resumeService.Close()
	a.authService.Logout()
	a.userEmail = ""
	fmt.Println("Logged out")
	return nil
}

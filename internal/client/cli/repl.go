package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasOpenResume() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ListResumes(ctx context.Context) error
	CreateResume(ctx context.Context) error
	OpenResume(ctx context.Context, id string) error
	CloseResume(ctx context.Context) error
	ShowResume(ctx context.Context) error
	UpdateResume(ctx context.Context) error
	DeleteResume(ctx context.Context) error
	EditPersonalInfo(ctx context.Context) error
	AddWorkExperience(ctx context.Context) error
	AddEducation(ctx context.Context) error
	AddSkill(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ShowStats(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the ResumeCraft CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - list           — list resumes
//	  - create         — create a resume
//	  - open <id>      — open a resume for editing
//	  - show           — show the opened resume
//	  - update         — rename/retemplate the opened resume
//	  - close          — close the opened resume
//	  - delete         — delete a resume
//	  - personal       — edit personal information
//	  - addwork        — add a work experience entry
//	  - addedu         — add an education entry
//	  - addskill       — add a skill
//	  - profile        — show account profile
//	  - editprofile    — update account profile
//	  - passwd         — change password
//	  - stats          — show account statistics
//	  - delaccount     — delete the account
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, create, open <id>, show, update, close, delete, personal, addwork, addedu, addskill, profile, editprofile, passwd, stats, delaccount, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.ListResumes(ctx)

		case "create":
			_ = a.CreateResume(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <id>")
				continue
			}
			_ = a.OpenResume(ctx, args[0])

		case "close":
			_ = a.CloseResume(ctx)

		case "show":
			_ = a.ShowResume(ctx)

		case "update":
			_ = a.UpdateResume(ctx)

		case "delete":
			_ = a.DeleteResume(ctx)

		case "personal":
			_ = a.EditPersonalInfo(ctx)

		case "addwork":
			_ = a.AddWorkExperience(ctx)

		case "addedu":
			_ = a.AddEducation(ctx)

		case "addskill":
			_ = a.AddSkill(ctx)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "stats":
			_ = a.ShowStats(ctx)

		case "delaccount":
			_ = a.DeleteAccount(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

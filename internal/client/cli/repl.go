package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Onboarding(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
}

const (
	helpGuest    = "Available commands: onboarding, register, login, help, exit"
	helpLoggedIn = "Available commands: whoami, edit <name|phone|country|avatar> <value>, refresh, logout, help, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// Signed out:
//
//	onboarding   answer the onboarding questions
//	register     create an account
//	login        sign in
//
// Signed in:
//
//	whoami       show the profile
//	edit         change one profile field
//	refresh      reload the profile from the server
//	logout       sign out
//
// Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bookshelf %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "onboarding", "register", "login":
			if a.isLoggedIn() {
				printlnFn("Already logged in; logout first")
				continue
			}
			switch cmd {
			case "onboarding":
				cmdErr = a.Onboarding(ctx)
			case "register":
				cmdErr = a.Register(ctx)
			default:
				cmdErr = a.Login(ctx)
			}

		case "whoami", "edit", "refresh", "logout":
			if !a.isLoggedIn() {
				printlnFn("Not logged in; use login or register")
				continue
			}
			switch cmd {
			case "whoami":
				cmdErr = a.WhoAmI(ctx)
			case "edit":
				cmdErr = a.Edit(ctx, args)
			case "refresh":
				cmdErr = a.Refresh(ctx)
			default:
				cmdErr = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

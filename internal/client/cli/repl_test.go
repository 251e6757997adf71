package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	editArgs []string
	failOn   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) Onboarding(context.Context) error { return f.record("onboarding") }
func (f *fakeExec) Register(context.Context) error   { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error  { return f.record("whoami") }
func (f *fakeExec) Refresh(context.Context) error { return f.record("refresh") }
func (f *fakeExec) Edit(_ context.Context, args []string) error {
	f.editArgs = args
	return f.record("edit")
}

// capturePrintln collects printed lines for the duration of the test.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_GuestThenSignedIn(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(
		"help\nwhoami\nonboarding\nregister\nlogin\nhelp\nlogin\nedit phone +1 555 0100\nrefresh\nwhoami\nlogout\nfoobar\nexit\nlogin\n",
	))

	assert.Equal(t, []string{"onboarding", "register", "login", "edit", "refresh", "whoami", "logout"}, exec.calls)
	assert.Equal(t, []string{"phone", "+1", "555", "0100"}, exec.editArgs)
	assert.Contains(t, *out, helpGuest+"\n")
	assert.Contains(t, *out, helpLoggedIn+"\n")
	assert.Contains(t, *out, "Not logged in; use login or register\n")
	assert.Contains(t, *out, "Already logged in; logout first\n")
	assert.Contains(t, *out, "Unknown command: foobar\n")
	assert.Contains(t, *out, "bookshelf status> \n")
	assert.Equal(t, "Bye!\n", (*out)[len(*out)-1])
}

func TestRunREPL_PrintsHandlerErrorsAndContinues(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{failOn: "register"}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("register\nlogin\nquit\n"))

	assert.Equal(t, []string{"register", "login"}, exec.calls)
	assert.Contains(t, *out, "Error: register failed\n")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("\n   \nlogin"))

	assert.Equal(t, []string{"login"}, exec.calls)
}

// Package cli is the interactive bookshelf command-line client.
//
// NewApp wires configuration, the local SQLite database, the account API
// client and the session store (restored from the saved snapshot). Run
// starts a REPL that walks a visitor through onboarding and registration
// or login, and lets a signed-in reader view and edit the profile.
//
// All session state lives in the session store; the REPL only prompts,
// calls store actions and prints the store's error message when one is set.
package cli

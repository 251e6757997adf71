// Package session holds the client's single source of truth for who is
// signed in.
//
// A Store keeps the current user, the bearer token, the onboarding flag,
// the onboarding scratch buffer and the UI flags (loading, error). Every
// change goes through one commit, and listeners registered with Subscribe
// see commits in order.
//
// Login, Register and RefreshUser call the account API through a
// client.Client and turn its failures into a message in State().Error;
// they never return errors to the UI.
//
// Attach (or Open) restores the durable part of the session from a Storage
// and keeps it written after every commit that changes it. Only the user,
// the token and the two flags are stored; the scratch buffer, the loading
// flag and the error message never leave memory.
package session

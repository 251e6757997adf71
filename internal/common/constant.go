// Package common contains constants and small helpers shared across the
// client packages.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request
// correlation id on outbound API calls.
const RequestIDHeaderName = "X-Request-ID"

// SessionStorageKey names the durable record holding the session snapshot.
const SessionStorageKey = "user-storage"

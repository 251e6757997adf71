// Package client contains the client-side access to the account API and the
// bootstrap of the local database.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login and FindUserByEmail.
//  2. A JSON/HTTP implementation (see HTTPClient) that bounds each attempt
//     with a timeout, tags every request with an X-Request-ID header and
//     retries idempotent calls on transport failures.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures and timeouts wrap ErrUnavailable; bodies that are not
// the expected JSON wrap ErrMalformedResponse; non-2xx answers are returned
// as *APIError with the server's message. Match them with errors.Is and
// errors.As (or AsAPIError).
//
// Register is never retried. Login and FindUserByEmail are retried only
// while the failure is ErrUnavailable.
package client

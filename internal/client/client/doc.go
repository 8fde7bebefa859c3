// Package client talks to the expenses backend.
//
// # Overview
//
//  1. Client is the transport-agnostic contract: one method per REST
//     endpoint (expenses, summaries, sharing, recurring rules, attachments).
//  2. HTTPClient implements it over net/http. It attaches the bearer token,
//     tags each request with an X-Request-ID, and turns keyed list responses
//     ({"1": {...}, "2": {...}}) into id-ordered slices.
//  3. InitDatabase/RunMigrations bootstrap the local SQLite database used by
//     the session store, applying embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns *APIError whose message is ready for display.
// Match the class with errors.Is: ErrUnavailable (transport failure or 5xx),
// ErrUnauthorized (401/403), ErrNotFound (404).
package client

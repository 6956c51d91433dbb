// Package app wires the application together: configuration, logging,
// the LLM client, services, middleware, and the HTTP router. It owns
// the server lifecycle including graceful shutdown.
package app

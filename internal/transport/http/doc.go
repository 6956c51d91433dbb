// Package http implements the HTTP request handlers for the crmkit web
// service. Handlers are a thin layer over the service packages: they
// parse and validate requests, call the service, and render responses.
// All errors follow RFC 7807 Problem Details via internal/errors.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Handlers hold service interfaces rather than concrete services so
// tests can substitute fakes.
package http

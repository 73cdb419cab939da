// Package api contains the HTTP transport layer: request/response models,
// handlers for the auth, task and user endpoints, and the mapping from
// internal errors to status codes and sanitized client messages.
package api

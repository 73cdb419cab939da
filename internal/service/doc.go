// Package service contains the application's use-case layer: task and user
// lifecycle orchestration, document management, and the ownership guard
// that scopes every task operation to its creator (or an admin).
//
// Services depend on the store interfaces and on the blob store, never on
// the HTTP layer. Identity is carried in explicitly by the caller rather
// than pulled from the request context, which keeps the authorization
// decisions unit-testable.
package service

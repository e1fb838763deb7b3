// Package api exposes the artifact pipeline over HTTP. Handlers decode and
// validate JSON requests, bound each generation with a timeout, and map
// pipeline errors to status codes and safe messages. Routing lives with the
// command that serves it.
package api

// Package web binds the homepage routes to their handlers.
package web

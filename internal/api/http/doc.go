// Package http exposes the desktop over a JSON API served by gin.
//
// Every mutation goes through the shell, so the same change is pushed to
// stream subscribers whether it came from a request or a socket message.
// Domain errors map onto status codes in one place; see statusFor.
package http

// Package ai is the boundary to the external text generation service.
//
// Generator is the narrow contract: free text in, free text or raw JSON out.
// GeminiClient implements it over HTTP. Assistant wraps any Generator and
// never returns an error: every failure, including a missing generator, is
// replaced by a fixed fallback payload so that callers such as the terminal
// or spotlight search can render something unconditionally.
package ai

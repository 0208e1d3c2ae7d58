// Package window implements the window registry and the title bar drag
// state machine.
//
// The registry keeps at most one record per app id, in insertion order.
// Launching an open app restores and raises it instead of creating a new
// record. Raising always assigns max(z, 0)+1, so z-indices only grow and
// the raised window is strictly on top.
//
// Minimize clears the active selection process-wide. Close hands the active
// selection to the most recently added remaining window.
package window

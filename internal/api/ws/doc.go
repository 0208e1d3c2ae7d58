// Package ws streams desktop events to the front end over WebSocket and
// accepts pointer and keyboard input on the same connection.
//
// Every server message is {type, timestamp, data}. Each connection has a
// bounded queue; events for a client that falls behind are dropped, and
// the next desktop snapshot supersedes them.
package ws

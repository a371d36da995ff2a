// Package state provides a typed in-memory FSM/session manager for Telegram
// bots. The payload type is supplied by the application, so dialogue data is
// carried in struct fields instead of string-keyed maps.
package state

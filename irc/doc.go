// Package irc implements the core of an IRC (RFC 1459/2812) client
// connection: a single TCP connection to a server, a byte-exact line codec
// with CTCP sub-framing, a length-limited command emitter, and the
// reader/writer/event-loop concurrency fabric that ties them together.
//
// Connect is the single entry point. It blocks for the lifetime of the
// connection, delivering Connected, LineReceived, and Disconnected events to
// the supplied callback, and optionally running user commands submitted
// through Options.Commands on the same goroutine as the callback.
package irc

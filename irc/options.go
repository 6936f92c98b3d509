package irc

import "gopkg.in/inconshreveable/log15.v2"

// DefaultPort is used when Options.Port is zero.
const DefaultPort uint16 = 6667

// Cmd is a user-submitted command: a function executed on the connection's
// event-loop goroutine with mutable access to the connection and the
// caller's payload.
type Cmd[Payload any] func(c *Conn[Payload], payload *Payload)

// EventKind discriminates the three events delivered to a Callback.
type EventKind int

const (
	EventConnected EventKind = iota
	EventLineReceived
	EventDisconnected
)

// Event is delivered to the user callback. Line is only meaningful when
// Kind is EventLineReceived.
type Event struct {
	Kind EventKind
	Line Line
}

// Callback receives Connected/LineReceived/Disconnected events, with
// mutable access to the connection and the caller's payload.
type Callback[Payload any] func(c *Conn[Payload], ev Event, payload *Payload)

// Options configures a call to Connect. Payload is the type of the extra
// application state threaded through commands and the callback; pass
// struct{} if there is none.
type Options[Payload any] struct {
	// Host is the server hostname to dial. Required.
	Host string
	// Port is the TCP port to dial. Zero means DefaultPort.
	Port uint16

	// Nick is the initial nickname, sent in NICK and used to build the
	// local User. Defaults to "ircnick".
	Nick string
	// User is the username sent in USER. Defaults to "ircuser".
	User string
	// Real is the realname sent as USER's trailing argument. Defaults to
	// "rust-irclib user".
	Real string

	// Commands, if non-nil, is consumed by the event loop until the
	// sender closes it. The loop does not close this channel itself;
	// that remains the caller's responsibility (see §4.5).
	Commands <-chan Cmd[Payload]

	// NickInUse is called when the server rejects the chosen nickname
	// (431/432/433/436/437). It receives the nickname that was rejected
	// (empty for 431) and the numeric, and must return a replacement, or
	// "" to give up and leave the nickname as-is. If nil, a nickname is
	// retried by appending "_".
	NickInUse func(oldNick string, errCode int) string

	// Log receives debug/error tracing from the reader, writer, and
	// event loop. If nil, logging is discarded.
	Log log15.Logger
}

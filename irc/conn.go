package irc

import (
	"bytes"

	"gopkg.in/inconshreveable/log15.v2"
)

// Conn represents a connection to a single IRC server. It is only ever
// mutated from the goroutine running the event loop (Connect's caller's
// callback and submitted Cmds run there too), so it carries no internal
// locking.
type Conn[Payload any] struct {
	host string
	me   User

	loggedIn  bool
	nickInUse func(oldNick string, errCode int) string

	// writer is nil exactly when the connection is considered
	// disconnected: send_* calls become no-ops (§4.2 step 5).
	writer chan<- []byte

	log log15.Logger
}

// Me returns the current local User. Nick is accurate after login; User
// is what was supplied at Connect time and Host is empty. Only the nick is
// ever updated from what the server reports.
func (c *Conn[Payload]) Me() User { return c.me }

// Host returns the host string passed to Connect.
func (c *Conn[Payload]) Host() string { return c.host }

// IsConnected reports whether the writer handle is still present.
func (c *Conn[Payload]) IsConnected() bool { return c.writer != nil }

// send hands a fully-framed (CRLF-terminated, length-capped) frame to the
// writer worker. Because Conn is only ever touched from the event-loop
// goroutine, writer is never cleared concurrently with this call: the only
// way send observes a "failed" send is writer already being nil.
func (c *Conn[Payload]) send(frame []byte) {
	if c.writer == nil {
		return
	}
	c.writer <- frame
}

// SendCommand serializes cmd and args into a frame capped at 512 bytes
// (510 bytes of body plus CRLF) and hands it to the writer. See §4.2.
func (c *Conn[Payload]) SendCommand(cmd Command, args [][]byte, addColon bool) {
	var buf bytes.Buffer
	buf.Write(commandBody(cmd))
	if len(args) > 0 {
		if len(args) > 1 {
			for _, a := range args[:len(args)-1] {
				buf.WriteByte(' ')
				buf.Write(a)
			}
		}
		if addColon {
			buf.WriteString(" :")
		} else {
			buf.WriteByte(' ')
		}
		buf.Write(args[len(args)-1])
	}

	frame := buf.Bytes()
	limit := 510
	if cmd.IsCTCP() {
		// Reserve a byte for the closing 0x01 so truncation never chops it
		// off a too-long CTCP payload.
		limit--
	}
	if len(frame) > limit {
		frame = frame[:limit]
	}
	if cmd.IsCTCP() {
		frame = append(frame, 0x01)
	}

	out := make([]byte, len(frame)+2)
	copy(out, frame)
	out[len(frame)] = '\r'
	out[len(frame)+1] = '\n'

	c.log.Debug("sent line", "line", string(frame))
	c.send(out)
}

// SendRaw strips a trailing CRLF/LF from raw, truncates to 510 bytes, and
// sends it verbatim (no-op if empty after stripping).
func (c *Conn[Payload]) SendRaw(raw []byte) {
	raw = chompCRLF(raw)
	if len(raw) == 0 {
		return
	}
	if len(raw) > 510 {
		raw = raw[:510]
	}
	out := make([]byte, len(raw)+2)
	copy(out, raw)
	out[len(raw)] = '\r'
	out[len(raw)+1] = '\n'

	c.log.Debug("sent raw line", "line", string(raw))
	c.send(out)
}

// Privmsg sends a PRIVMSG to dst.
func (c *Conn[Payload]) Privmsg(dst, msg []byte) {
	c.SendCommand(NewCmd("PRIVMSG"), [][]byte{dst, msg}, true)
}

// Notice sends a NOTICE to dst.
func (c *Conn[Payload]) Notice(dst, msg []byte) {
	c.SendCommand(NewCmd("NOTICE"), [][]byte{dst, msg}, true)
}

// Action sends a CTCP ACTION to dst.
func (c *Conn[Payload]) Action(dst, msg []byte) {
	if len(msg) == 0 {
		c.SendCommand(NewAction(dst), nil, false)
	} else {
		c.SendCommand(NewAction(dst), [][]byte{msg}, false)
	}
}

// CTCP sends a generic CTCP command to dst.
func (c *Conn[Payload]) CTCP(dst, sub, msg []byte) {
	if len(msg) == 0 {
		c.SendCommand(NewCtcp(sub, dst), nil, false)
	} else {
		c.SendCommand(NewCtcp(sub, dst), [][]byte{msg}, false)
	}
}

// CTCPReply sends a CTCP reply (as a NOTICE) to dst.
func (c *Conn[Payload]) CTCPReply(dst, sub, msg []byte) {
	if len(msg) == 0 {
		c.SendCommand(NewCtcpReply(sub, dst), nil, false)
	} else {
		c.SendCommand(NewCtcpReply(sub, dst), [][]byte{msg}, false)
	}
}

// Join sends a JOIN. Pass nil keys if there are none.
func (c *Conn[Payload]) Join(room, keys []byte) {
	if len(keys) == 0 {
		c.SendCommand(NewCmd("JOIN"), [][]byte{room}, false)
	} else {
		c.SendCommand(NewCmd("JOIN"), [][]byte{room, keys}, false)
	}
}

// Part sends a PART. Pass nil msg to omit the reason.
func (c *Conn[Payload]) Part(room, msg []byte) {
	if len(msg) == 0 {
		c.SendCommand(NewCmd("PART"), [][]byte{room}, false)
	} else {
		c.SendCommand(NewCmd("PART"), [][]byte{room, msg}, true)
	}
}

// Quit sends a QUIT. Pass nil msg to omit the reason.
func (c *Conn[Payload]) Quit(msg []byte) {
	if len(msg) == 0 {
		c.SendCommand(NewCmd("QUIT"), nil, false)
	} else {
		c.SendCommand(NewCmd("QUIT"), [][]byte{msg}, true)
	}
}

// SetNick sends NICK. If login hasn't completed yet the local User is
// updated immediately; otherwise the update is deferred until the
// server's NICK echo is processed by internal housekeeping (§4.2).
func (c *Conn[Payload]) SetNick(nick []byte) {
	c.SendCommand(NewCmd("NICK"), [][]byte{nick}, false)
	if !c.loggedIn {
		c.me = c.me.WithNick(append([]byte(nil), nick...))
	}
}

func chompCRLF(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	if b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
		if len(b) > 0 && b[len(b)-1] == '\r' {
			b = b[:len(b)-1]
		}
		return b
	}
	if b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

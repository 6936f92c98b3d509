package irc

import (
	"net"
	"strconv"

	"gopkg.in/inconshreveable/log15.v2"
)

// Connect dials opts.Host:opts.Port, performs the NICK/USER handshake, and
// runs the connection's event loop until the server closes the connection
// or an unrecoverable I/O error occurs. Closing Options.Commands does not
// by itself end the loop; whatever is still buffered in it at shutdown is
// drained and executed before Connect returns (see §4.5). cb is invoked
// with EventConnected before the handshake is sent, with EventLineReceived
// for every parsed line received once login has completed (the first 001),
// after internal housekeeping has seen it, and with EventDisconnected once,
// right before Connect returns. Lines received before login are seen only
// by internal housekeeping.
func Connect[Payload any](opts Options[Payload], payload *Payload, cb Callback[Payload]) error {
	log := opts.Log
	if log == nil {
		log = log15.New()
		log.SetHandler(log15.DiscardHandler())
	}

	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	nick := opts.Nick
	if nick == "" {
		nick = "ircnick"
	}
	user := opts.User
	if user == "" {
		user = "ircuser"
	}
	real := opts.Real
	if real == "" {
		real = "rust-irclib user"
	}

	addr := net.JoinHostPort(opts.Host, strconv.Itoa(int(port)))
	stream, err := net.Dial("tcp", addr)
	if err != nil {
		return wrapConnect(err)
	}
	defer stream.Close()

	c := &Conn[Payload]{
		host:      opts.Host,
		me:        NewUser([]byte(nick), []byte(user), nil),
		nickInUse: opts.NickInUse,
		log:       log,
	}

	if cb != nil {
		cb(c, Event{Kind: EventConnected}, payload)
	}

	runErr := c.run(stream, opts.Commands, nick, user, real, payload, cb)

	if cb != nil {
		cb(c, Event{Kind: EventDisconnected}, payload)
	}

	return runErr
}

// run drives the reader/writer workers and the single-threaded event loop
// for the lifetime of one connection. See §4 for the ordering and shutdown
// contract this implements.
func (c *Conn[Payload]) run(stream net.Conn, cmdCh <-chan Cmd[Payload], nick, user, real string, payload *Payload, cb Callback[Payload]) error {
	lineCh := make(chan []byte)
	writeCh := make(chan []byte, 256)
	errCh := make(chan error, 2)
	done := make(chan struct{})

	c.writer = writeCh

	go readLoop(stream, lineCh, errCh, done, c.log)
	go writeLoop(stream, writeCh, errCh, c.log)

	c.SendCommand(NewCmd("NICK"), [][]byte{[]byte(nick)}, false)
	c.SendCommand(NewCmd("USER"), [][]byte{[]byte(user), []byte("8"), []byte("*"), []byte(real)}, true)

	var runErr error

mainloop:
	for {
		// One pass handles at most one error, one command, and one frame,
		// each via a non-blocking check, before falling back to a blocking
		// select across whatever is left. A nil channel variable is never
		// selectable, which is how an exhausted source drops out for good.
		select {
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
			} else if err != nil {
				runErr = wrapIO(err)
				break mainloop
			}
		default:
		}

		select {
		case cmd, ok := <-cmdCh:
			if !ok {
				cmdCh = nil
			} else if cmd != nil {
				cmd(c, payload)
			}
		default:
		}

		select {
		case frame, ok := <-lineCh:
			if !ok {
				break mainloop
			}
			line, ok := Parse(frame)
			if ok {
				handleLine(c, line)
				// LineReceived is only surfaced once login has completed;
				// the server preamble before 001 is internal housekeeping's
				// concern, not the callback's (§2, §4.5, §6).
				if cb != nil && c.loggedIn {
					cb(c, Event{Kind: EventLineReceived, Line: line}, payload)
				}
			} else {
				c.log.Debug("found non-parseable line", "line", string(frame))
			}
		default:
			select {
			case err, ok := <-errCh:
				if !ok {
					errCh = nil
				} else if err != nil {
					runErr = wrapIO(err)
					break mainloop
				}
			case cmd, ok := <-cmdCh:
				if !ok {
					cmdCh = nil
				} else if cmd != nil {
					cmd(c, payload)
				}
			case frame, ok := <-lineCh:
				if !ok {
					break mainloop
				}
				line, ok := Parse(frame)
				if ok {
					handleLine(c, line)
					if cb != nil && c.loggedIn {
						cb(c, Event{Kind: EventLineReceived, Line: line}, payload)
					}
				} else {
					c.log.Debug("found non-parseable line", "line", string(frame))
				}
			}
		}
	}

	// Final drain: an error may already have been buffered alongside
	// whichever channel triggered the break. Frames still pending on lineCh
	// are not processed.
	select {
	case err, ok := <-errCh:
		if ok && err != nil && runErr == nil {
			runErr = wrapIO(err)
		}
	default:
	}

	var pending []Cmd[Payload]
drain:
	for {
		select {
		case cmd, ok := <-cmdCh:
			if !ok {
				break drain
			}
			if cmd != nil {
				pending = append(pending, cmd)
			}
		default:
			break drain
		}
	}

	close(done)
	close(writeCh)
	c.writer = nil
	stream.Close()

	for _, cmd := range pending {
		cmd(c, payload)
	}

	return runErr
}

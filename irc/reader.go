package irc

import (
	"bufio"
	"io"
	"net"

	"gopkg.in/inconshreveable/log15.v2"
)

// readLoop reads CRLF-delimited frames from stream and forwards each
// non-empty, terminator-stripped frame on lineCh. It stops on EOF, on any
// other read error (after reporting it on errCh), or when done is closed
// (signaling that nothing downstream is listening to lineCh any more). It
// always closes lineCh before returning, which is what lets the event loop
// treat "reader is gone" as "lineCh closed" (§4.5).
func readLoop(stream net.Conn, lineCh chan<- []byte, errCh chan<- error, done <-chan struct{}, log log15.Logger) {
	defer close(lineCh)

	r := bufio.NewReader(stream)
	for {
		raw, err := r.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				log.Error("read error", "err", err)
				errCh <- err
			}
			// EOF mid-frame (no terminator) or a hard error: either way,
			// stop. Any partial bytes already in raw are discarded.
			return
		}

		frame := raw[:len(raw)-1]
		if len(frame) > 0 && frame[len(frame)-1] == '\r' {
			frame = frame[:len(frame)-1]
		}
		if len(frame) == 0 {
			continue
		}

		log.Debug("recv", "line", string(frame))

		select {
		case lineCh <- frame:
		case <-done:
			return
		}
	}
}

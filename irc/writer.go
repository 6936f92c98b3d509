package irc

import (
	"bufio"
	"io"
	"net"
	"strings"

	"gopkg.in/inconshreveable/log15.v2"
)

// writeLoop drains complete, CRLF-terminated frames from writeCh to stream
// in receive order, flushing after each write. It terminates on any I/O
// error (reporting it on errCh unless it's EOF) or once writeCh is closed.
func writeLoop(stream net.Conn, writeCh <-chan []byte, errCh chan<- error, log log15.Logger) {
	w := bufio.NewWriter(stream)
	for frame := range writeCh {
		_, err := w.Write(frame)
		if err == nil {
			err = w.Flush()
		}
		if err != nil {
			if err != io.EOF {
				log.Error("write error", "err", err)
				errCh <- err
			}
			return
		}
		log.Debug("wrote line", "line", strings.TrimRight(string(frame), "\r\n"))
	}
}

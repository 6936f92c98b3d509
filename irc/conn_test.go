package irc

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readServerLine reads one CRLF-terminated frame written by the Conn under
// test, as seen from the other end of a net.Pipe.
func readServerLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	raw, err := r.ReadString('\n')
	require.NoError(t, err)
	return raw[:len(raw)-2]
}

func TestRun_HandshakeIsNickThenUser(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	type payload struct{}
	c := &Conn[payload]{log: discardLogger()}

	done := make(chan error, 1)
	go func() {
		done <- c.run(client, nil, "bob", "bobuser", "Bob Real Name", &payload{}, nil)
	}()

	sr := bufio.NewReader(server)
	assert.Equal(t, "NICK bob", readServerLine(t, sr))
	assert.Equal(t, "USER bobuser 8 * :Bob Real Name", readServerLine(t, sr))

	server.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after server closed")
	}
}

func TestRun_DeliversLineReceivedAfterInternalHandling(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	type payload struct{ gotWelcome bool }
	c := &Conn[payload]{log: discardLogger()}
	state := &payload{}

	var seen []Event
	cb := func(conn *Conn[payload], ev Event, p *payload) {
		if ev.Kind == EventLineReceived {
			seen = append(seen, ev)
			if ev.Line.Command.Kind == KindCode && ev.Line.Command.Code == 1 {
				p.gotWelcome = true
			}
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- c.run(client, nil, "bob", "bobuser", "Bob", state, cb)
	}()

	sr := bufio.NewReader(server)
	readServerLine(t, sr) // NICK
	readServerLine(t, sr) // USER

	// The server preamble before 001 must never reach the callback: only
	// internal housekeeping (handleLine) sees it.
	_, err := server.Write([]byte(":irc.example.org NOTICE * :*** Looking up your hostname\r\n"))
	require.NoError(t, err)
	require.Never(t, func() bool { return len(seen) != 0 }, 200*time.Millisecond, 10*time.Millisecond)

	_, err = server.Write([]byte(":irc.example.org 001 bob :Welcome\r\n"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(seen) == 1 }, time.Second, 10*time.Millisecond)
	assert.True(t, state.gotWelcome)
	assert.True(t, c.loggedIn)
	assert.Equal(t, "bob", string(c.me.Nick))
	assert.Equal(t, 1, len(seen))

	server.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after server closed")
	}
}

func TestRun_ExecutesSubmittedCommandsOnLoopGoroutine(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	type payload struct{ counter int }
	c := &Conn[payload]{log: discardLogger()}
	state := &payload{}

	cmdCh := make(chan Cmd[payload], 1)
	cmdCh <- func(conn *Conn[payload], p *payload) {
		p.counter++
		conn.Privmsg([]byte("#chan"), []byte("hi"))
	}

	done := make(chan error, 1)
	go func() {
		done <- c.run(client, cmdCh, "bob", "bobuser", "Bob", state, nil)
	}()

	sr := bufio.NewReader(server)
	readServerLine(t, sr) // NICK
	readServerLine(t, sr) // USER
	assert.Equal(t, "PRIVMSG #chan :hi", readServerLine(t, sr))
	assert.Equal(t, 1, state.counter)

	server.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after server closed")
	}
}

func TestRun_DrainsBufferedCommandsOnShutdown(t *testing.T) {
	client, server := net.Pipe()

	type payload struct{ ran []int }
	c := &Conn[payload]{log: discardLogger()}
	state := &payload{}

	cmdCh := make(chan Cmd[payload], 8)
	for i := 0; i < 3; i++ {
		i := i
		cmdCh <- func(conn *Conn[payload], p *payload) {
			p.ran = append(p.ran, i)
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- c.run(client, cmdCh, "bob", "bobuser", "Bob", state, nil)
	}()

	sr := bufio.NewReader(server)
	readServerLine(t, sr) // NICK
	readServerLine(t, sr) // USER

	// Close the server side to force the reader to observe EOF and the
	// loop to exit; any commands still buffered in cmdCh at that point
	// must still run (drained, not dropped), per the shutdown contract.
	server.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}

	assert.False(t, c.IsConnected())
	assert.Equal(t, []int{0, 1, 2}, state.ran)
}

func TestConn_SendNoopsOnceDisconnected(t *testing.T) {
	c := &Conn[struct{}]{log: discardLogger()}
	assert.False(t, c.IsConnected())
	// Should not panic or block despite no writer being present.
	c.Privmsg([]byte("#chan"), []byte("hi"))
}

package main

import (
	"fmt"
	"os"

	"github.com/kballard/ircconn/internal/config"
	"github.com/kballard/ircconn/irc"

	"gopkg.in/inconshreveable/log15.v2"
)

// botState is the application payload threaded through every Cmd and
// Callback invocation. The core library never looks inside it.
type botState struct {
	channel string
	joined  bool
}

func main() {
	log := log15.New()
	// The reader, writer, and event-loop goroutines all log through this
	// same Logger concurrently; SyncHandler serializes the underlying
	// writes so their records don't interleave.
	log.SetHandler(log15.SyncHandler(log15.StreamHandler(os.Stderr, log15.LogfmtFormat())))

	static := config.StaticOptions{
		Host: "irc.example.org",
		Nick: "examplebot",
		User: "examplebot",
		Real: "Example Bot",
	}
	if path := os.Getenv("IRCCONN_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		static = loaded
	}

	opts := irc.Options[botState]{
		Host: static.Host,
		Port: static.Port,
		Nick: static.Nick,
		User: static.User,
		Real: static.Real,
		Log:  log,
	}
	state := &botState{channel: "#example"}

	err := irc.Connect(opts, state, handleEvent)
	if err != nil {
		fmt.Fprintln(os.Stderr, "disconnected:", err)
		os.Exit(1)
	}
}

// handleEvent is application glue, not core library behavior: PING/PONG and
// auto-join are exactly the kind of command-dispatch housekeeping the core
// explicitly leaves to its caller.
func handleEvent(c *irc.Conn[botState], ev irc.Event, state *botState) {
	switch ev.Kind {
	case irc.EventConnected:
		fmt.Println("connected to", c.Host())

	case irc.EventDisconnected:
		fmt.Println("disconnected from", c.Host())

	case irc.EventLineReceived:
		line := ev.Line
		switch {
		case line.Command.Kind == irc.KindCmd && line.Command.Name == "PING":
			if len(line.Args) > 0 {
				c.SendCommand(irc.NewCmd("PONG"), line.Args, true)
			}

		case line.Command.Kind == irc.KindCode && line.Command.Code == 4 && !state.joined:
			c.Join([]byte(state.channel), nil)
			state.joined = true

		case line.Command.Kind == irc.KindCmd && line.Command.Name == "PRIVMSG":
			if len(line.Args) == 2 && string(line.Args[1]) == "!ping" {
				c.Privmsg(line.Args[0], []byte("pong"))
			}
		}
	}
}

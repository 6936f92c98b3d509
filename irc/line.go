package irc

import (
	"bytes"
	"strconv"
	"strings"
)

// Line is a parsed IRC message: an optional prefix, a command, and its
// arguments.
type Line struct {
	Prefix  *User
	Command Command
	Args    [][]byte
}

// Parse parses a single frame (the caller has already stripped the
// trailing CRLF). It returns false for anything that doesn't fit the
// grammar in place of an error, matching the wire protocol's tolerance for
// junk lines (see §7: parse failures are not errors).
func Parse(b []byte) (Line, bool) {
	var prefix *User
	if len(b) > 0 && b[0] == ':' {
		idx := bytes.IndexByte(b, ' ')
		if idx < 0 {
			return Line{}, false
		}
		u := ParseUser(b[1:idx])
		prefix = &u
		b = b[idx+1:]
	}

	var cmdToken []byte
	if idx := bytes.IndexByte(b, ' '); idx < 0 {
		cmdToken = b
		b = nil
	} else if idx == 0 {
		return Line{}, false
	} else {
		cmdToken = b[:idx]
		b = b[idx+1:]
	}
	if len(cmdToken) == 0 {
		return Line{}, false
	}

	var cmd Command
	checkCTCP := false
	switch {
	case len(cmdToken) == 3 && isDigits(cmdToken):
		n, err := strconv.Atoi(string(cmdToken))
		if err != nil {
			n = 0
		}
		cmd = NewCode(n)
	case isAlpha(cmdToken):
		name := string(cmdToken)
		cmd = NewCmd(name)
		checkCTCP = name == "PRIVMSG" || name == "NOTICE"
	default:
		return Line{}, false
	}

	var args [][]byte
	for len(b) > 0 {
		if b[0] == ':' {
			args = append(args, b[1:])
			break
		}
		idx := bytes.IndexByte(b, ' ')
		if idx < 0 {
			args = append(args, b)
			break
		}
		args = append(args, b[:idx])
		b = b[idx+1:]
	}

	if checkCTCP && len(args) > 0 && len(args[len(args)-1]) > 0 && args[len(args)-1][0] == 0x01 {
		text := args[len(args)-1][1:]
		if len(text) > 0 && text[len(text)-1] == 0x01 {
			text = text[:len(text)-1]
		}
		dst := args[0]

		var sub, payload []byte
		hasPayload := false
		if sp := bytes.IndexByte(text, ' '); sp >= 0 {
			sub, payload = text[:sp], text[sp+1:]
			hasPayload = true
		} else {
			sub = text
		}

		switch cmd.Name {
		case "PRIVMSG":
			if string(sub) == "ACTION" {
				cmd = NewAction(dst)
				if hasPayload {
					args = [][]byte{payload}
				} else {
					args = [][]byte{{}}
				}
			} else {
				cmd = NewCtcp(sub, dst)
				if hasPayload {
					args = [][]byte{payload}
				} else {
					args = nil
				}
			}
		case "NOTICE":
			cmd = NewCtcpReply(sub, dst)
			if hasPayload {
				args = [][]byte{payload}
			} else {
				args = nil
			}
		}
	}

	return Line{Prefix: prefix, Command: cmd, Args: args}, true
}

// ToRaw serializes a Line back into wire bytes (no trailing CRLF). Given
// the invariants in §3, Parse(l.ToRaw()) yields a Line equal to l.
func (l Line) ToRaw() []byte {
	var buf bytes.Buffer
	if l.Prefix != nil {
		buf.WriteByte(':')
		buf.Write(l.Prefix.RawBytes())
		buf.WriteByte(' ')
	}
	buf.Write(commandBody(l.Command))

	if l.Command.IsCTCP() {
		for _, a := range l.Args {
			buf.WriteByte(' ')
			buf.Write(a)
		}
		buf.WriteByte(0x01)
	} else if len(l.Args) > 0 {
		if len(l.Args) > 1 {
			for _, a := range l.Args[:len(l.Args)-1] {
				buf.WriteByte(' ')
				buf.Write(a)
			}
		}
		last := l.Args[len(l.Args)-1]
		buf.WriteByte(' ')
		if bytes.IndexByte(last, ' ') >= 0 {
			buf.WriteByte(':')
		}
		buf.Write(last)
	}
	return buf.Bytes()
}

func (l Line) String() string {
	var b strings.Builder
	b.WriteString("Line{prefix: ")
	if l.Prefix != nil {
		b.Write(l.Prefix.RawBytes())
	} else {
		b.WriteString("<none>")
	}
	b.WriteString(", command: ")
	b.WriteString(l.Command.String())
	b.WriteString(", args: [")
	for i, a := range l.Args {
		if i != 0 {
			b.WriteString(", ")
		}
		b.Write(a)
	}
	b.WriteString("]}")
	return b.String()
}

func isDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isAlpha(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return false
		}
	}
	return true
}

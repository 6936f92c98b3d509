package irc

import "strconv"

// Kind discriminates the five Command cases.
type Kind int

const (
	KindCmd Kind = iota
	KindCode
	KindAction
	KindCtcp
	KindCtcpReply
)

// Command is a tagged union over the five outbound/inbound command shapes:
// a text command, a three-digit numeric, and the three CTCP forms embedded
// in PRIVMSG/NOTICE.
type Command struct {
	Kind Kind
	Name string // KindCmd
	Code int    // KindCode
	Sub  []byte // KindCtcp, KindCtcpReply
	Dst  []byte // KindAction, KindCtcp, KindCtcpReply
}

func NewCmd(name string) Command       { return Command{Kind: KindCmd, Name: name} }
func NewCode(n int) Command            { return Command{Kind: KindCode, Code: n} }
func NewAction(dst []byte) Command     { return Command{Kind: KindAction, Dst: dst} }
func NewCtcp(sub, dst []byte) Command  { return Command{Kind: KindCtcp, Sub: sub, Dst: dst} }
func NewCtcpReply(sub, dst []byte) Command {
	return Command{Kind: KindCtcpReply, Sub: sub, Dst: dst}
}

// IsCTCP reports whether the command is one of the three CTCP shapes.
func (c Command) IsCTCP() bool {
	switch c.Kind {
	case KindAction, KindCtcp, KindCtcpReply:
		return true
	default:
		return false
	}
}

func (c Command) String() string {
	switch c.Kind {
	case KindCmd:
		return "Cmd(" + c.Name + ")"
	case KindCode:
		return "Code(" + strconv.Itoa(c.Code) + ")"
	case KindAction:
		return "Action(" + string(c.Dst) + ")"
	case KindCtcp:
		return "Ctcp(" + string(c.Sub) + ", " + string(c.Dst) + ")"
	case KindCtcpReply:
		return "CtcpReply(" + string(c.Sub) + ", " + string(c.Dst) + ")"
	default:
		return "Command(?)"
	}
}

// commandBody renders the command portion of a wire line: no prefix, no
// arguments, no CRLF. For the CTCP variants the destination is embedded
// here rather than written as a leading argument.
func commandBody(cmd Command) []byte {
	switch cmd.Kind {
	case KindCmd:
		return []byte(cmd.Name)
	case KindCode:
		return formatCode(cmd.Code)
	case KindAction:
		out := make([]byte, 0, len("PRIVMSG ")+len(cmd.Dst)+len(" :\x01ACTION"))
		out = append(out, "PRIVMSG "...)
		out = append(out, cmd.Dst...)
		out = append(out, " :\x01ACTION"...)
		return out
	case KindCtcp:
		out := make([]byte, 0, len("PRIVMSG ")+len(cmd.Dst)+len(" :\x01")+len(cmd.Sub))
		out = append(out, "PRIVMSG "...)
		out = append(out, cmd.Dst...)
		out = append(out, " :\x01"...)
		out = append(out, cmd.Sub...)
		return out
	case KindCtcpReply:
		out := make([]byte, 0, len("NOTICE ")+len(cmd.Dst)+len(" :\x01")+len(cmd.Sub))
		out = append(out, "NOTICE "...)
		out = append(out, cmd.Dst...)
		out = append(out, " :\x01"...)
		out = append(out, cmd.Sub...)
		return out
	default:
		return nil
	}
}

// formatCode zero-pads to a minimum width of 3; codes of 1000 or greater
// keep all of their digits rather than being truncated (see DESIGN.md's
// note on the open question about codes > 999).
func formatCode(n int) []byte {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return []byte(s)
}

package irc

import "bytes"

// handleLine runs internal protocol housekeeping on every parsed frame,
// before the user callback ever sees it. Per §1 this is intentionally
// minimal: login-complete detection, the trivial nick bookkeeping the
// rest of this package's contract depends on (SetNick's deferred-update
// promise), and the nick retry on 431/432/433/436/437 (Options.NickInUse);
// there is no PING/PONG handling and no general nick tracking.
func handleLine[Payload any](c *Conn[Payload], line Line) {
	switch {
	case line.Command.Kind == KindCode && line.Command.Code == 1:
		h001(c, line)
	case line.Command.Kind == KindCmd && line.Command.Name == "NICK":
		hNick(c, line)
	case line.Command.Kind == KindCode && isBadNickCode(line.Command.Code):
		hBadNick(c, line, line.Command.Code)
	}
}

func isBadNickCode(n int) bool {
	switch n {
	case 431, 432, 433, 436, 437:
		return true
	default:
		return false
	}
}

// h001 is RPL_WELCOME: login has completed.
func h001[Payload any](c *Conn[Payload], line Line) {
	c.loggedIn = true
	if len(line.Args) > 0 {
		c.me = c.me.WithNick(append([]byte(nil), line.Args[0]...))
	}
}

// hNick applies our own nick change once the server echoes it back,
// completing the deferral SetNick promises for the post-login case.
func hNick[Payload any](c *Conn[Payload], line Line) {
	if !c.loggedIn || len(line.Args) == 0 || line.Prefix == nil {
		return
	}
	if bytes.Equal(line.Prefix.Nick, c.me.Nick) {
		c.me = c.me.WithNick(append([]byte(nil), line.Args[0]...))
	}
}

// hBadNick handles ERR_NONICKNAMEGIVEN/ERRONEUSNICKNAME/NICKNAMEINUSE/
// NICKCOLLISION/UNAVAILRESOURCE by retrying with a new nick. It runs
// whenever one of these numerics arrives, before or after login.
func hBadNick[Payload any](c *Conn[Payload], line Line, errCode int) {
	oldNick := ""
	if errCode != 431 && len(line.Args) > 1 {
		oldNick = string(line.Args[1])
	}

	var newNick string
	if c.nickInUse != nil {
		newNick = c.nickInUse(oldNick, errCode)
	} else {
		newNick = defaultNickInUse(oldNick)
	}
	if newNick == "" {
		return
	}
	c.SetNick([]byte(newNick))
}

func defaultNickInUse(oldNick string) string {
	if oldNick == "" {
		return ""
	}
	return oldNick + "_"
}

package irc

import "bytes"

// User is a parsed IRC prefix: nick[!user]@host, or a bare server name.
// It is intentionally a thin value type; the rest of this package relies
// only on construction, RawBytes, WithNick and the Nick field.
type User struct {
	Nick, User, Host []byte
	Raw              []byte
}

// NewUser builds a User from its components. user and host may be nil.
func NewUser(nick, user, host []byte) User {
	u := User{Nick: nick, User: user, Host: host}
	u.Raw = u.render()
	return u
}

// ParseUser parses a raw nick!user@host (or bare server name) prefix.
// The Raw field preserves the input exactly, so a prefix round-trips
// byte-for-byte even when it doesn't fit the nick!user@host shape.
func ParseUser(raw []byte) User {
	u := User{Raw: append([]byte(nil), raw...)}
	rest := raw
	if i := bytes.IndexByte(rest, '!'); i >= 0 {
		u.Nick = append([]byte(nil), rest[:i]...)
		rest = rest[i+1:]
		if j := bytes.IndexByte(rest, '@'); j >= 0 {
			u.User = append([]byte(nil), rest[:j]...)
			u.Host = append([]byte(nil), rest[j+1:]...)
		} else {
			u.User = append([]byte(nil), rest...)
		}
	} else if j := bytes.IndexByte(rest, '@'); j >= 0 {
		u.Nick = append([]byte(nil), rest[:j]...)
		u.Host = append([]byte(nil), rest[j+1:]...)
	} else {
		u.Nick = append([]byte(nil), rest...)
	}
	return u
}

// RawBytes returns the canonical wire form of the prefix.
func (u User) RawBytes() []byte {
	return u.Raw
}

// WithNick returns a copy of u with the nick replaced, re-deriving Raw.
func (u User) WithNick(nick []byte) User {
	return NewUser(nick, u.User, u.Host)
}

// Equal reports whether two Users have identical components.
func (u User) Equal(o User) bool {
	return bytes.Equal(u.Nick, o.Nick) &&
		bytes.Equal(u.User, o.User) &&
		bytes.Equal(u.Host, o.Host) &&
		bytes.Equal(u.Raw, o.Raw)
}

func (u User) render() []byte {
	var buf bytes.Buffer
	buf.Write(u.Nick)
	if len(u.User) > 0 {
		buf.WriteByte('!')
		buf.Write(u.User)
	}
	if len(u.Host) > 0 {
		buf.WriteByte('@')
		buf.Write(u.Host)
	}
	return buf.Bytes()
}

func (u User) String() string {
	if len(u.Nick) > 0 {
		return string(u.Nick)
	}
	return string(u.Raw)
}

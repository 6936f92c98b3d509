package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUser_FullForm(t *testing.T) {
	u := ParseUser([]byte("nick!user@host"))
	assert.Equal(t, "nick", string(u.Nick))
	assert.Equal(t, "user", string(u.User))
	assert.Equal(t, "host", string(u.Host))
	assert.Equal(t, "nick!user@host", string(u.RawBytes()))
}

func TestParseUser_BareServerName(t *testing.T) {
	u := ParseUser([]byte("irc.example.org"))
	assert.Equal(t, "irc.example.org", string(u.Nick))
	assert.Empty(t, u.User)
	assert.Empty(t, u.Host)
}

func TestParseUser_NickAtHostNoUser(t *testing.T) {
	u := ParseUser([]byte("nick@host"))
	assert.Equal(t, "nick", string(u.Nick))
	assert.Empty(t, u.User)
	assert.Equal(t, "host", string(u.Host))
}

func TestNewUser_RendersCanonicalForm(t *testing.T) {
	u := NewUser([]byte("nick"), []byte("user"), []byte("host"))
	assert.Equal(t, "nick!user@host", string(u.RawBytes()))
}

func TestNewUser_OmitsMissingParts(t *testing.T) {
	u := NewUser([]byte("nick"), nil, nil)
	assert.Equal(t, "nick", string(u.RawBytes()))
}

func TestUser_WithNick(t *testing.T) {
	u := NewUser([]byte("old"), []byte("user"), []byte("host"))
	u2 := u.WithNick([]byte("new"))
	assert.Equal(t, "new!user@host", string(u2.RawBytes()))
	assert.Equal(t, "old!user@host", string(u.RawBytes()))
}

func TestUser_Equal(t *testing.T) {
	a := NewUser([]byte("nick"), []byte("user"), []byte("host"))
	b := NewUser([]byte("nick"), []byte("user"), []byte("host"))
	c := NewUser([]byte("other"), []byte("user"), []byte("host"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

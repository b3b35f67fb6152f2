package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_RegisterLogsIn(t *testing.T) {
	c := newCLI(t)

	out := c.must("user", "register", "alice", "--pin", "1234")
	assert.Contains(t, out, "Registered alice and logged in")

	out = c.must("user", "whoami")
	assert.Contains(t, out, "alice (0 accounts)")
}

func TestUser_RegisterDuplicate(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")

	_, err := c.run("user", "register", "alice", "--pin", "9999")
	assert.ErrorContains(t, err, "user already exists")
}

func TestUser_RegisterRequiresPIN(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("user", "register", "alice")
	assert.ErrorContains(t, err, "--pin is required")
}

func TestUser_LoginLogout(t *testing.T) {
	c := newCLI(t)
	c.must("user", "register", "alice", "--pin", "1234")
	c.must("user", "register", "bob", "--pin", "9999")

	_, err := c.run("user", "login", "alice", "--pin", "0000")
	assert.ErrorContains(t, err, "invalid name or PIN")
	assert.Contains(t, c.must("user", "whoami"), "bob")

	out := c.must("user", "login", "alice", "--pin", "1234")
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, c.must("user", "whoami"), "alice")

	c.must("user", "logout")
	assert.Contains(t, c.must("user", "whoami"), "Not logged in")

	_, err = c.run("account", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

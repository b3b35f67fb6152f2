package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/demobank/internal/auth"
	"github.com/cleared-dev/demobank/internal/bank"
	"github.com/cleared-dev/demobank/internal/commands"
	"github.com/cleared-dev/demobank/internal/storage"
)

// runDemobank executes the root command in-process and returns combined
// stdout and stderr.
func runDemobank(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// cli runs commands against one data directory.
type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	return runDemobank(c.t, append([]string{"--data", c.dir}, args...)...)
}

func (c *cli) must(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

// user reads a persisted user straight from the data directory.
func (c *cli) user(name string) *bank.User {
	c.t.Helper()
	nop := zerolog.Nop()
	kv, err := storage.NewFileStore(c.dir, &nop)
	require.NoError(c.t, err)
	u, err := auth.NewStore(kv, bank.NewRegistry(), &nop).FindUser(context.Background(), name)
	require.NoError(c.t, err)
	require.NotNil(c.t, u, "user %s not found", name)
	return u
}

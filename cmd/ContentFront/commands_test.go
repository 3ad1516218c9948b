package main

import (
	"bytes"
	"strings"
	"testing"

	"ContentFront/pkg/util/myjwt"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "contentfront", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(checkCmd(), tokenCmd())
	return root
}

func TestParsePairs(t *testing.T) {
	session, err := parsePairs([]string{"user=alice", "theme=dark=mode"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"user": "alice", "theme": "dark=mode"}, session)

	_, err = parsePairs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parsePairs([]string{"=x"})
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("SECRET_KEY", "0123456789abcdef")

	var out bytes.Buffer
	root := newTestRoot()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "user=alice"})
	require.NoError(t, root.Execute())

	name, value, ok := strings.Cut(strings.TrimSpace(out.String()), "=")
	require.True(t, ok)
	assert.Equal(t, "session", name)

	session, err := myjwt.ParseSession(value, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "alice", session["user"])
}

func TestCheckCommandFailsWithoutSecret(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("SECRET_KEY", "")
	t.Setenv("APP_ENV", "production")

	root := newTestRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"check"})
	assert.Error(t, root.Execute())
}

func TestCheckCommand(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("SECRET_KEY", "0123456789abcdef")
	t.Setenv("API_ADDRESS", "http://api.internal/content")

	var out bytes.Buffer
	root := newTestRoot()
	root.SetOut(&out)
	root.SetArgs([]string{"check"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "config ok")
	assert.Contains(t, out.String(), "http://api.internal/content")
}

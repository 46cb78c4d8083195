package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"josephlewis.net/minsh/core/config"
)

func TestPrompt(t *testing.T) {
	shell, _, _ := newTestShell(t)

	assert.Equal(t, "0: ", shell.Prompt())

	shell.lineNum = 42
	assert.Equal(t, "42: ", shell.Prompt())

	t.Run("working directory", func(t *testing.T) {
		shell.Config = &config.Configuration{Prompt: `\w$ `}

		wd, err := os.Getwd()
		require.Nil(t, err)
		assert.Equal(t, wd+"$ ", shell.Prompt())
	})

	t.Run("empty prompt falls back to default", func(t *testing.T) {
		shell.Config = &config.Configuration{}
		shell.lineNum = 7
		assert.Equal(t, "7: ", shell.Prompt())
	})
}

func TestDispatchBlankAndErrors(t *testing.T) {
	cases := []struct {
		name       string
		line       string
		wantStderr string
	}{
		{"blank line", "   ", ""},
		{"unterminated quote", `echo "unclosed`, "syntax error"},
		{"malformed input redirection", "cat <", "malformed redirection"},
		{"malformed output redirection", "cat >", "malformed redirection"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shell, stdout, stderr := newTestShell(t)

			shell.dispatch(tc.line)

			assert.Empty(t, stdout.String())
			if tc.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tc.wantStderr)
			}
		})
	}
}

func TestDispatchCommandNotFound(t *testing.T) {
	shell, _, stderr := newTestShell(t)
	t.Setenv("PATH", "")

	shell.dispatch("definitely-not-a-real-command")

	assert.Contains(t, stderr.String(), "definitely-not-a-real-command: command not found")
}

func TestDispatchBuiltinRouting(t *testing.T) {
	shell, stdout, _ := newTestShell(t)

	wd, err := os.Getwd()
	require.Nil(t, err)

	shell.dispatch("pwd")
	assert.Equal(t, wd+"\n", stdout.String())
}

func TestDispatchExternalCommand(t *testing.T) {
	shell, _, stderr := newTestShell(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	shell.dispatch("echo hello > " + out)
	assert.Empty(t, stderr.String())

	contents, err := os.ReadFile(out)
	require.Nil(t, err)
	assert.Equal(t, "hello\n", string(contents))
}

func TestDispatchBackgroundDoesNotBlock(t *testing.T) {
	shell, _, stderr := newTestShell(t)

	start := time.Now()
	shell.dispatch("sleep 1 &")
	launched := time.Since(start)

	assert.Empty(t, stderr.String())
	assert.Less(t, launched, 800*time.Millisecond, "background launch must not wait for the child")
	assert.Equal(t, 1, shell.Session.Outstanding())

	shell.dispatch("wait")
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond, "wait must block until the child exits")
	assert.Equal(t, 0, shell.Session.Outstanding())
}

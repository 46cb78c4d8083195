package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequest(t *testing.T) {
	cases := []struct {
		name     string
		tokens   []string
		expected Request
	}{
		{
			name:     "plain command",
			tokens:   []string{"ls", "-l", "/tmp"},
			expected: Request{Argv: []string{"ls", "-l", "/tmp"}},
		},
		{
			name:     "both redirections",
			tokens:   []string{"cat", "<", "in.txt", ">", "out.txt"},
			expected: Request{Argv: []string{"cat"}, Stdin: "in.txt", Stdout: "out.txt"},
		},
		{
			name:     "background",
			tokens:   []string{"sleep", "1", "&"},
			expected: Request{Argv: []string{"sleep", "1"}, Background: true},
		},
		{
			name:     "redirection before arguments",
			tokens:   []string{">", "out.txt", "echo", "hi"},
			expected: Request{Argv: []string{"echo", "hi"}, Stdout: "out.txt"},
		},
		{
			name:     "redirection with background",
			tokens:   []string{"wc", "-l", "<", "in.txt", "&"},
			expected: Request{Argv: []string{"wc", "-l"}, Stdin: "in.txt", Background: true},
		},
		{
			name:     "ampersand not in final position is an argument",
			tokens:   []string{"echo", "&", "done"},
			expected: Request{Argv: []string{"echo", "&", "done"}},
		},
		{
			name:     "later redirection wins",
			tokens:   []string{"cat", ">", "a.txt", ">", "b.txt"},
			expected: Request{Argv: []string{"cat"}, Stdout: "b.txt"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRequest(tc.tokens)
			assert.Nil(t, err)
			assert.Equal(t, &tc.expected, got)
		})
	}
}

func TestParseRequestErrors(t *testing.T) {
	cases := []struct {
		name     string
		tokens   []string
		expected error
	}{
		{"input redirection without file", []string{"cat", "<"}, ErrMalformedRedirect},
		{"output redirection without file", []string{"cat", ">"}, ErrMalformedRedirect},
		{"dangling operator before background", []string{"cat", ">", "&"}, ErrMalformedRedirect},
		{"only redirections", []string{"<", "in.txt"}, ErrEmptyRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRequest(tc.tokens)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

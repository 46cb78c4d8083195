package proc

import (
	"errors"
	"fmt"
)

// ErrMalformedRedirect is returned when a redirection operator has no
// following token to name its file.
var ErrMalformedRedirect = errors.New("malformed redirection")

// ErrEmptyRequest is returned when a token sequence contains no program name.
var ErrEmptyRequest = errors.New("missing command name")

// Request describes one external command: the argument vector, optional
// standard stream redirections and whether the command runs in the
// background. A Request is immutable once built.
type Request struct {
	// Argv holds the program name and its arguments, in order.
	Argv []string
	// Stdin is the input redirection path, empty for none.
	Stdin string
	// Stdout is the output redirection path, empty for none.
	Stdout string
	// Background is set when the command should not be waited on.
	Background bool
}

// ParseRequest builds a Request from a token sequence in a single left to
// right scan. A token exactly equal to "<" or ">" consumes the next token as
// the redirection file; a trailing "&" marks the command as a background job.
// Every other token is kept in Argv in its original order.
func ParseRequest(tokens []string) (*Request, error) {
	req := &Request{}

	if n := len(tokens); n > 0 && tokens[n-1] == "&" {
		req.Background = true
		tokens = tokens[:n-1]
	}

	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case "<":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("%w: %q expects a file", ErrMalformedRedirect, tok)
			}
			req.Stdin = tokens[i+1]
			i++
		case ">":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("%w: %q expects a file", ErrMalformedRedirect, tok)
			}
			req.Stdout = tokens[i+1]
			i++
		default:
			req.Argv = append(req.Argv, tok)
		}
	}

	if len(req.Argv) == 0 {
		return nil, ErrEmptyRequest
	}

	return req, nil
}

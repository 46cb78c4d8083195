package core

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
	"github.com/fatih/color"
	"josephlewis.net/minsh/core/config"
	"josephlewis.net/minsh/core/logger"
	"josephlewis.net/minsh/core/proc"
)

// DefaultPrompt shows the current line number, matching the interpreter's
// line-driven interface. \# expands to the line number, \w to the working
// directory.
const DefaultPrompt = `\#: `

var errorColor = color.New(color.FgRed)

// Shell is one interpreter run: a read loop over standard input that
// dispatches built-ins and launches external commands through the session.
type Shell struct {
	Config   *config.Configuration
	Session  *proc.Session
	Readline *readline.Instance

	lineNum int
	stdout  io.Writer
	stderr  io.Writer
	exit    func(code int)
	toClose listCloser
}

func NewShell(configuration *config.Configuration) (*Shell, error) {
	var toClose listCloser

	log := logger.NewNopLogger()
	if configuration.EventLog != "" {
		logFd, err := configuration.OpenEventLog()
		if err != nil {
			return nil, err
		}
		toClose = append(toClose, logFd)
		log = logger.NewJsonLinesLogRecorder(logFd)
	}

	session, err := proc.NewSession(log.NewSession())
	if err != nil {
		toClose.Close()
		return nil, err
	}

	// Seed the search path when the environment doesn't provide one.
	if os.Getenv(proc.EnvPath) == "" {
		os.Setenv(proc.EnvPath, configuration.DefaultPath)
	}

	color.NoColor = !session.Interactive

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(os.Stdin),
		Stdout: os.Stdout,
		Stderr: os.Stderr,

		FuncIsTerminal: func() bool {
			return session.Interactive
		},
	}

	if err := cfg.Init(); err != nil {
		toClose.Close()
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		toClose.Close()
		return nil, err
	}
	toClose = append(toClose, rl)

	return &Shell{
		Config:   configuration,
		Session:  session,
		Readline: rl,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		exit:     os.Exit,
		toClose:  toClose,
	}, nil
}

// Prompt renders the configured prompt for the current line.
func (s *Shell) Prompt() string {
	prompt := s.Config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	prompt = strings.ReplaceAll(prompt, `\#`, strconv.Itoa(s.lineNum))
	if strings.Contains(prompt, `\w`) {
		wd, _ := os.Getwd()
		prompt = strings.ReplaceAll(prompt, `\w`, wd)
	}

	return prompt
}

// Run reads lines until end of input. Every failure along the way is local
// to its line; only EOF or the exit builtin ends the loop.
func (s *Shell) Run() error {
	for {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			// ^C at the prompt discards the line.
			s.lineNum++

		case err != nil:
			return err

		default:
			s.dispatch(line)
			s.lineNum++
		}
	}
}

func (s *Shell) Close() error {
	return s.toClose.Close()
}

func (s *Shell) dispatch(line string) {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		errorColor.Fprintln(s.stderr, "minsh: syntax error: unexpected end of file")
		return
	}
	if len(tokens) == 0 {
		return // blank line
	}

	if builtin, ok := AllBuiltins[tokens[0]]; ok {
		builtin.Main(s, tokens)
		return
	}

	s.runCommand(tokens)
}

func (s *Shell) runCommand(tokens []string) {
	req, err := proc.ParseRequest(tokens)
	if err != nil {
		errorColor.Fprintf(s.stderr, "minsh: %v\n", err)
		return
	}

	job, err := s.Session.Launch(req)
	switch {
	case errors.Is(err, proc.ErrNotFound):
		errorColor.Fprintf(s.stderr, "%s: command not found\n", req.Argv[0])
		return
	case err != nil:
		errorColor.Fprintf(s.stderr, "minsh: %v\n", err)
		return
	}

	if req.Background {
		return // reaped by the wait builtin or at interpreter exit
	}

	if _, err := s.Session.RunForeground(job); err != nil {
		errorColor.Fprintf(s.stderr, "minsh: %v\n", err)
	}
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

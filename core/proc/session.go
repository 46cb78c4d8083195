package proc

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
	"josephlewis.net/minsh/core/logger"
)

// EnvPath is the environment variable holding the executable search path.
const EnvPath = "PATH"

// Session holds the process-wide state of one interpreter run: the
// interactivity flag, the shell's own process group, the saved terminal
// attributes, the single foreground job slot and any outstanding background
// jobs. All mutation happens on the interpreter's one thread of control.
type Session struct {
	// Interactive is set when standard input is a terminal.
	Interactive bool
	// ShellPgid is the interpreter's own process group, zero when
	// non-interactive.
	ShellPgid int

	termState   *term.State
	fsys        afero.Fs
	log         *logger.SessionLogger
	fgPid       int
	outstanding []*Job
}

// NewSession inspects the controlling terminal and snapshots the state
// needed for job control.
func NewSession(log *logger.SessionLogger) (*Session, error) {
	s := &Session{
		fsys: afero.NewOsFs(),
		log:  log,
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		s.Interactive = true

		state, err := term.GetState(fd)
		if err != nil {
			return nil, fmt.Errorf("couldn't read terminal state: %w", err)
		}
		s.termState = state
		s.ShellPgid = unix.Getpgrp()

		// A job-control shell touching the terminal while not in the
		// foreground process group must not be stopped by SIGTTOU.
		signal.Ignore(unix.SIGTTOU)
	}

	return s, nil
}

// Foreground reports the PID of the job currently entitled to delegated
// interrupts, zero when no foreground job exists.
func (s *Session) Foreground() int {
	return s.fgPid
}

// Outstanding reports the number of background jobs that haven't been reaped.
func (s *Session) Outstanding() int {
	return len(s.outstanding)
}

// TerminalState returns the terminal attributes saved at startup, nil for
// non-interactive sessions.
func (s *Session) TerminalState() *term.State {
	return s.termState
}

// RunForeground blocks until the job exits or is signaled, delegating
// interactive interrupts to the job's process group for the duration of the
// wait.
func (s *Session) RunForeground(job *Job) (Outcome, error) {
	s.fgPid = job.Pid
	disarm := s.armDelegator(job.Pid)

	outcome, err := job.reap()

	disarm()
	// Cleared rather than left stale: a finished job must never receive
	// delegated signals.
	s.fgPid = 0

	if err != nil {
		return outcome, err
	}
	s.logOutcome(job, outcome)
	return outcome, nil
}

// WaitAll reaps every outstanding child, regardless of whether it was
// launched in the background or foreground, before returning.
func (s *Session) WaitAll() {
	for _, job := range s.outstanding {
		if outcome, err := job.reap(); err == nil {
			s.logOutcome(job, outcome)
		}
	}
	s.outstanding = nil
}

func (s *Session) logOutcome(job *Job, outcome Outcome) {
	if outcome.Signaled() {
		_ = s.log.Signaled(job.Pid, outcome.Signal.String())
	} else {
		_ = s.log.Exit(job.Pid, outcome.ExitStatus)
	}
}

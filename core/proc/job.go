package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// Job tracks one spawned child process until it is reaped. Foreground jobs
// are reaped by RunForeground immediately after launch; background jobs stay
// outstanding until WaitAll or interpreter exit.
type Job struct {
	// Pid is the child's process ID, which by convention is also its
	// process group ID.
	Pid int
	// Path is the resolved program path passed to the OS.
	Path string
	// Argv is the argument vector, Argv[0] being the name as typed.
	Argv []string
	// Background reports whether the job was launched with a trailing "&".
	Background bool

	cmd *exec.Cmd
}

// Outcome is the final state of a reaped job.
type Outcome struct {
	// ExitStatus is the child's exit code, zero for signal deaths.
	ExitStatus int
	// Signal is set when the child was terminated by a signal.
	Signal syscall.Signal
}

// Signaled reports whether the job was terminated by a signal rather than
// exiting on its own.
func (o Outcome) Signaled() bool {
	return o.Signal != 0
}

func (o Outcome) String() string {
	if o.Signaled() {
		return fmt.Sprintf("terminated by signal: %v", o.Signal)
	}
	return fmt.Sprintf("exit status %d", o.ExitStatus)
}

// reap waits for the child to change state and reports how it ended. The
// error return is reserved for wait failures; an unsuccessful child is a
// normal Outcome, not an error.
func (j *Job) reap() (Outcome, error) {
	err := j.cmd.Wait()
	if err == nil {
		return Outcome{}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return Outcome{Signal: status.Signal()}, nil
		}
		return Outcome{ExitStatus: exitErr.ExitCode()}, nil
	}

	return Outcome{}, fmt.Errorf("waiting for pid %d: %w", j.Pid, err)
}

package proc

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Launch creates exactly one child process for the request. Redirection,
// resolution and start failures abort the launch before any child survives;
// they are local to the command and never fatal to the interpreter.
//
// Background jobs are registered with the session for a later WaitAll.
// Foreground jobs must be handed to RunForeground immediately.
func (s *Session) Launch(req *Request) (*Job, error) {
	name := req.Argv[0]

	path, err := LookPath(s.fsys, os.Getenv(EnvPath), name)
	if err != nil {
		_ = s.log.LaunchFailure(req.Argv, err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	cmd := &exec.Cmd{
		// Args is passed through untouched so the child sees the name it
		// was invoked with as argv[0], not the resolved path.
		Path:   path,
		Args:   req.Argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		// Every child gets its own process group, pgid equal to its pid,
		// so terminal signals are never delivered to the interpreter's
		// group.
		SysProcAttr: &syscall.SysProcAttr{Setpgid: true},
	}

	// The descriptors are duplicated into the child at start time, so
	// closing them here scopes their lifetime to this launch.
	if req.Stdin != "" {
		in, err := os.Open(req.Stdin)
		if err != nil {
			_ = s.log.LaunchFailure(req.Argv, err)
			return nil, fmt.Errorf("can't redirect input: %w", err)
		}
		defer in.Close()
		cmd.Stdin = in
	}

	if req.Stdout != "" {
		out, err := os.OpenFile(req.Stdout, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			_ = s.log.LaunchFailure(req.Argv, err)
			return nil, fmt.Errorf("can't redirect output: %w", err)
		}
		defer out.Close()
		cmd.Stdout = out
	}

	if err := cmd.Start(); err != nil {
		_ = s.log.LaunchFailure(req.Argv, err)
		return nil, fmt.Errorf("can't run %s: %w", name, err)
	}

	job := &Job{
		Pid:        cmd.Process.Pid,
		Path:       path,
		Argv:       req.Argv,
		Background: req.Background,
		cmd:        cmd,
	}

	_ = s.log.Exec(job.Argv, job.Path, job.Pid, job.Background)

	if job.Background {
		s.outstanding = append(s.outstanding, job)
	}

	return job, nil
}
